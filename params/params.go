// Package params defines the hyperparameters of the inner evolutionary
// search. A Params value is itself the genome of the meta search: it can be
// drawn at random, mutated with per-field jitter, and recombined with
// uniform-parent crossover.
package params

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/rand"

	"github.com/symreg-dev/symreg/dist"
)

// MaxPopulationNum caps the inner population size.
const MaxPopulationNum = 100

// NumFields is the number of tunable hyperparameters.
const NumFields = 10

// Params holds the hyperparameters of one inner evolutionary run.
type Params struct {
	// Target population size, rounded before use. Valid range: [1, 100].
	PopulationNum float64 `json:"population_num"`

	// Mean of the Gaussian used to draw new constants.
	NewConstMean float64 `json:"new_const_mean"`

	// Std-dev of the Gaussian used to draw new constants. Valid range: (0, inf).
	NewConstStd float64 `json:"new_const_std"`

	// Success probability of the geometric distribution from which
	// initial and inserted tree sizes are drawn. Valid range: (0, 1].
	NewRandomExpressionProb float64 `json:"new_random_expression_prob"`

	// Base of the exponential decay controlling how often the same parent
	// is re-mutated within one generation. Valid range: (1, inf).
	RepeatedMutationRate float64 `json:"repeated_mutation_rate"`

	// Base of the exponential decay controlling how often fresh random
	// trees are injected. Valid range: (1, inf).
	RandomExpressionInsertRate float64 `json:"random_expression_insert_rate"`

	// Base of the exponential decay controlling whole-subtree replacement
	// during mutation. Valid range: (1, inf).
	MutateReplaceRate float64 `json:"mutate_replace_rate"`

	// Probability a constant jitters when its parent mutates. Valid range: (0, 1].
	ConstMutationProb float64 `json:"const_mutation_prob"`

	// Divisor controlling constant jitter magnitude. Valid range: [1, inf).
	ConstJitterFactor float64 `json:"const_jitter_factor"`

	// Probability the two children of Pow/Log are swapped on mutation.
	// Valid range: [0, 1].
	BinarySwitchProb float64 `json:"binary_switch_prob"`
}

// Default returns the hand-tuned baseline hyperparameters.
func Default() *Params {
	return &Params{
		PopulationNum:              50,
		NewConstMean:               0,
		NewConstStd:                2,
		NewRandomExpressionProb:    0.1,
		RepeatedMutationRate:       1.5,
		RandomExpressionInsertRate: 3,
		MutateReplaceRate:          3,
		ConstMutationProb:          0.01,
		ConstJitterFactor:          3,
		BinarySwitchProb:           0.01,
	}
}

// NewRandom draws a fresh hyperparameter vector from domain-appropriate
// distributions. The result always satisfies IsValid.
func NewRandom(rng *rand.Rand) *Params {
	return &Params{
		PopulationNum:              math.Min(float64(dist.Geometric(rng, 0.1)), MaxPopulationNum),
		NewConstMean:               dist.Normal(rng, 0, 1),
		NewConstStd:                dist.Exponential(rng, 0.9),
		NewRandomExpressionProb:    dist.OpenClosed01(rng),
		RepeatedMutationRate:       dist.Exponential(rng, 0.5) + 1,
		RandomExpressionInsertRate: dist.Exponential(rng, 0.5) + 1,
		MutateReplaceRate:          dist.Exponential(rng, 0.5) + 1,
		ConstMutationProb:          dist.OpenClosed01(rng),
		ConstJitterFactor:          dist.Exponential(rng, 0.5) + 1,
		BinarySwitchProb:           dist.OpenClosed01(rng),
	}
}

// IsValid reports whether every field lies within its declared range.
func (p *Params) IsValid() bool {
	return p.PopulationNum >= 1 && p.PopulationNum <= MaxPopulationNum &&
		p.NewConstStd > 0 &&
		p.NewRandomExpressionProb > 0 && p.NewRandomExpressionProb <= 1 &&
		p.RepeatedMutationRate > 1 &&
		p.RandomExpressionInsertRate > 1 &&
		p.MutateReplaceRate > 1 &&
		p.ConstMutationProb > 0 && p.ConstMutationProb <= 1 &&
		p.ConstJitterFactor >= 1 &&
		p.BinarySwitchProb >= 0 && p.BinarySwitchProb <= 1
}

// Mutate returns a copy with every field jittered by a unit Gaussian
// (PopulationNum jitters proportionally to its own magnitude) and clamped
// back into its valid range. The result always satisfies IsValid.
func (p *Params) Mutate(rng *rand.Rand) *Params {
	return &Params{
		PopulationNum:              clamp(p.PopulationNum+dist.Normal(rng, 0, p.PopulationNum), 1, MaxPopulationNum),
		NewConstMean:               p.NewConstMean + dist.Normal(rng, 0, 1),
		NewConstStd:                math.Max(p.NewConstStd+dist.Normal(rng, 0, 1), 0.0001),
		NewRandomExpressionProb:    clamp(p.NewRandomExpressionProb+dist.Normal(rng, 0, 1), 0.0001, 1),
		RepeatedMutationRate:       math.Max(p.RepeatedMutationRate+dist.Normal(rng, 0, 1), 1.0001),
		RandomExpressionInsertRate: math.Max(p.RandomExpressionInsertRate+dist.Normal(rng, 0, 1), 1.0001),
		MutateReplaceRate:          math.Max(p.MutateReplaceRate+dist.Normal(rng, 0, 1), 1.0001),
		ConstMutationProb:          clamp(p.ConstMutationProb+dist.Normal(rng, 0, 1), 0.0001, 1),
		ConstJitterFactor:          math.Max(p.ConstJitterFactor+dist.Normal(rng, 0, 1), 1),
		BinarySwitchProb:           clamp(p.BinarySwitchProb+dist.Normal(rng, 0, 1), 0, 1),
	}
}

// Crossover builds a child by picking every field independently and uniformly
// from one of the parents. parents must be non-empty.
func Crossover(rng *rand.Rand, parents []*Params) *Params {
	if len(parents) == 0 {
		panic("params: crossover with no parents")
	}
	vectors := make([][NumFields]float64, len(parents))
	for i, p := range parents {
		vectors[i] = p.Vector()
	}
	var v [NumFields]float64
	for i := range v {
		v[i] = vectors[rng.Intn(len(vectors))][i]
	}
	return FromVector(v)
}

// Vector returns the fields as a fixed-size array, in declaration order.
func (p *Params) Vector() [NumFields]float64 {
	return [NumFields]float64{
		p.PopulationNum,
		p.NewConstMean,
		p.NewConstStd,
		p.NewRandomExpressionProb,
		p.RepeatedMutationRate,
		p.RandomExpressionInsertRate,
		p.MutateReplaceRate,
		p.ConstMutationProb,
		p.ConstJitterFactor,
		p.BinarySwitchProb,
	}
}

// FromVector is the inverse of Vector.
func FromVector(v [NumFields]float64) *Params {
	return &Params{
		PopulationNum:              v[0],
		NewConstMean:               v[1],
		NewConstStd:                v[2],
		NewRandomExpressionProb:    v[3],
		RepeatedMutationRate:       v[4],
		RandomExpressionInsertRate: v[5],
		MutateReplaceRate:          v[6],
		ConstMutationProb:          v[7],
		ConstJitterFactor:          v[8],
		BinarySwitchProb:           v[9],
	}
}

// String renders the params as a labelled multi-line record.
func (p *Params) String() string {
	var b strings.Builder
	b.WriteString("{\n")
	fmt.Fprintf(&b, "\tpopulation_num: %.4f,\n", p.PopulationNum)
	fmt.Fprintf(&b, "\tnew_const_mean: %.4f,\n", p.NewConstMean)
	fmt.Fprintf(&b, "\tnew_const_std: %.4f,\n", p.NewConstStd)
	fmt.Fprintf(&b, "\tnew_random_expression_prob: %.4f,\n", p.NewRandomExpressionProb)
	fmt.Fprintf(&b, "\trepeated_mutation_rate: %.4f,\n", p.RepeatedMutationRate)
	fmt.Fprintf(&b, "\trandom_expression_insert_rate: %.4f,\n", p.RandomExpressionInsertRate)
	fmt.Fprintf(&b, "\tmutate_replace_rate: %.4f,\n", p.MutateReplaceRate)
	fmt.Fprintf(&b, "\tconst_mutation_prob: %.4f,\n", p.ConstMutationProb)
	fmt.Fprintf(&b, "\tconst_jitter_factor: %.4f,\n", p.ConstJitterFactor)
	fmt.Fprintf(&b, "\tbinary_switch_prob: %.4f,\n", p.BinarySwitchProb)
	b.WriteString("}")
	return b.String()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
