package meta

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"sync"

	"golang.org/x/exp/rand"

	"github.com/symreg-dev/symreg/evolve"
	"github.com/symreg-dev/symreg/params"
)

// fitnessAccuracyWeight makes accuracy dominate convergence speed in the
// meta objective until ties.
const fitnessAccuracyWeight = 10000

// Entity pairs a hyperparameter vector with its memoised meta-fitness.
type Entity struct {
	Params params.Params

	once      sync.Once
	fitness   float64
	evaluated bool
}

// NewRandomEntity draws a fresh, unevaluated entity.
func NewRandomEntity(rng *rand.Rand) *Entity {
	return &Entity{Params: *params.NewRandom(rng)}
}

// Mutate returns a fresh entity with jittered params.
func (e *Entity) Mutate(rng *rand.Rand) *Entity {
	return &Entity{Params: *e.Params.Mutate(rng)}
}

// CrossoverEntities returns a fresh entity whose params are a uniform-parent
// crossover of the parents'.
func CrossoverEntities(rng *rand.Rand, parents []*Entity) *Entity {
	pp := make([]*params.Params, len(parents))
	for i, p := range parents {
		pp[i] = &p.Params
	}
	return &Entity{Params: *params.Crossover(rng, pp)}
}

// Fitness computes (once) and returns the entity's meta-fitness: the mean
// over every (function, run) pair of best_fitness*10000 + iters_to_best
// after StepsPerRun inner generations. Lower is better. Each inner run's
// seed derives from the benchmark seed and the params themselves, so
// identical params always score identically.
func (e *Entity) Fitness(b Benchmark, seed uint64) float64 {
	e.once.Do(func() {
		e.fitness = e.compute(b, seed)
		e.evaluated = true
	})
	return e.fitness
}

// Evaluated reports whether the meta-fitness has been computed.
func (e *Entity) Evaluated() bool {
	return e.evaluated
}

func (e *Entity) compute(b Benchmark, seed uint64) float64 {
	if !e.Params.IsValid() {
		return math.Inf(1)
	}

	var sum float64
	for fi, f := range b.Functions {
		data := b.Samples(f)
		for run := 0; run < b.RunsPerFunction; run++ {
			ev, err := evolve.New(data, &e.Params, runSeed(seed, &e.Params, fi, run))
			if err != nil {
				return math.Inf(1)
			}
			ev.Step(b.StepsPerRun)
			sum += ev.BestFitness()*fitnessAccuracyWeight + float64(ev.ItersToBest())
		}
	}
	return sum / float64(b.runs())
}

// String renders the entity's fitness (if evaluated) and params.
func (e *Entity) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	if e.evaluated {
		fmt.Fprintf(&sb, "\tfitness: %.4f\n", e.fitness)
	} else {
		sb.WriteString("\tfitness: unevaluated\n")
	}
	fmt.Fprintf(&sb, "\tparams: %s\n", strings.TrimSpace(strings.ReplaceAll(e.Params.String(), "\n", "\n\t")))
	sb.WriteString("}")
	return sb.String()
}

// runSeed derives the inner run seed from the benchmark seed, the params
// vector, and the (function, run) coordinates. Hashing the params keeps
// identical candidates identical regardless of their population position.
func runSeed(base uint64, p *params.Params, fn, run int) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], base)
	h.Write(buf[:])
	for _, v := range p.Vector() {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	binary.LittleEndian.PutUint64(buf[:], uint64(fn))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(run))
	h.Write(buf[:])

	s := h.Sum64()
	if s == 0 {
		s = 1 // zero means "seed from the clock" downstream
	}
	return s
}
