// Package evolve implements the inner evolutionary loop: a population of
// expression trees evolved against a fixed sample set under an elitism +
// mutation-cascade + random-insertion schedule controlled by params.Params.
package evolve

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/exp/rand"

	"github.com/symreg-dev/symreg/expr"
	"github.com/symreg-dev/symreg/params"
)

// footprintWarnBytes triggers a verbose warning when the estimated population
// footprint grows past it.
const footprintWarnBytes = 1 << 20

type individual struct {
	tree    expr.Tree
	fitness float64
}

// Evolve is one inner evolutionary run. The sample set and params are fixed
// at construction; the population is always sorted ascending by fitness.
type Evolve struct {
	pop             []individual
	data            [][2]float64
	params          params.Params
	rng             *rand.Rand
	seed            uint64
	totalIterations int
	itersToBest     int

	// Verbose enables progress logging via the standard logger.
	Verbose bool

	// OnGeneration, when set, is invoked with statistics every
	// StatsInterval generations (every generation if the interval is 0
	// or 1). Stats are also retained in the history.
	OnGeneration  func(GenerationStats)
	StatsInterval int
	history       []GenerationStats
}

// New builds an evolver over the (x, y) samples. A nil p uses
// params.Default(). A zero seed draws one from the clock; any other seed
// makes the run fully reproducible.
func New(data [][2]float64, p *params.Params, seed uint64) (*Evolve, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("evolve: empty sample set")
	}
	if p == nil {
		p = params.Default()
	}
	if !p.IsValid() {
		return nil, fmt.Errorf("evolve: invalid params %+v", *p)
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))

	n := int(math.Round(p.PopulationNum))
	pop := make([]individual, n)
	for i := range pop {
		tree := expr.NewRandomGeometric(rng, p).Simplify()
		pop[i] = individual{tree: tree, fitness: tree.Fitness(data)}
	}
	sortByFitness(pop)

	return &Evolve{
		pop:    pop,
		data:   data,
		params: *p,
		rng:    rng,
		seed:   seed,
	}, nil
}

// FromXY builds an evolver from parallel x and y slices.
func FromXY(xs, ys []float64, p *params.Params, seed uint64) (*Evolve, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("evolve: %d xs vs %d ys", len(xs), len(ys))
	}
	data := make([][2]float64, len(xs))
	for i, x := range xs {
		data[i] = [2]float64{x, ys[i]}
	}
	return New(data, p, seed)
}

// Step advances the evolution by the given number of generations.
func (e *Evolve) Step(generations int) {
	for c := 0; c < generations; c++ {
		e.stepOnce()
	}
}

// stepOnce produces one new generation: elitism, the mutation cascade over
// the rank-sorted parents, the random-insertion sweep, then simplify and
// re-sort.
func (e *Evolve) stepOnce() {
	n := len(e.pop)

	if e.Verbose {
		if fp := e.footprint(); fp > footprintWarnBytes {
			log.Printf("evolve: huge population footprint: %d bytes at generation %d", fp, e.totalIterations)
		}
	}

	newPop := make([]individual, 0, n)

	// The previous best survives unconditionally.
	newPop = append(newPop, e.pop[0])

	for len(newPop) < n {
		for i := 0; i < n && len(newPop) < n; i++ {
			if e.rng.Float64() >= float64(n-i)/float64(n) {
				continue
			}
			// Mutation run seeded by parent i: the first mutant is
			// unconditional, later ones survive a coin biased by the
			// parent's rank.
			for j := 0; j < n && len(newPop) < n; j++ {
				if j > 0 && e.rng.Float64() >= math.Pow(e.params.RepeatedMutationRate, -float64(i)) {
					break
				}
				newPop = append(newPop, individual{tree: e.pop[i].tree.Mutate(e.rng, &e.params)})
			}
		}
		for i := 0; i < n && len(newPop) < n; i++ {
			if e.rng.Float64() < math.Pow(e.params.RandomExpressionInsertRate, -float64(i)) {
				newPop = append(newPop, individual{tree: expr.NewRandomGeometric(e.rng, &e.params)})
			}
		}
	}

	for i := range newPop {
		newPop[i].tree = newPop[i].tree.Simplify()
		newPop[i].fitness = newPop[i].tree.Fitness(e.data)
	}
	sortByFitness(newPop)

	if totalLess(newPop[0].fitness, e.pop[0].fitness) {
		e.itersToBest = e.totalIterations
	}

	e.pop = newPop
	e.totalIterations++
	e.recordStats()
}

// BestFitness returns the fitness of the current best tree.
func (e *Evolve) BestFitness() float64 {
	return e.pop[0].fitness
}

// BestEval evaluates the current best tree at x.
func (e *Evolve) BestEval(x float64) float64 {
	return e.pop[0].tree.Eval(x)
}

// BestString renders the current best tree.
func (e *Evolve) BestString() string {
	return e.pop[0].tree.String()
}

// BestTree returns the current best tree.
func (e *Evolve) BestTree() expr.Tree {
	return e.pop[0].tree
}

// ItersToBest returns the generation index at which the current best first
// appeared.
func (e *Evolve) ItersToBest() int {
	return e.itersToBest
}

// Generation returns the number of generations stepped so far.
func (e *Evolve) Generation() int {
	return e.totalIterations
}

// PopulationSize returns the fixed population size.
func (e *Evolve) PopulationSize() int {
	return len(e.pop)
}

// Params returns a copy of the run's hyperparameters.
func (e *Evolve) Params() params.Params {
	return e.params
}

// Seed returns the seed the run was started with.
func (e *Evolve) Seed() uint64 {
	return e.seed
}

// String renders a multi-line run summary.
func (e *Evolve) String() string {
	var b strings.Builder
	b.WriteString("{\n")
	fmt.Fprintf(&b, "\ttotal_iterations: %d\n", e.totalIterations)
	fmt.Fprintf(&b, "\tpopulation size: %d\n", len(e.pop))
	fmt.Fprintf(&b, "\tpopulation footprint (bytes): %d\n", e.footprint())
	fmt.Fprintf(&b, "\tmax expression size: %d\n", e.maxSize())
	fmt.Fprintf(&b, "\tmax expression depth: %d\n", e.maxDepth())
	fmt.Fprintf(&b, "\tbest expression size: %d\n", e.pop[0].tree.Size())
	fmt.Fprintf(&b, "\tbest expression depth: %d\n", e.pop[0].tree.Depth())
	fmt.Fprintf(&b, "\tbest expression fitness: %.4f\n", e.pop[0].fitness)
	fmt.Fprintf(&b, "\tbest expression: %s\n", e.pop[0].tree)
	fmt.Fprintf(&b, "\tparams: %s\n", indent(e.params.String()))
	b.WriteString("}")
	return b.String()
}

func (e *Evolve) maxSize() int {
	m := 0
	for _, ind := range e.pop {
		if s := ind.tree.Size(); s > m {
			m = s
		}
	}
	return m
}

func (e *Evolve) maxDepth() int {
	m := 0
	for _, ind := range e.pop {
		if d := ind.tree.Depth(); d > m {
			m = d
		}
	}
	return m
}

// footprint estimates the population's memory use from node counts.
func (e *Evolve) footprint() int {
	const nodeBytes = 64
	total := 0
	for _, ind := range e.pop {
		total += ind.tree.Size() * nodeBytes
	}
	return total
}

func indent(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", "\n\t"))
}

// sortByFitness sorts ascending under a total order where NaN ranks last.
// The sort is stable so equal-fitness individuals keep their relative order.
func sortByFitness(pop []individual) {
	sort.SliceStable(pop, func(i, j int) bool {
		return totalLess(pop[i].fitness, pop[j].fitness)
	})
}

func totalLess(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}
