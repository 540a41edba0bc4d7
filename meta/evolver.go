package meta

import (
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"golang.org/x/exp/rand"

	"github.com/symreg-dev/symreg/params"
)

// DefaultPopulationNum is the default meta population size.
const DefaultPopulationNum = 30

// Config holds configuration for a meta-evolutionary run.
type Config struct {
	PopulationSize int       // Number of candidates per generation
	Benchmark      Benchmark // Meta objective
	Seed           uint64    // Random seed (0 = use time)
	NumWorkers     int       // Number of parallel workers (0 = auto)
	Verbose        bool      // Enable verbose logging
}

// DefaultConfig returns a default meta configuration.
func DefaultConfig() *Config {
	return &Config{
		PopulationSize: DefaultPopulationNum,
		Benchmark:      DefaultBenchmark(),
	}
}

// MetaEvolve runs the meta-evolutionary loop. The population is sorted
// ascending by meta-fitness after every generation.
type MetaEvolve struct {
	config          *Config
	pop             []*Entity
	rng             *rand.Rand
	seed            uint64
	evaluator       *Evaluator
	totalIterations int
}

// New creates a meta evolver with a freshly drawn random population. The
// initial population is unevaluated; the sorted-population invariant holds
// from the first Step on.
func New(config *Config) (*MetaEvolve, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.PopulationSize < 1 {
		return nil, fmt.Errorf("meta: population size %d", config.PopulationSize)
	}
	b := config.Benchmark
	if len(b.Functions) == 0 || b.RunsPerFunction < 1 || b.StepsPerRun < 1 {
		return nil, fmt.Errorf("meta: degenerate benchmark (%d functions, %d runs, %d steps)",
			len(b.Functions), b.RunsPerFunction, b.StepsPerRun)
	}

	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))

	pop := make([]*Entity, config.PopulationSize)
	for i := range pop {
		pop[i] = NewRandomEntity(rng)
	}

	return &MetaEvolve{
		config:    config,
		pop:       pop,
		rng:       rng,
		seed:      seed,
		evaluator: NewEvaluator(config.NumWorkers),
	}, nil
}

// Step advances the meta evolution by the given number of generations.
func (m *MetaEvolve) Step(generations int) {
	for c := 0; c < generations; c++ {
		m.stepOnce()
	}
}

// stepOnce produces one meta generation: keep the elite, queue mutants of
// the top half with rank-indexed probability, fill with crossover of two
// distinct parents, score everything in parallel, then sort and truncate.
func (m *MetaEvolve) stepOnce() {
	M := len(m.pop)

	newPop := make([]*Entity, 0, M)
	newPop = append(newPop, m.pop[0])

	for i := 0; i < M/2 && len(newPop) < M; i++ {
		if m.rng.Float64() < float64(M-i)/float64(M) {
			newPop = append(newPop, m.pop[i].Mutate(m.rng))
		}
	}

	for M >= 2 && len(newPop) < M {
		i := m.rng.Intn(M)
		j := m.rng.Intn(M - 1)
		if j >= i {
			j++
		}
		newPop = append(newPop, CrossoverEntities(m.rng, []*Entity{m.pop[i], m.pop[j]}))
	}

	m.evaluator.EvaluateAll(newPop, m.config.Benchmark, m.seed)

	sort.SliceStable(newPop, func(i, j int) bool {
		return totalLess(newPop[i].fitness, newPop[j].fitness)
	})
	if len(newPop) > M {
		newPop = newPop[:M]
	}

	m.pop = newPop
	m.totalIterations++

	if m.config.Verbose {
		log.Printf("meta: generation %d best fitness %.4f", m.totalIterations, m.pop[0].fitness)
	}
}

// BestFitness returns the best candidate's meta-fitness, computing it if the
// population has not been evaluated yet.
func (m *MetaEvolve) BestFitness() float64 {
	return m.pop[0].Fitness(m.config.Benchmark, m.seed)
}

// BestParams returns a copy of the best candidate's hyperparameters.
func (m *MetaEvolve) BestParams() params.Params {
	return m.pop[0].Params
}

// BestIndividual returns the best candidate.
func (m *MetaEvolve) BestIndividual() *Entity {
	return m.pop[0]
}

// PopulationSize returns the fixed population size.
func (m *MetaEvolve) PopulationSize() int {
	return len(m.pop)
}

// Generation returns the number of meta generations stepped so far.
func (m *MetaEvolve) Generation() int {
	return m.totalIterations
}

// Population returns the current candidates, best first once a generation
// has been stepped.
func (m *MetaEvolve) Population() []*Entity {
	return m.pop
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
