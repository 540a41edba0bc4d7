package meta

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/symreg-dev/symreg/params"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// tinyBenchmark keeps meta tests fast.
func tinyBenchmark() Benchmark {
	return Benchmark{
		Functions: []TargetFunc{
			func(x float64) float64 { return x },
			func(x float64) float64 { return math.Cos(x) + 1 },
		},
		RunsPerFunction: 1,
		StepsPerRun:     100,
	}
}

func TestSamplesSubstituteNonFinite(t *testing.T) {
	b := DefaultBenchmark()
	data := b.Samples(func(x float64) float64 { return 1 / x })

	require.Len(t, data, 11)
	for _, d := range data {
		if d[0] == 0 {
			assert.Equal(t, 0.0, d[1], "singular target value must be substituted")
		}
		assert.False(t, math.IsNaN(d[1]) || math.IsInf(d[1], 0))
	}
}

func TestIdenticalParamsIdenticalFitness(t *testing.T) {
	b := tinyBenchmark()
	p := params.Default()

	a := &Entity{Params: *p}
	c := &Entity{Params: *p}

	const seed = 99
	require.Equal(t, a.Fitness(b, seed), c.Fitness(b, seed),
		"two candidates with identical params must score identically")
}

func TestFitnessIsMemoised(t *testing.T) {
	b := tinyBenchmark()
	e := &Entity{Params: *params.Default()}

	first := e.Fitness(b, 7)
	assert.True(t, e.Evaluated())

	// A different benchmark cannot change an already-computed fitness.
	other := tinyBenchmark()
	other.StepsPerRun = 1
	assert.Equal(t, first, e.Fitness(other, 1234))
}

func TestInvalidParamsScoreInfinite(t *testing.T) {
	b := tinyBenchmark()
	p := params.Default()
	p.NewConstStd = -1

	e := &Entity{Params: *p}
	assert.True(t, math.IsInf(e.Fitness(b, 1), 1))
}

func TestMutateAndCrossoverProduceFreshEntities(t *testing.T) {
	rng := testRNG(1)
	b := tinyBenchmark()

	parent := NewRandomEntity(rng)
	parent.Fitness(b, 5)

	child := parent.Mutate(rng)
	assert.False(t, child.Evaluated())
	assert.True(t, child.Params.IsValid())

	other := NewRandomEntity(rng)
	cross := CrossoverEntities(rng, []*Entity{parent, other})
	assert.False(t, cross.Evaluated())
	assert.True(t, cross.Params.IsValid())
}

func TestMetaEvolveSmallRun(t *testing.T) {
	m, err := New(&Config{
		PopulationSize: 4,
		Benchmark: Benchmark{
			Functions:       DefaultBenchmark().Functions,
			RunsPerFunction: 1,
			StepsPerRun:     50,
		},
		Seed:       12345,
		NumWorkers: 2,
	})
	require.NoError(t, err)

	m.Step(2)

	assert.Equal(t, 2, m.Generation())
	pop := m.Population()
	require.Len(t, pop, 4)

	for _, e := range pop {
		assert.True(t, e.Evaluated(), "every survivor must be scored")
	}
	for i := 1; i < len(pop); i++ {
		assert.LessOrEqual(t, pop[i-1].fitness, pop[i].fitness,
			"population must be sorted ascending by meta-fitness")
	}
	assert.Equal(t, m.BestParams(), pop[0].Params)
	bestParams := m.BestParams()
	assert.True(t, bestParams.IsValid())
}

func TestMetaEvolveBestNeverRegresses(t *testing.T) {
	m, err := New(&Config{
		PopulationSize: 5,
		Benchmark:      tinyBenchmark(),
		Seed:           777,
		NumWorkers:     2,
	})
	require.NoError(t, err)

	m.Step(1)
	prev := m.BestFitness()
	for i := 0; i < 4; i++ {
		m.Step(1)
		cur := m.BestFitness()
		assert.LessOrEqual(t, cur, prev, "elite preservation must keep the best")
		prev = cur
	}
}

func TestNewRejectsDegenerateConfig(t *testing.T) {
	_, err := New(&Config{PopulationSize: 0, Benchmark: tinyBenchmark()})
	assert.Error(t, err)

	_, err = New(&Config{PopulationSize: 3, Benchmark: Benchmark{}})
	assert.Error(t, err)
}

func TestEvaluatorOrdersResults(t *testing.T) {
	b := tinyBenchmark()
	rng := testRNG(2)

	entities := make([]*Entity, 6)
	for i := range entities {
		entities[i] = NewRandomEntity(rng)
	}

	got := NewEvaluator(3).EvaluateAll(entities, b, 42)
	require.Len(t, got, len(entities))
	for i, e := range entities {
		assert.Equal(t, e.fitness, got[i], "result %d out of order", i)
	}
}
