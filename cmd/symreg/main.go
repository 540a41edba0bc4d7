// Command symreg runs a symbolic regression search from the command line:
// either one inner run against a preset target function, or a meta search
// over the hyperparameter space.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/symreg-dev/symreg/evolve"
	"github.com/symreg-dev/symreg/meta"
)

var targets = map[string]meta.TargetFunc{
	"cubic": func(x float64) float64 { return 2*x*x - 3*x*x*x },
	"cos1":  func(x float64) float64 { return math.Cos(x) + 1 },
	"exp3":  func(x float64) float64 { return math.Pow(3, x) },
	"quad":  func(x float64) float64 { return x*x - x - 1 },
	"sin":   math.Sin,
	"id":    func(x float64) float64 { return x },
}

func main() {
	var (
		target    = flag.String("target", "cubic", "preset target function ("+targetNames()+")")
		steps     = flag.Int("steps", 50000, "inner generations to run")
		seed      = flag.Uint64("seed", 0, "random seed (0 = from the clock)")
		report    = flag.String("report", "", "write a JSON run report to this path")
		runMeta   = flag.Bool("meta", false, "run the meta search instead of a single inner run")
		metaSteps = flag.Int("meta-steps", 10, "meta generations to run")
		metaPop   = flag.Int("meta-pop", meta.DefaultPopulationNum, "meta population size")
		runs      = flag.Int("runs", meta.DefaultRunsPerFunction, "inner runs per benchmark function")
		workers   = flag.Int("workers", 0, "parallel workers for meta evaluation (0 = auto)")
		verbose   = flag.Bool("v", false, "verbose progress logging")
	)
	flag.Parse()

	if *runMeta {
		if err := metaSearch(*metaPop, *metaSteps, *steps, *runs, *seed, *workers, *verbose); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := innerSearch(*target, *steps, *seed, *report, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func innerSearch(target string, steps int, seed uint64, reportPath string, verbose bool) error {
	f, ok := targets[target]
	if !ok {
		return fmt.Errorf("unknown target %q (have %s)", target, targetNames())
	}

	data := make([][2]float64, 0, 11)
	for x := -5; x <= 5; x++ {
		y := f(float64(x))
		if math.IsNaN(y) || math.IsInf(y, 0) {
			y = 0
		}
		data = append(data, [2]float64{float64(x), y})
	}

	e, err := evolve.New(data, nil, seed)
	if err != nil {
		return err
	}
	e.Verbose = verbose
	if verbose {
		e.StatsInterval = 10000
		e.OnGeneration = func(s evolve.GenerationStats) {
			log.Printf("generation %d: best fitness %.4f (size %d)", s.Generation, s.BestFitness, s.BestSize)
		}
	}

	e.Step(steps)

	fmt.Printf("the function is approx %s\n", e.BestString())
	fmt.Println(e)

	if reportPath != "" {
		if err := e.Report().Save(reportPath); err != nil {
			return err
		}
		log.Printf("report written to %s", reportPath)
	}
	return nil
}

func metaSearch(pop, metaSteps, innerSteps, runs int, seed uint64, workers int, verbose bool) error {
	b := meta.DefaultBenchmark()
	b.StepsPerRun = innerSteps
	b.RunsPerFunction = runs

	m, err := meta.New(&meta.Config{
		PopulationSize: pop,
		Benchmark:      b,
		Seed:           seed,
		NumWorkers:     workers,
		Verbose:        verbose,
	})
	if err != nil {
		return err
	}

	m.Step(metaSteps)

	fmt.Printf("best meta individual after %d generations:\n%s\n", m.Generation(), m.BestIndividual())
	return nil
}

func targetNames() string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
