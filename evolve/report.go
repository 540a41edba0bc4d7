package evolve

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/symreg-dev/symreg/params"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0"

// RunReport is the serializable summary of a finished (or in-progress) run:
// the best individual and the knobs that produced it, never the population
// itself.
type RunReport struct {
	Params         params.Params     `json:"params"`
	Seed           uint64            `json:"seed"`
	Generations    int               `json:"generations"`
	ItersToBest    int               `json:"iters_to_best"`
	BestExpression string            `json:"best_expression"`
	BestFitness    float64           `json:"best_fitness"`
	BestSize       int               `json:"best_size"`
	BestDepth      int               `json:"best_depth"`
	Stats          []GenerationStats `json:"stats,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
	Version        string            `json:"version"`
}

// Report summarises the run's current state.
func (e *Evolve) Report() *RunReport {
	best := e.pop[0]
	fitness := best.fitness
	if math.IsInf(fitness, 1) {
		fitness = math.MaxFloat64 // JSON has no Inf
	}
	return &RunReport{
		Params:         e.params,
		Seed:           e.seed,
		Generations:    e.totalIterations,
		ItersToBest:    e.itersToBest,
		BestExpression: best.tree.String(),
		BestFitness:    fitness,
		BestSize:       best.tree.Size(),
		BestDepth:      best.tree.Depth(),
		Stats:          e.history,
		Timestamp:      time.Now(),
		Version:        ReportVersion,
	}
}

// Save writes the report as indented JSON, atomically (temp file + rename).
func (r *RunReport) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to finalize report: %w", err)
	}
	return nil
}

// LoadReport reads a report written by Save.
func LoadReport(path string) (*RunReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var r RunReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &r, nil
}
