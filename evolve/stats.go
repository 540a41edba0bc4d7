package evolve

import "time"

// GenerationStats is a snapshot of the population at the end of a generation.
type GenerationStats struct {
	Generation  int       `json:"generation"`
	BestFitness float64   `json:"best_fitness"`
	AvgFitness  float64   `json:"avg_fitness"`
	BestSize    int       `json:"best_size"`
	MaxSize     int       `json:"max_size"`
	Timestamp   time.Time `json:"timestamp"`
}

// History returns the stats recorded so far. Empty unless OnGeneration is
// set.
func (e *Evolve) History() []GenerationStats {
	return e.history
}

func (e *Evolve) recordStats() {
	if e.OnGeneration == nil {
		return
	}
	if e.StatsInterval > 1 && e.totalIterations%e.StatsInterval != 0 {
		return
	}

	var sum float64
	for _, ind := range e.pop {
		sum += ind.fitness
	}
	stats := GenerationStats{
		Generation:  e.totalIterations,
		BestFitness: e.pop[0].fitness,
		AvgFitness:  sum / float64(len(e.pop)),
		BestSize:    e.pop[0].tree.Size(),
		MaxSize:     e.maxSize(),
		Timestamp:   time.Now(),
	}
	e.history = append(e.history, stats)
	e.OnGeneration(stats)
}
