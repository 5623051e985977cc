package health

import (
	"sync"
	"time"

	"github.com/dd0wney/cluso-steiner/pkg/genetic"
)

// Progress follows a running search. Observe is meant to be passed to
// search.WithOnGeneration; the checks read it from HTTP goroutines.
type Progress struct {
	mu         sync.RWMutex
	total      int
	generation int
	bestEver   int
	penalized  int
	population int
	lastUpdate time.Time
	started    bool
	finished   bool
	err        error
}

// NewProgress tracks a run of the given number of generations
func NewProgress(generations int) *Progress {
	return &Progress{total: generations}
}

// Observe records a scored generation
func (p *Progress) Observe(s genetic.GenerationStats) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started = true
	p.generation = s.Generation
	p.bestEver = s.BestEverFitness
	p.penalized = s.Penalized
	p.population = s.Population
	p.lastUpdate = time.Now()
}

// Finish marks the run as done; err is nil on success
func (p *Progress) Finish(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finished = true
	p.err = err
	p.lastUpdate = time.Now()
}

// ProgressCheck is healthy while generations keep arriving, degraded when
// none arrived within stallAfter and unhealthy once the run failed
func ProgressCheck(p *Progress, stallAfter time.Duration) CheckFunc {
	return func() Check {
		p.mu.RLock()
		defer p.mu.RUnlock()

		check := Check{
			Name: "search",
			Details: map[string]any{
				"generation":        p.generation,
				"generations":       p.total,
				"best_ever_fitness": p.bestEver,
				"finished":          p.finished,
			},
		}
		if p.population > 0 {
			check.Details["penalized_ratio"] = float64(p.penalized) / float64(p.population)
		}

		switch {
		case p.err != nil:
			check.Status = StatusUnhealthy
			check.Message = p.err.Error()
		case p.finished:
			check.Status = StatusHealthy
			check.Message = "Search finished"
		case !p.started:
			check.Status = StatusHealthy
			check.Message = "Loading graph"
		case stallAfter > 0 && time.Since(p.lastUpdate) > stallAfter:
			check.Status = StatusDegraded
			check.Message = "No generation scored recently"
		default:
			check.Status = StatusHealthy
			check.Message = "Evolving"
		}
		return check
	}
}

// ReadyCheck reports ready once the first generation has been scored
func ReadyCheck(p *Progress) CheckFunc {
	return func() Check {
		p.mu.RLock()
		defer p.mu.RUnlock()

		if p.started || p.finished {
			return Check{Name: "ready", Status: StatusHealthy}
		}
		return Check{Name: "ready", Status: StatusUnhealthy, Message: "Graph not loaded"}
	}
}
