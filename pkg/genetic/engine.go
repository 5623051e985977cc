package genetic

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dd0wney/cluso-steiner/pkg/graph"
)

// GenerationStats summarises one scored generation
type GenerationStats struct {
	Generation      int // 0 is the initial population
	MinFitness      int
	MaxFitness      int
	MeanFitness     float64
	Penalized       int // individuals scored with the penalty
	Population      int
	Penalty         int
	BestIndex       int // first index holding MinFitness
	BestEverFitness int
	EvalDuration    time.Duration
}

// Result is the outcome of a run
type Result struct {
	// Best is the lowest-scoring individual of the final population
	Best        Individual
	BestFitness int

	// BestEver is the lowest-scoring individual seen in any generation
	BestEver           Individual
	BestEverFitness    int
	BestEverGeneration int

	// Connected reports whether Best connects the targets
	Connected   bool
	Penalty     int
	History     []GenerationStats
	Evaluations int64
	Seed        uint64
}

// Engine runs the genetic search over one graph and target set.
// An Engine holds no state between runs; Run may be called repeatedly.
type Engine struct {
	edges   graph.EdgeList
	targets graph.NodeSet
	opts    Options
}

// NewEngine validates the options against the graph and returns an engine
func NewEngine(edges graph.EdgeList, targets graph.NodeSet, opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(edges) == 0 && len(targets) > 0 {
		return nil, ErrNoEdges
	}
	if len(edges) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewEdges, len(edges))
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	return &Engine{edges: edges, targets: targets, opts: opts}, nil
}

// Options returns the options the engine runs with
func (e *Engine) Options() Options {
	return e.opts
}

// stream returns the random source for generation g
func (e *Engine) stream(g int) *rand.Rand {
	return rand.New(rand.NewPCG(e.opts.Seed, uint64(g)))
}

// Run evolves the population for the configured number of generations.
// The context is checked between generations.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	eval, err := NewEvaluator(e.edges, e.targets, e.opts.Workers)
	if err != nil {
		return nil, err
	}
	defer eval.Close()

	n := e.opts.PopulationSize
	m := len(e.edges)

	res := &Result{
		Penalty: eval.Penalty(),
		History: make([]GenerationStats, 0, e.opts.Generations+1),
		Seed:    e.opts.Seed,
	}

	rng := e.stream(0)
	pop := make([]Individual, n)
	for i := range pop {
		pop[i] = CreateIndividual(rng, m)
	}
	scores, err := e.score(eval, pop, 0, res)
	if err != nil {
		return nil, err
	}

	for g := 1; g <= e.opts.Generations; g++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("genetic: stopped before generation %d: %w", g, err)
		}

		pop = e.reproduce(e.stream(g), pop, scores)
		scores, err = e.score(eval, pop, g, res)
		if err != nil {
			return nil, err
		}
	}

	best := lowest(scores)
	res.Best = pop[best].Clone()
	res.BestFitness = scores[best]
	res.Connected = res.BestFitness < res.Penalty
	res.Evaluations = eval.Evaluations()
	return res, nil
}

// reproduce builds the next generation. Pairs are produced until n children
// exist; for odd n the second child of the last pair is dropped after it has
// been mutated.
func (e *Engine) reproduce(rng *rand.Rand, pop []Individual, scores []int) []Individual {
	n := len(pop)
	next := make([]Individual, 0, n+1)

	for len(next) < n {
		p1 := Selection(rng, pop, scores, e.opts.TournamentSize)
		p2 := Selection(rng, pop, scores, e.opts.TournamentSize)
		c1, c2 := Crossover(rng, p1, p2)
		Mutate(rng, c1, e.opts.MutationRate)
		Mutate(rng, c2, e.opts.MutationRate)
		next = append(next, c1, c2)
	}

	return next[:n]
}

// score evaluates a generation, records its stats and updates the running best
func (e *Engine) score(eval *Evaluator, pop []Individual, g int, res *Result) ([]int, error) {
	start := time.Now()
	scores, err := eval.Evaluate(pop)
	if err != nil {
		return nil, fmt.Errorf("genetic: evaluate generation %d: %w", g, err)
	}

	stats := summarize(scores, res.Penalty)
	stats.Generation = g
	stats.EvalDuration = time.Since(start)

	if res.BestEver == nil || stats.MinFitness < res.BestEverFitness {
		res.BestEver = pop[stats.BestIndex].Clone()
		res.BestEverFitness = stats.MinFitness
		res.BestEverGeneration = g
	}
	stats.BestEverFitness = res.BestEverFitness

	res.History = append(res.History, stats)
	if e.opts.OnGeneration != nil {
		e.opts.OnGeneration(stats)
	}
	return scores, nil
}

func summarize(scores []int, penalty int) GenerationStats {
	best := lowest(scores)
	stats := GenerationStats{
		MinFitness: scores[best],
		MaxFitness: scores[0],
		BestIndex:  best,
		Population: len(scores),
		Penalty:    penalty,
	}

	total := 0
	for _, s := range scores {
		total += s
		if s > stats.MaxFitness {
			stats.MaxFitness = s
		}
		if s >= penalty {
			stats.Penalized++
		}
	}
	stats.MeanFitness = float64(total) / float64(len(scores))
	return stats
}

// lowest returns the first index of the minimum score
func lowest(scores []int) int {
	best := 0
	for i, s := range scores {
		if s < scores[best] {
			best = i
		}
	}
	return best
}
