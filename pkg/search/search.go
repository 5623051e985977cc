// Package search ties loading, evolution and reporting into a single call.
package search

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-steiner/pkg/algorithms"
	"github.com/dd0wney/cluso-steiner/pkg/config"
	"github.com/dd0wney/cluso-steiner/pkg/genetic"
	"github.com/dd0wney/cluso-steiner/pkg/graph"
	"github.com/dd0wney/cluso-steiner/pkg/graphio"
	"github.com/dd0wney/cluso-steiner/pkg/logging"
	"github.com/dd0wney/cluso-steiner/pkg/metrics"
)

// Result is what a search run hands to reporting and rendering
type Result struct {
	// Best is the returned individual: the final population's best, or the
	// best of the whole run when the config asks for it
	Best    genetic.Individual
	Edges   graph.EdgeList
	Targets graph.NodeSet

	// Selected is Edges.Select(Best)
	Selected  graph.EdgeList
	Fitness   int
	Connected bool

	Stats graphio.LoadStats
	Run   *genetic.Result
	RunID string
}

// Option customises a search run
type Option func(*runner)

type runner struct {
	logger       logging.Logger
	metrics      *metrics.Registry
	onGeneration func(genetic.GenerationStats)
	loader       *graphio.Loader
}

// WithLogger sets the logger; runs are silent without one
func WithLogger(l logging.Logger) Option {
	return func(r *runner) { r.logger = l }
}

// WithMetrics records generation and run metrics into reg
func WithMetrics(reg *metrics.Registry) Option {
	return func(r *runner) { r.metrics = reg }
}

// WithOnGeneration calls fn after every scored generation, on the calling goroutine
func WithOnGeneration(fn func(genetic.GenerationStats)) Option {
	return func(r *runner) { r.onGeneration = fn }
}

// WithLoader replaces the edge loader, e.g. to inject an S3 client
func WithLoader(l *graphio.Loader) Option {
	return func(r *runner) { r.loader = l }
}

// RunSearch loads the graph named by cfg and evolves a connecting subgraph
func RunSearch(ctx context.Context, cfg config.Config, opts ...Option) (*Result, error) {
	r := &runner{logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(r)
	}
	loader := graphio.Loader{}
	if r.loader != nil {
		loader = *r.loader
	}
	loader.Options.RejectSelfLoops = cfg.RejectSelfLoops
	loader.S3Config = cfg.S3
	r.loader = &loader

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := r.logger.With(logging.Component("search"), logging.RunID(runID))
	start := time.Now()

	res, err := r.run(ctx, cfg, logger)
	if err != nil {
		logger.Error("search failed", logging.Error(err), logging.Latency(time.Since(start)))
		r.recordRun(err, time.Since(start))
		return nil, err
	}
	res.RunID = runID

	logger.Info("search finished",
		logging.Fitness(res.Fitness),
		logging.Bool("connected", res.Connected),
		logging.Count(len(res.Selected)),
		logging.Int("best_ever_generation", res.Run.BestEverGeneration),
		logging.Latency(time.Since(start)),
	)
	r.recordRun(nil, time.Since(start))
	return res, nil
}

func (r *runner) run(ctx context.Context, cfg config.Config, logger logging.Logger) (*Result, error) {
	timer := logging.StartTimer(logger, "graph loaded", logging.Path(cfg.Graph))
	edges, err := r.loader.Load(ctx, cfg.Graph)
	if err != nil {
		return nil, err
	}
	stats := graphio.Stats(edges)
	timer.End(
		logging.Int("edges", stats.EdgeCount),
		logging.Int("nodes", stats.NodeCount),
		logging.Int("self_loops", stats.SelfLoops),
		logging.Int("duplicate_edges", stats.DuplicateEdges),
	)

	targets := graph.NewNodeSet(cfg.Targets...)
	if len(targets) > 0 && len(edges) > 0 {
		comps := algorithms.ConnectedComponents(graph.BuildAdjacency(edges))
		if !comps.SameComponent(targets) {
			logger.Warn("base graph cannot connect the targets; every individual will be penalized",
				logging.Int("components", len(comps.Components)),
				logging.Any("targets", targets.Sorted()),
			)
		}
	}

	opts := cfg.Options()
	if opts.Seed == 0 {
		opts.Seed = rand.Uint64()
		logger.Info("picked random seed", logging.Seed(opts.Seed))
	}
	opts.OnGeneration = r.generationHook(logger)

	engine, err := genetic.NewEngine(edges, targets, opts)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	logger.Info("search started",
		logging.Seed(opts.Seed),
		logging.Int("population", opts.PopulationSize),
		logging.Int("generations", opts.Generations),
		logging.Int("workers", engine.Options().Workers),
		logging.Count(len(targets)),
	)

	run, err := engine.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	best, fitness, connected := run.Best, run.BestFitness, run.Connected
	if cfg.UseBestEver {
		best, fitness = run.BestEver, run.BestEverFitness
		connected = fitness < run.Penalty
	}
	if !connected {
		logger.Warn("no connecting subgraph found", logging.Fitness(fitness))
	}

	return &Result{
		Best:      best,
		Edges:     edges,
		Targets:   targets,
		Selected:  edges.Select(best),
		Fitness:   fitness,
		Connected: connected,
		Stats:     stats,
		Run:       run,
	}, nil
}

func (r *runner) generationHook(logger logging.Logger) func(genetic.GenerationStats) {
	return func(s genetic.GenerationStats) {
		logger.Debug("generation scored",
			logging.Generation(s.Generation),
			logging.Int("min_fitness", s.MinFitness),
			logging.Float64("mean_fitness", s.MeanFitness),
			logging.Int("penalized", s.Penalized),
			logging.Int("best_ever_fitness", s.BestEverFitness),
		)
		if r.metrics != nil {
			r.metrics.RecordGeneration(s.MinFitness, s.BestEverFitness, s.Penalized, s.Population, s.EvalDuration)
		}
		if r.onGeneration != nil {
			r.onGeneration(s)
		}
	}
}

func (r *runner) recordRun(err error, d time.Duration) {
	if r.metrics == nil {
		return
	}
	status := metrics.StatusSuccess
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = metrics.StatusCancelled
	default:
		status = metrics.StatusError
	}
	r.metrics.RecordRun(status, d)
}
