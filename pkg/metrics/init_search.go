package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSearchMetrics() {
	r.GenerationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "steiner_generations_total",
			Help: "Total number of generations evaluated",
		},
	)

	r.FitnessEvaluations = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "steiner_fitness_evaluations_total",
			Help: "Total number of individuals scored",
		},
	)

	r.BestFitness = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "steiner_best_fitness",
			Help: "Lowest fitness seen so far in the current run",
		},
	)

	r.GenerationMinFitness = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "steiner_generation_min_fitness",
			Help: "Lowest fitness in the most recent generation",
		},
	)

	r.PenalizedRatio = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "steiner_penalized_ratio",
			Help: "Fraction of the most recent generation that failed to connect the targets",
		},
	)

	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "steiner_runs_total",
			Help: "Total number of search runs by outcome",
		},
		[]string{"status"},
	)

	r.RunDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "steiner_run_duration_seconds",
			Help:    "Search run duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0, 60.0},
		},
	)

	r.EvaluationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "steiner_evaluation_duration_seconds",
			Help:    "Time to score one generation in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
		},
	)
}
