package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Search Metrics
	GenerationsTotal     prometheus.Counter
	FitnessEvaluations   prometheus.Counter
	BestFitness          prometheus.Gauge
	GenerationMinFitness prometheus.Gauge
	PenalizedRatio       prometheus.Gauge
	RunsTotal            *prometheus.CounterVec
	RunDuration          prometheus.Histogram
	EvaluationDuration   prometheus.Histogram

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry  *prometheus.Registry
	startTime time.Time
	mu        sync.RWMutex
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry:  reg,
		startTime: time.Now(),
	}

	r.initSearchMetrics()
	r.initSystemMetrics()

	return r
}
