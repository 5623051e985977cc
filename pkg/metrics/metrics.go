package metrics

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcomes used as the status label of steiner_runs_total
const (
	StatusSuccess   = "success"
	StatusCancelled = "cancelled"
	StatusError     = "error"
)

// RecordGeneration records the summary of one scored generation
func (r *Registry) RecordGeneration(minFitness, bestEverFitness int, penalized, population int, evalDuration time.Duration) {
	r.GenerationsTotal.Inc()
	r.FitnessEvaluations.Add(float64(population))
	r.GenerationMinFitness.Set(float64(minFitness))
	r.BestFitness.Set(float64(bestEverFitness))
	if population > 0 {
		r.PenalizedRatio.Set(float64(penalized) / float64(population))
	}
	r.EvaluationDuration.Observe(evalDuration.Seconds())
}

// RecordRun records a finished run with its outcome
func (r *Registry) RecordRun(status string, duration time.Duration) {
	r.RunsTotal.WithLabelValues(status).Inc()
	r.RunDuration.Observe(duration.Seconds())
}

// UpdateSystemMetrics refreshes uptime, goroutine and memory gauges
func (r *Registry) UpdateSystemMetrics() {
	r.mu.Lock()
	defer r.mu.Unlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	r.UptimeSeconds.Set(time.Since(r.startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.UpdateSystemMetrics()
		promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}).ServeHTTP(w, req)
	})
}
