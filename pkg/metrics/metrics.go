// Package metrics implements the observability hooks with Prometheus
// collectors. A batch run writes them once at exit in the node exporter
// textfile format.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/mstcc/pkg/observability"
)

// Hooks holds the solver collectors. It implements
// [observability.SolveHooks] and [observability.CacheHooks].
type Hooks struct {
	Solves         *prometheus.CounterVec
	SolveDuration  *prometheus.HistogramVec
	BestConflicts  prometheus.Gauge
	BestWeight     prometheus.Gauge
	Iterations     prometheus.Counter
	Improvements   prometheus.Counter
	Restarts       *prometheus.CounterVec
	CacheHits      *prometheus.CounterVec
	CacheMisses    *prometheus.CounterVec
	CacheBytesSent *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Hooks {
	f := promauto.With(reg)
	return &Hooks{
		Solves: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mstcc_solves_total",
			Help: "Total number of solver runs, labelled by algorithm and status.",
		}, []string{"alg", "status"}),

		SolveDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mstcc_solve_duration_seconds",
			Help:    "Wall time of a solver run in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"alg"}),

		BestConflicts: f.NewGauge(prometheus.GaugeOpts{
			Name: "mstcc_best_conflicts",
			Help: "Conflicts of the best tree found by the latest run.",
		}),

		BestWeight: f.NewGauge(prometheus.GaugeOpts{
			Name: "mstcc_best_weight",
			Help: "Weight of the best tree found by the latest run.",
		}),

		Iterations: f.NewCounter(prometheus.CounterOpts{
			Name: "mstcc_ils_iterations_total",
			Help: "Total number of local search runs inside iterated local search.",
		}),

		Improvements: f.NewCounter(prometheus.CounterOpts{
			Name: "mstcc_ils_improvements_total",
			Help: "Total number of new best trees recorded by iterated local search.",
		}),

		Restarts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mstcc_ils_restarts_total",
			Help: "Total number of tree rebuilds, labelled by strategy.",
		}, []string{"strategy"}),

		CacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mstcc_cache_hits_total",
			Help: "Total number of cache hits, labelled by key type.",
		}, []string{"key_type"}),

		CacheMisses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mstcc_cache_misses_total",
			Help: "Total number of cache misses, labelled by key type.",
		}, []string{"key_type"}),

		CacheBytesSent: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mstcc_cache_written_bytes_total",
			Help: "Total bytes written to the cache, labelled by key type.",
		}, []string{"key_type"}),
	}
}

// Register creates collectors on a fresh registry, installs them as the
// global hooks and returns the registry for [WriteFile].
func Register() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	h := New(reg)
	observability.SetSolveHooks(h)
	observability.SetCacheHooks(h)
	return reg
}

// WriteFile writes every metric gathered from g to path in the textfile
// collector format.
func WriteFile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

// =============================================================================
// Hook Implementations
// =============================================================================

func (h *Hooks) OnSolveStart(context.Context, string, string) {}

func (h *Hooks) OnSolveComplete(_ context.Context, _, alg string, conflicts, weight uint64, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	h.Solves.WithLabelValues(alg, status).Inc()
	h.SolveDuration.WithLabelValues(alg).Observe(d.Seconds())
	if err == nil {
		h.BestConflicts.Set(float64(conflicts))
		h.BestWeight.Set(float64(weight))
	}
}

func (h *Hooks) OnIteration(context.Context, int, uint64, uint64) {
	h.Iterations.Inc()
}

func (h *Hooks) OnImprovement(context.Context, uint64, uint64) {
	h.Improvements.Inc()
}

func (h *Hooks) OnRestart(_ context.Context, strategy string) {
	h.Restarts.WithLabelValues(strategy).Inc()
}

func (h *Hooks) OnCacheHit(_ context.Context, keyType string) {
	h.CacheHits.WithLabelValues(keyType).Inc()
}

func (h *Hooks) OnCacheMiss(_ context.Context, keyType string) {
	h.CacheMisses.WithLabelValues(keyType).Inc()
}

func (h *Hooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.CacheBytesSent.WithLabelValues(keyType).Add(float64(size))
}

var (
	_ observability.SolveHooks = (*Hooks)(nil)
	_ observability.CacheHooks = (*Hooks)(nil)
)
