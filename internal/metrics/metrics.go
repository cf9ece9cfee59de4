// Package metrics exposes the service's Prometheus collectors on a
// dedicated registry, grounded on the ancestor's metrics.Registry /
// RegisterDefault exactly — a private registry rather than the global
// default so /metrics never accidentally picks up collectors some
// unrelated import registered on prometheus.DefaultRegisterer.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// RoundsTotal counts LocalSearch rounds applied, across all runs.
	RoundsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "vrpls_rounds_total", Help: "Total local-search rounds applied."},
	)
	// OperatorApplied counts winning-operator applications by family
	// (exchange, cross_exchange, two_opt_star, reverse_two_opt_star,
	// relocate, or_opt).
	OperatorApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "vrpls_operator_applied_total", Help: "Winning operator applications by family."},
		[]string{"family"},
	)
	// RoundGain histograms the cost reduction of each applied round.
	RoundGain = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "vrpls_round_gain", Help: "Cost reduction of each applied local-search round.", Buckets: prometheus.ExponentialBuckets(1, 2, 16)},
	)
	// SolutionCost gauges the current total solution cost per run.
	SolutionCost = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "vrpls_solution_cost", Help: "Total solution cost."},
		[]string{"run_id"},
	)
	// UnassignedCount gauges the number of unassigned jobs per run.
	UnassignedCount = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "vrpls_unassigned_count", Help: "Unassigned job count."},
		[]string{"run_id"},
	)
)

// RegisterDefault registers every collector exactly once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(RoundsTotal)
		Registry.MustRegister(OperatorApplied)
		Registry.MustRegister(RoundGain)
		Registry.MustRegister(SolutionCost)
		Registry.MustRegister(UnassignedCount)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
