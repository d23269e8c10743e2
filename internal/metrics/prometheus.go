package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Egglessbonek/project-oasis/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	solveDuration  prometheus.Histogram
	solveIters     prometheus.Histogram
	solveOutcomes  *prometheus.CounterVec
	insideSamples  prometheus.Gauge
	recalcResults  *prometheus.CounterVec
	recalcDuration prometheus.Histogram
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "oasis" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "oasis"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.solveDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "duration_seconds",
			Help:      "Wall-clock duration of service-area computations in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2.5, 10), // 10ms .. ~38s
		})

		p.solveIters = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "iterations",
			Help:      "Iterations used per computation before convergence or exhaustion.",
			Buckets:   []float64{1, 2, 5, 10, 20, 40, 60, 80, 100},
		})

		p.solveOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "outcomes_total",
			Help:      "Computation outcomes (converged, exhausted, degenerate, error).",
		}, []string{"outcome"})

		p.insideSamples = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "inside_samples",
			Help:      "Inside-boundary sample count of the most recent computation.",
		})

		p.recalcResults = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "worker",
			Name:      "recalc_results_total",
			Help:      "Recalculation request outcomes (completed, skipped, failed).",
		}, []string{"result"})

		p.recalcDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "worker",
			Name:      "recalc_duration_seconds",
			Help:      "End-to-end recalculation latency in seconds, persistence included.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2.5, 10),
		})

		p.reg.MustRegister(p.solveDuration)
		p.reg.MustRegister(p.solveIters)
		p.reg.MustRegister(p.solveOutcomes)
		p.reg.MustRegister(p.insideSamples)
		p.reg.MustRegister(p.recalcResults)
		p.reg.MustRegister(p.recalcDuration)
	})
}

// SolverMetrics implementation

// RecordSolveDuration observes the duration of one computation.
func (p *PrometheusCollector) RecordSolveDuration(seconds float64) {
	p.ensureRegistered()
	p.solveDuration.Observe(seconds)
}

// RecordSolveIterations observes the iteration count of one computation.
func (p *PrometheusCollector) RecordSolveIterations(iterations int) {
	p.ensureRegistered()
	p.solveIters.Observe(float64(iterations))
}

// RecordSolveOutcome increments the outcome counter.
func (p *PrometheusCollector) RecordSolveOutcome(outcome string) {
	p.ensureRegistered()
	p.solveOutcomes.WithLabelValues(outcome).Inc()
}

// RecordInsideSamples sets the inside-sample gauge.
func (p *PrometheusCollector) RecordInsideSamples(count int) {
	p.ensureRegistered()
	p.insideSamples.Set(float64(count))
}

// WorkerMetrics implementation

// RecordRecalcResult increments the recalculation result counter.
func (p *PrometheusCollector) RecordRecalcResult(result string) {
	p.ensureRegistered()
	p.recalcResults.WithLabelValues(result).Inc()
}

// ObserveRecalcDuration observes one recalculation latency.
func (p *PrometheusCollector) ObserveRecalcDuration(seconds float64) {
	p.ensureRegistered()
	p.recalcDuration.Observe(seconds)
}
