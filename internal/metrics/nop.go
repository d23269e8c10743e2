package metrics

import "github.com/Egglessbonek/project-oasis/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// SolverMetrics implementation

// RecordSolveDuration discards the solve duration metric.
func (n *NopMetrics) RecordSolveDuration(_ /* seconds */ float64) {
	// No-op
}

// RecordSolveIterations discards the iteration count metric.
func (n *NopMetrics) RecordSolveIterations(_ /* iterations */ int) {
	// No-op
}

// RecordSolveOutcome discards the outcome metric.
func (n *NopMetrics) RecordSolveOutcome(_ /* outcome */ string) {
	// No-op
}

// RecordInsideSamples discards the inside-sample gauge.
func (n *NopMetrics) RecordInsideSamples(_ /* count */ int) {
	// No-op
}

// WorkerMetrics implementation

// RecordRecalcResult discards the recalculation result metric.
func (n *NopMetrics) RecordRecalcResult(_ /* result */ string) {
	// No-op
}

// ObserveRecalcDuration discards the recalculation latency metric.
func (n *NopMetrics) ObserveRecalcDuration(_ /* seconds */ float64) {
	// No-op
}
