package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Methods may be called from worker goroutines and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	SolverMetrics
	WorkerMetrics
}

// SolverMetrics defines metrics for service-area computations.
type SolverMetrics interface {
	// RecordSolveDuration records the wall-clock time of one computation.
	//
	// Parameters:
	//   - seconds: Time taken in seconds
	RecordSolveDuration(seconds float64)

	// RecordSolveIterations records the number of solver iterations used by
	// one computation.
	RecordSolveIterations(iterations int)

	// RecordSolveOutcome records the outcome of one computation.
	//
	// Parameters:
	//   - outcome: One of "converged", "exhausted", "degenerate", "error"
	RecordSolveOutcome(outcome string)

	// RecordInsideSamples sets the inside-sample count of the most recent
	// computation (gauge metric).
	RecordInsideSamples(count int)
}

// WorkerMetrics defines metrics for the background recalculation worker.
type WorkerMetrics interface {
	// RecordRecalcResult records the outcome of one recalculation request.
	//
	// Parameters:
	//   - result: One of "completed", "skipped", "failed"
	RecordRecalcResult(result string)

	// ObserveRecalcDuration records the end-to-end latency of one
	// recalculation request in seconds, load and persistence included.
	ObserveRecalcDuration(seconds float64)
}
