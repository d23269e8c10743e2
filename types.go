package oasis

import "github.com/Egglessbonek/project-oasis/types"

// Type aliases re-exported from the types package so most callers only
// need to import the root package.
type (
	// Request describes one service-area computation.
	Request = types.Request

	// Result holds the computed service areas and solver diagnostics.
	Result = types.Result

	// Logger is the structured logging interface accepted by WithLogger.
	Logger = types.Logger

	// MetricsCollector receives engine metrics, accepted by WithMetrics.
	MetricsCollector = types.MetricsCollector
)
