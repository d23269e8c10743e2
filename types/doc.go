// Package types provides core type definitions and interfaces for the Oasis engine.
//
// This package contains shared types that are used across multiple packages in the
// engine. By keeping these types in a separate package, we avoid import cycles
// between the main oasis package and its internal implementations.
//
// Key types:
//   - Request: Inputs for one service-area computation
//   - Result: Regions and solver diagnostics for one computation
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
