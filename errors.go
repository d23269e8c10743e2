package oasis

import "github.com/Egglessbonek/project-oasis/types"

// Sentinel errors re-exported from the types package so callers can match
// engine failures without importing types directly.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrMismatchedInputs is returned when the request's parallel slices
	// differ in length.
	ErrMismatchedInputs = types.ErrMismatchedInputs

	// ErrInvalidBoundary is returned when the boundary ring is degenerate.
	ErrInvalidBoundary = types.ErrInvalidBoundary

	// ErrInvalidCoordinate is returned when a coordinate is NaN or infinite.
	ErrInvalidCoordinate = types.ErrInvalidCoordinate

	// ErrInvalidWeight is returned when a weight is NaN, infinite, or negative.
	ErrInvalidWeight = types.ErrInvalidWeight

	// ErrProjection is returned when a coordinate transform fails.
	ErrProjection = types.ErrProjection

	// ErrEmptyRegion is returned when the boundary encloses no grid samples.
	ErrEmptyRegion = types.ErrEmptyRegion
)
