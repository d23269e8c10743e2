package types

import "errors"

// Sentinel errors for the Oasis engine.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap external errors with context using fmt.Errorf("%s: %w", msg, err).

// Validation errors - returned before any projection or raster work is performed.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMismatchedInputs is returned when the site ID, location, and weight
	// slices do not all have the same length.
	ErrMismatchedInputs = errors.New("site ids, locations, and weights must have the same length")

	// ErrInvalidBoundary is returned when the boundary ring has fewer than
	// three distinct vertices.
	ErrInvalidBoundary = errors.New("boundary must be a ring with at least three vertices")

	// ErrInvalidCoordinate is returned when a site or boundary coordinate is
	// NaN or infinite.
	ErrInvalidCoordinate = errors.New("coordinate must be a finite number")

	// ErrInvalidWeight is returned when a site weight is NaN, infinite, or
	// negative.
	ErrInvalidWeight = errors.New("site weight must be a finite, nonnegative number")
)

// Computation errors - returned by the projection and raster stages.
var (
	// ErrProjection is returned when a coordinate cannot be transformed
	// between the geographic and planar reference systems.
	ErrProjection = errors.New("coordinate projection failed")

	// ErrEmptyRegion is returned when the boundary encloses zero raster
	// samples, either because the geometry is degenerate or because the
	// resolution is too coarse. Retrying with a higher resolution may help;
	// retrying with the same inputs will not.
	ErrEmptyRegion = errors.New("boundary encloses no grid samples")
)

// Worker errors - returned by the background recalculation worker.
var (
	// ErrNATSConnectionRequired is returned when the NATS connection is nil.
	ErrNATSConnectionRequired = errors.New("NATS connection is required")

	// ErrStoreRequired is returned when the persistence store is nil.
	ErrStoreRequired = errors.New("store is required")

	// ErrEngineRequired is returned when the computation engine is nil.
	ErrEngineRequired = errors.New("engine is required")

	// ErrAlreadyStarted is returned when Start is called on a running worker.
	ErrAlreadyStarted = errors.New("worker already started")

	// ErrNotStarted is returned when Stop is called on a worker that has not
	// been started.
	ErrNotStarted = errors.New("worker not started")
)

// Store errors - returned by the persistence adapter.
var (
	// ErrAreaNotFound is returned when the requested area does not exist.
	ErrAreaNotFound = errors.New("area not found")
)
