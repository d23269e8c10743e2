package oasis

import "fmt"

// Config controls the resolution and convergence behavior of the engine.
type Config struct {
	// Resolution is the number of grid samples per axis. The raster stage
	// evaluates Resolution^2 lattice points over the padded bounding box,
	// so doubling it quadruples the work. Recommended: 150-300.
	Resolution int `yaml:"resolution"`

	// MaxIterations bounds the number of solver rounds before the last
	// assignment is returned as a best effort. Recommended: 50-200.
	MaxIterations int `yaml:"maxIterations"`

	// Tolerance is the convergence threshold on the largest per-site
	// proportional area error. 0.005 means every site's share is within
	// half a percentage point of its target. Recommended: 0.002-0.01.
	Tolerance float64 `yaml:"tolerance"`

	// DampingFactor (0, 1] scales the solver's multiplicative corrections.
	// Lower values converge more slowly but resist oscillation when sites
	// are close together. Recommended: 0.1-0.3.
	DampingFactor float64 `yaml:"dampingFactor"`

	// SimplificationTolerance is the Douglas-Peucker threshold applied to
	// extracted region rings, in grid cell units. Zero disables
	// simplification and returns the raw marching-squares outlines.
	SimplificationTolerance float64 `yaml:"simplificationTolerance"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		Resolution:              200,
		MaxIterations:           100,
		Tolerance:               0.005,
		DampingFactor:           0.2,
		SimplificationTolerance: 1.5,
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Resolution == 0 {
		cfg.Resolution = defaults.Resolution
	}
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = defaults.MaxIterations
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = defaults.Tolerance
	}
	if cfg.DampingFactor == 0 {
		cfg.DampingFactor = defaults.DampingFactor
	}
	if cfg.SimplificationTolerance == 0 {
		cfg.SimplificationTolerance = defaults.SimplificationTolerance
	}
	// Note: SimplificationTolerance of 0 cannot be distinguished from unset
	// here; pass a negative value to request no simplification explicitly.
	if cfg.SimplificationTolerance < 0 {
		cfg.SimplificationTolerance = 0
	}
}

// Validate checks configuration constraints and returns error for invalid values.
//
// Hard Validation Rules:
//   - Resolution >= 2 (at least one grid cell per axis)
//   - MaxIterations >= 1
//   - Tolerance > 0
//   - DampingFactor in (0, 1]
//   - SimplificationTolerance >= 0
//
// Returns:
//   - error: Validation error wrapping ErrInvalidConfig, nil if valid
func (cfg *Config) Validate() error {
	if cfg.Resolution < 2 {
		return fmt.Errorf("%w: Resolution must be >= 2, got %d", ErrInvalidConfig, cfg.Resolution)
	}
	if cfg.MaxIterations < 1 {
		return fmt.Errorf("%w: MaxIterations must be >= 1, got %d", ErrInvalidConfig, cfg.MaxIterations)
	}
	if cfg.Tolerance <= 0 {
		return fmt.Errorf("%w: Tolerance must be > 0, got %v", ErrInvalidConfig, cfg.Tolerance)
	}
	if cfg.DampingFactor <= 0 || cfg.DampingFactor > 1 {
		return fmt.Errorf("%w: DampingFactor must be in (0, 1], got %v", ErrInvalidConfig, cfg.DampingFactor)
	}
	if cfg.SimplificationTolerance < 0 {
		return fmt.Errorf("%w: SimplificationTolerance must be >= 0, got %v", ErrInvalidConfig, cfg.SimplificationTolerance)
	}

	return nil
}

// TestConfig returns a configuration optimized for fast test execution.
//
// The coarse grid and looser tolerance make a computation roughly 10x
// faster than with DefaultConfig() while keeping the same code paths.
// Use DefaultConfig() for production deployments.
//
// Returns:
//   - Config: Configuration with fast settings for tests
//
// Example:
//
//	cfg := oasis.TestConfig()
//	engine, err := oasis.NewEngine(&cfg)
func TestConfig() Config {
	return Config{
		Resolution:              60,
		MaxIterations:           60,
		Tolerance:               0.02,
		DampingFactor:           0.3,
		SimplificationTolerance: 1.0,
	}
}
