package worker

import (
	"fmt"
	"time"

	"github.com/Egglessbonek/project-oasis/types"
)

// Config controls the worker's NATS wiring and per-area time budget.
type Config struct {
	// Subject is the NATS subject recalculation requests arrive on.
	Subject string `yaml:"subject"`

	// QueueGroup is the NATS queue group name. Workers in the same group
	// share the subject; each message is delivered to exactly one of them.
	QueueGroup string `yaml:"queueGroup"`

	// ComputeTimeout bounds one recalculation end to end: loading the
	// area, solving, and persisting the result.
	ComputeTimeout time.Duration `yaml:"computeTimeout"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		Subject:        "oasis.recalc",
		QueueGroup:     "oasis-workers",
		ComputeTimeout: 60 * time.Second,
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Subject == "" {
		cfg.Subject = defaults.Subject
	}
	if cfg.QueueGroup == "" {
		cfg.QueueGroup = defaults.QueueGroup
	}
	if cfg.ComputeTimeout == 0 {
		cfg.ComputeTimeout = defaults.ComputeTimeout
	}
}

// Validate checks configuration constraints and returns error for invalid values.
//
// Returns:
//   - error: Validation error wrapping types.ErrInvalidConfig, nil if valid
func (cfg *Config) Validate() error {
	if cfg.Subject == "" {
		return fmt.Errorf("%w: Subject must not be empty", types.ErrInvalidConfig)
	}
	if cfg.QueueGroup == "" {
		return fmt.Errorf("%w: QueueGroup must not be empty", types.ErrInvalidConfig)
	}
	if cfg.ComputeTimeout <= 0 {
		return fmt.Errorf("%w: ComputeTimeout must be > 0, got %v", types.ErrInvalidConfig, cfg.ComputeTimeout)
	}

	return nil
}
