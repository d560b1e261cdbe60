package particles

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

var ErrInvalidConfig = errors.New("invalid simulator config")

// SimulatorConfig controls how batches are stepped. Zero FixedStep means the
// measured frame time is used.
type SimulatorConfig struct {
	Workers   int           `env:"PARTICLES_WORKERS"    envDefault:"4"`
	ChunkSize int           `env:"PARTICLES_CHUNK_SIZE" envDefault:"256"`
	FixedStep time.Duration `env:"PARTICLES_FIXED_STEP" envDefault:"0s"`
	MaxStep   time.Duration `env:"PARTICLES_MAX_STEP"   envDefault:"100ms"`
	Debug     bool          `env:"PARTICLES_DEBUG"`
	LogPrefix string        `env:"PARTICLES_LOG_PREFIX" envDefault:"particles"`
}

func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		Workers:   4,
		ChunkSize: 256,
		MaxStep:   100 * time.Millisecond,
		LogPrefix: "particles",
	}
}

// LoadSimulatorConfig reads PARTICLES_* environment variables on top of the
// defaults.
func LoadSimulatorConfig() (SimulatorConfig, error) {
	var cfg SimulatorConfig
	if err := env.Parse(&cfg); err != nil {
		return SimulatorConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SimulatorConfig{}, err
	}
	return cfg, nil
}

func (c SimulatorConfig) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfig, c.ChunkSize)
	}
	if c.FixedStep < 0 {
		return fmt.Errorf("%w: fixed step must not be negative, got %s", ErrInvalidConfig, c.FixedStep)
	}
	if c.MaxStep < 0 {
		return fmt.Errorf("%w: max step must not be negative, got %s", ErrInvalidConfig, c.MaxStep)
	}
	return nil
}
