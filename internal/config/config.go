// Package config loads player configuration from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/fwojciec/fable"
)

// Environments.
const (
	Development = "development"
	Production  = "production"
)

// Config holds settings read from FABLE_* environment variables.
type Config struct {
	Environment string     `env:"FABLE_ENV" envDefault:"production"`
	LogLevel    slog.Level `env:"FABLE_LOG_LEVEL" envDefault:"info"`
	// LogFile overrides the default log location. The terminal belongs to
	// the player, so logs never go to stdout.
	LogFile string `env:"FABLE_LOG_FILE"`
	// Speed overrides the fade speed multiplier. Zero means the
	// environment default.
	Speed int64  `env:"FABLE_FADE_SPEED"`
	Watch bool   `env:"FABLE_WATCH"`
	Theme string `env:"FABLE_THEME" envDefault:"auto"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.Environment {
	case Development, Production:
	default:
		return nil, fmt.Errorf("parse env: FABLE_ENV must be %q or %q, got %q", Development, Production, cfg.Environment)
	}
	if cfg.Speed < 0 {
		return nil, fmt.Errorf("parse env: FABLE_FADE_SPEED must not be negative, got %d", cfg.Speed)
	}
	return &cfg, nil
}

// FadeSpeed returns the clock multiplier applied to fades. Fades run in
// real time unless the development environment is selected, where they run
// fast so stories can be stepped through quickly.
func (c *Config) FadeSpeed() int64 {
	if c.Speed > 0 {
		return c.Speed
	}
	if c.Environment == Production {
		return 1
	}
	return fable.DefaultFadeSpeed
}
