package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/iho/bankstatement/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	HTTPTrustProxy      bool          `env:"HTTP_TRUST_PROXY"      envDefault:"false"`

	// Rate limiting of deposits and withdrawals (0 disables)
	RateLimit     float64       `env:"RATE_LIMIT"      envDefault:"0"`
	RateBurst     int           `env:"RATE_BURST"      envDefault:"10"`
	RateLimitIdle time.Duration `env:"RATE_LIMIT_IDLE" envDefault:"3m"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Clock
	ClockTimezone  string `env:"CLOCK_TIMEZONE"   envDefault:"UTC"`
	ClockFixedDate string `env:"CLOCK_FIXED_DATE" envDefault:""`

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	if _, _, err := cfg.FixedDate(); err != nil {
		return nil, err
	}
	if cfg.RateLimit > 0 && cfg.RateLimitIdle <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_IDLE must be positive, got %s", cfg.RateLimitIdle)
	}

	return cfg, nil
}

// Location resolves ClockTimezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.ClockTimezone)
	if err != nil {
		return nil, fmt.Errorf("CLOCK_TIMEZONE: %w", err)
	}
	return loc, nil
}

// FixedDate parses ClockFixedDate. ok is false when no date is pinned.
func (c *Config) FixedDate() (date time.Time, ok bool, err error) {
	if c.ClockFixedDate == "" {
		return time.Time{}, false, nil
	}
	date, err = domain.ParseDate(c.ClockFixedDate)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("CLOCK_FIXED_DATE: %w", err)
	}
	return date, true, nil
}
