package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

var (
	ErrParsingConfig = errors.New("failed to parse environment variables into config")
	ErrInvalidConfig = errors.New("invalid configuration")
)

type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	Env             string        `env:"ENV" envDefault:"development"`
	LogLevel        slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	RateLimitRPS    float64       `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST" envDefault:"10"`
	MaxAttempts     int           `env:"MAX_ATTEMPTS" envDefault:"1000"`
	MaxCount        int           `env:"MAX_COUNT" envDefault:"100"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.RateLimitRPS <= 0:
		return fmt.Errorf("%w: RATE_LIMIT_RPS must be positive", ErrInvalidConfig)
	case c.RateLimitBurst < 1:
		return fmt.Errorf("%w: RATE_LIMIT_BURST must be at least 1", ErrInvalidConfig)
	case c.MaxAttempts < 1:
		return fmt.Errorf("%w: MAX_ATTEMPTS must be at least 1", ErrInvalidConfig)
	case c.MaxCount < 1:
		return fmt.Errorf("%w: MAX_COUNT must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// IsProduction reports whether ENV is "production".
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// NewLogger builds the process logger: text output in development, JSON
// everywhere else.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.Env == "development" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
