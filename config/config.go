package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// devJWTSecret is only ever substituted when ENV=local and JWT_SECRET is
// unset. Anywhere else a missing secret is a startup failure.
const devJWTSecret = "local-dev-only-secret-do-not-deploy!!"

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set outside ENV=local")

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DatabaseURL    string `env:"DATABASE_URL,required" validate:"required"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" envDefault:"true"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret       string `env:"JWT_SECRET" validate:"omitempty,min=32"`
	TokenTTLMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"60" validate:"min=1,max=1440"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.JWTSecret == "" {
		if cfg.Env != "local" {
			return nil, ErrMissingJWTSecret
		}
		cfg.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

// UsesDevSecret reports whether the local fallback signing secret is in
// effect, so main can warn about it.
func (c *Config) UsesDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
