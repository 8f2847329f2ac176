package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// DevJWTSecret is the documented insecure fallback used when JWT_SECRET
// is unset. Fine for local development, never for anything reachable
// from the internet; main logs a warning when running on it.
const DevJWTSecret = "applytrack-dev-secret-do-not-deploy"

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret string `env:"JWT_SECRET" validate:"omitempty,min=16"`

	// Empty RedisURL keeps rate limiting on the in-process store.
	RedisURL        string `env:"REDIS_URL"`
	AuthRateLimit   int    `env:"AUTH_RATE_LIMIT" envDefault:"10" validate:"min=1,max=1000"`
	AuthRateWindowS int    `env:"AUTH_RATE_WINDOW_SEC" envDefault:"60" validate:"min=1,max=3600"`

	ReminderAfterDays int `env:"REMINDER_AFTER_DAYS" envDefault:"14" validate:"min=1,max=90"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`

	// Resume document storage. Empty bucket keeps uploads in memory.
	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION" envDefault:"auto"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY_ID"     validate:"required_with=S3Bucket"`
	S3SecretKey string `env:"S3_SECRET_ACCESS_KEY" validate:"required_with=S3Bucket"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = DevJWTSecret
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// UsingDevSecret reports whether the server runs on the insecure
// fallback signing secret.
func (c *Config) UsingDevSecret() bool {
	return c.JWTSecret == DevJWTSecret
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
