// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

const (
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	Port         string `env:"PORT" default:"8080"`
	StoreBackend string `env:"STORE_BACKEND" default:"mongo"`
	MongoURL     string `env:"MONGO_URL"`
	DBName       string `env:"DB_NAME" default:"feedback_portal"`
	SQLitePath   string `env:"SQLITE_PATH" default:"data/feedback.db"`

	QueryLimit int           `env:"QUERY_LIMIT" default:"1000"`
	DBTimeout  time.Duration `env:"DB_TIMEOUT" default:"10s"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	CORSOrigins []string `env:"CORS_ORIGINS" default:"*"`

	// E-mail notifications are enabled when both are set.
	ResendAPIKey string `env:"RESEND_API_KEY"`
	FromEmail    string `env:"FROM_EMAIL" default:"feedback@example.com"`
	NotifyEmail  string `env:"NOTIFY_EMAIL"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, &env.Options{SliceSep: ","}); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.StoreBackend {
	case BackendMongo:
		if cfg.MongoURL == "" {
			return fmt.Errorf("MONGO_URL is required when STORE_BACKEND=%s", BackendMongo)
		}
	case BackendSQLite:
		if cfg.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORE_BACKEND=%s", BackendSQLite)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be one of %s, %s, %s, got %q",
			BackendMongo, BackendSQLite, BackendMemory, cfg.StoreBackend)
	}

	if cfg.QueryLimit <= 0 {
		return fmt.Errorf("QUERY_LIMIT must be positive, got %d", cfg.QueryLimit)
	}
	if cfg.DBTimeout <= 0 {
		return fmt.Errorf("DB_TIMEOUT must be positive, got %s", cfg.DBTimeout)
	}
	return nil
}

// EmailNotificationsEnabled reports whether new feedback should be mailed out.
func (c *Config) EmailNotificationsEnabled() bool {
	return c.ResendAPIKey != "" && c.NotifyEmail != ""
}
