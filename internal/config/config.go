// Package config holds runtime configuration shared by the teller CLI and
// the ledgerd reference server.
package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from environment variables.
type Config struct {
	// Client side
	LedgerURL     string        `envconfig:"LEDGER_URL" default:"http://localhost:8080"`
	LedgerTimeout time.Duration `envconfig:"LEDGER_TIMEOUT" default:"10s"`

	// Server side
	Addr        string `envconfig:"ADDR" default:":8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`

	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewLogger returns a configured slog.Logger based on configuration.
func NewLogger(cfg *Config) *slog.Logger {
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
