// Package config loads the back-office API server configuration from the
// environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/tradedesk/backoffice/internal/server/logging"
)

// Config is the server configuration.
type Config struct {
	ListenAddr  string `env:"BOCTL_LISTEN_ADDR" envDefault:":8000"`
	DatabaseURL string `env:"DATABASE_URL"`
	// CORSOrigins is a comma-separated list; "*" allows every origin.
	CORSOrigins string `env:"BOCTL_CORS_ORIGINS" envDefault:"*"`
	// Seed loads the built-in sample records into an empty store on start.
	Seed     bool   `env:"BOCTL_SEED" envDefault:"false"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	EventLogging logging.EventLoggingConfig
}

// NewConfig loads .env files when present and parses the environment.
func NewConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// AllowedOrigins splits CORSOrigins.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// UsesPostgres reports whether a database URL was configured.
func (c *Config) UsesPostgres() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}
