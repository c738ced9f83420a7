// Package config holds the settings of the boctl command line.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings are read from the environment and from a .env file in the
// working directory. Flags override them.
type Settings struct {
	APIURL  string `env:"BOCTL_API_URL" envDefault:"http://localhost:8000"`
	LogFile string `env:"BOCTL_LOG_FILE"`
}

// Load parses Settings. A missing .env file is not an error.
func Load() (*Settings, error) {
	_ = godotenv.Load()
	s, err := env.ParseAs[Settings]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CLI settings: %w", err)
	}
	return &s, nil
}

// confirmDeletes controls whether delete commands ask before removing a
// record. Embedders running boctl non-interactively can call
// SetConfirmDeletes(false).
var confirmDeletes = true

// SetConfirmDeletes configures whether delete commands prompt for confirmation.
func SetConfirmDeletes(enabled bool) {
	confirmDeletes = enabled
}

// GetConfirmDeletes returns the current confirmation setting.
func GetConfirmDeletes() bool {
	return confirmDeletes
}
