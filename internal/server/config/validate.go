package config

import (
	"fmt"
	"net"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Validate performs runtime validations on the loaded configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if _, _, err := net.SplitHostPort(cfg.ListenAddr); err != nil {
		return fmt.Errorf("invalid listen address %q: %w", cfg.ListenAddr, err)
	}
	if cfg.UsesPostgres() && !strings.HasPrefix(cfg.DatabaseURL, "postgres://") && !strings.HasPrefix(cfg.DatabaseURL, "postgresql://") {
		return fmt.Errorf("database URL must use the postgres:// scheme")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if rate := cfg.EventLogging.SuccessSampleRate; rate < 0 || rate > 1 {
		return fmt.Errorf("log success sample rate must be between 0 and 1 (got %v)", rate)
	}
	return nil
}
