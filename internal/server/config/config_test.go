package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	for _, k := range []string{"BOCTL_LISTEN_ADDR", "DATABASE_URL", "BOCTL_CORS_ORIGINS", "BOCTL_SEED", "LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.False(t, cfg.UsesPostgres())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
	assert.False(t, cfg.Seed)
	assert.Equal(t, 1.0, cfg.EventLogging.SuccessSampleRate)
	require.NoError(t, Validate(cfg))
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("BOCTL_LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("DATABASE_URL", "postgres://bo:bo@localhost:5432/bo")
	t.Setenv("BOCTL_CORS_ORIGINS", "http://localhost:3000, http://admin.local")
	t.Setenv("BOCTL_SEED", "true")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.True(t, cfg.UsesPostgres())
	assert.Equal(t, []string{"http://localhost:3000", "http://admin.local"}, cfg.AllowedOrigins())
	assert.True(t, cfg.Seed)
}

func TestNewConfig_EnvFile(t *testing.T) {
	// godotenv never overrides variables that are already set.
	t.Setenv("BOCTL_LISTEN_ADDR", "")
	os.Unsetenv("BOCTL_LISTEN_ADDR")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("BOCTL_LISTEN_ADDR=:8123\n"), 0o600))

	cfg, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":8123", cfg.ListenAddr)
}

func TestNewConfig_MissingEnvFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{ListenAddr: ":8000", CORSOrigins: "*", LogLevel: "info"}
	}

	assert.Error(t, Validate(nil))
	require.NoError(t, Validate(valid()))

	cfg := valid()
	cfg.ListenAddr = "8000"
	assert.Error(t, Validate(cfg))

	cfg = valid()
	cfg.DatabaseURL = "mysql://x"
	assert.Error(t, Validate(cfg))

	cfg = valid()
	cfg.LogLevel = "loud"
	assert.Error(t, Validate(cfg))

	cfg = valid()
	cfg.EventLogging.SuccessSampleRate = 2
	assert.Error(t, Validate(cfg))
}
