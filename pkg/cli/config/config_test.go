package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BOCTL_API_URL", "")
	require.NoError(t, os.Unsetenv("BOCTL_API_URL"))
	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", s.APIURL)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("BOCTL_API_URL", "http://backoffice:9000")
	t.Setenv("BOCTL_LOG_FILE", "/tmp/boctl.log")
	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://backoffice:9000", s.APIURL)
	assert.Equal(t, "/tmp/boctl.log", s.LogFile)
}

func TestConfirmDeletes(t *testing.T) {
	t.Cleanup(func() { SetConfirmDeletes(true) })
	assert.True(t, GetConfirmDeletes())
	SetConfirmDeletes(false)
	assert.False(t, GetConfirmDeletes())
}
