package cli

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradedesk/backoffice/internal/client"
	"github.com/tradedesk/backoffice/internal/server"
	"github.com/tradedesk/backoffice/internal/server/config"
	"github.com/tradedesk/backoffice/internal/server/logging"
	"github.com/tradedesk/backoffice/internal/server/seed"
)

func TestExportCmd_WritesEveryCollection(t *testing.T) {
	srv, err := server.New(context.Background(), server.Options{Config: &config.Config{
		ListenAddr:   "127.0.0.1:0",
		CORSOrigins:  "*",
		LogLevel:     "info",
		Seed:         true,
		EventLogging: *logging.DefaultEventLoggingConfig(),
	}})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Close()
	})

	SetAPIClient(client.NewClient(ts.URL))
	t.Cleanup(func() { SetAPIClient(nil) })

	path := filepath.Join(t.TempDir(), "backup.json")
	ExportCmd.SetContext(context.Background())
	require.NoError(t, ExportCmd.RunE(ExportCmd, []string{path}))

	builtin, err := seed.Builtin()
	require.NoError(t, err)

	n, err := seed.ImportFile(context.Background(), srv.Service(), path, nil)
	require.NoError(t, err)
	// Configuration keys already exist, so only the other collections are imported again.
	assert.Equal(t, builtin.Count()-len(builtin.Configuraciones), n)
}
