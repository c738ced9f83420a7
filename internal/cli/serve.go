package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/tradedesk/backoffice/internal/server"
	v0 "github.com/tradedesk/backoffice/internal/server/api/handlers/v0"
	"github.com/tradedesk/backoffice/internal/server/config"
	"github.com/tradedesk/backoffice/internal/server/logging"
	"github.com/tradedesk/backoffice/internal/version"
)

var (
	serveListenAddr string
	serveSeed       bool
	serveSeedFile   string
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the back-office REST API",
	Long: `Runs the back-office REST API. Records are stored in PostgreSQL when
DATABASE_URL is set and in memory otherwise.`,
	Example: `boctl serve
boctl serve --listen :9000 --seed
DATABASE_URL=postgres://backoffice@localhost/backoffice boctl serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	ServeCmd.Flags().StringVar(&serveListenAddr, "listen", "", "Listen address (overrides BOCTL_LISTEN_ADDR)")
	ServeCmd.Flags().BoolVar(&serveSeed, "seed", false, "Load the built-in sample records into an empty store")
	ServeCmd.Flags().StringVar(&serveSeedFile, "seed-file", "", "Import records from a file written by 'boctl export'")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	if serveListenAddr != "" {
		cfg.ListenAddr = serveListenAddr
	}
	if serveSeed {
		cfg.Seed = true
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid server configuration: %w", err)
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.NewLogger("backoffice", level)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, server.Options{
		Config: cfg,
		Logger: logger,
		Version: v0.VersionBody{
			Version:   version.Version,
			GitCommit: version.GitCommit,
			BuildTime: version.BuildDate,
		},
		SeedFile: serveSeedFile,
	})
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return srv.Start(ctx)
}
