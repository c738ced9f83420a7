// Package server assembles the back-office REST API: storage, service,
// huma routes and the HTTP middleware chain.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/rs/cors"
	"go.uber.org/zap"

	v0 "github.com/tradedesk/backoffice/internal/server/api/handlers/v0"
	"github.com/tradedesk/backoffice/internal/server/api/router"
	"github.com/tradedesk/backoffice/internal/server/config"
	"github.com/tradedesk/backoffice/internal/server/database"
	"github.com/tradedesk/backoffice/internal/server/logging"
	"github.com/tradedesk/backoffice/internal/server/seed"
	"github.com/tradedesk/backoffice/internal/server/service"
	"github.com/tradedesk/backoffice/internal/server/telemetry"
)

const shutdownTimeout = 10 * time.Second

// Options configures New.
type Options struct {
	Config  *config.Config
	Logger  *zap.Logger
	Version v0.VersionBody
	// SeedFile, when set, is imported after the built-in seed data.
	SeedFile string
}

// Server is a ready to start back-office API.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      database.Database
	svc     service.BackofficeService
	metrics *telemetry.Metrics
	api     huma.API
	handler http.Handler
}

// OpenStore returns the PostgreSQL store when a database URL is configured
// and an in-memory store otherwise.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (database.Database, error) {
	if !cfg.UsesPostgres() {
		logger.Info("using in-memory store")
		return database.NewMemory(), nil
	}
	db, err := database.NewPostgreSQL(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// New opens the store and builds the HTTP handler.
func New(ctx context.Context, opts Options) (*Server, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("server config is required")
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := OpenStore(ctx, cfg, logger.Named("database"))
	if err != nil {
		return nil, err
	}
	svc := service.NewBackofficeService(db, logger)

	if cfg.Seed {
		if _, err := seed.ImportBuiltinSeedData(ctx, svc, logger.Named("seed")); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to import seed data: %w", err)
		}
	}
	if opts.SeedFile != "" {
		if _, err := seed.ImportFile(ctx, svc, opts.SeedFile, logger.Named("seed")); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	metrics, err := telemetry.NewMetrics("backoffice")
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	version := opts.Version
	if version.Version == "" {
		version.Version = "dev"
	}

	mux := http.NewServeMux()
	api := humago.New(mux, router.NewAPIConfig(version.Version))
	router.RegisterRoutes(api, svc, metrics, &version)
	mux.Handle("GET /metrics", metrics.Handler())

	var handler http.Handler = mux
	handler = metrics.Middleware(handler)
	handler = logging.Middleware(logger.Named("http"), logging.ParseEventLoggingConfig(&cfg.EventLogging))(handler)
	handler = cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", logging.RequestIDHeader},
		ExposedHeaders: []string{logging.RequestIDHeader},
	}).Handler(handler)

	return &Server{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		svc:     svc,
		metrics: metrics,
		api:     api,
		handler: handler,
	}, nil
}

// Handler returns the full middleware chain.
func (s *Server) Handler() http.Handler { return s.handler }

// Service returns the service backing the routes.
func (s *Server) Service() service.BackofficeService { return s.svc }

// OpenAPI returns the generated OpenAPI document.
func (s *Server) OpenAPI() *huma.OpenAPI { return s.api.OpenAPI() }

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully and
// releases the store.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()
	s.logger.Info("back-office API listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		_ = s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("graceful shutdown failed", zap.Error(err))
	}
	s.logger.Info("back-office API stopped")
	return s.Close()
}

// Close releases the store and the meter provider.
func (s *Server) Close() error {
	var errs []error
	if err := s.metrics.Shutdown(context.Background()); err != nil {
		errs = append(errs, err)
	}
	if err := s.db.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
