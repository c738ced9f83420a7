// Package exporter writes the back-office collections to a seed file.
package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tradedesk/backoffice/internal/server/seed"
	"github.com/tradedesk/backoffice/pkg/models"
)

// Source lists the collections to export. service.BackofficeService
// satisfies it, and so does an adapter over the HTTP client.
type Source interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	ListProviders(ctx context.Context) ([]models.Provider, error)
	ListConfigurations(ctx context.Context) ([]models.Configuration, error)
	ListPermissions(ctx context.Context) ([]models.Permission, error)
}

// Service handles exporting back-office data into seed files.
type Service struct {
	source Source
}

// NewService creates a new exporter service.
func NewService(source Source) *Service {
	return &Service{source: source}
}

// ExportToPath collects every record and writes them to outputPath in the
// format read by the seed loader. Record ids are not exported.
func (s *Service) ExportToPath(ctx context.Context, outputPath string) (int, error) {
	if s.source == nil {
		return 0, fmt.Errorf("export source is not initialized")
	}

	data, err := s.Collect(ctx)
	if err != nil {
		return 0, err
	}

	if err := ensureDir(outputPath); err != nil {
		return 0, err
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal export data: %w", err)
	}

	if err := os.WriteFile(outputPath, raw, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write export file %s: %w", outputPath, err)
	}

	return data.Count(), nil
}

// Collect fetches all four collections.
func (s *Service) Collect(ctx context.Context) (*seed.Data, error) {
	accounts, err := s.source.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	providers, err := s.source.ListProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	configs, err := s.source.ListConfigurations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list configurations: %w", err)
	}
	permissions, err := s.source.ListPermissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	return &seed.Data{
		Cuentas:         drafts(accounts, models.Account.Draft),
		Proveedores:     drafts(providers, models.Provider.Draft),
		Configuraciones: drafts(configs, models.Configuration.Draft),
		Permisos:        drafts(permissions, models.Permission.Draft),
	}, nil
}

func drafts[R any, D any](records []R, draft func(R) D) []D {
	out := make([]D, 0, len(records))
	for _, r := range records {
		out = append(out, draft(r))
	}
	return out
}

func ensureDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "" || dir == "." {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}

	return nil
}
