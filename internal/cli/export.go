package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tradedesk/backoffice/internal/client"
	"github.com/tradedesk/backoffice/internal/server/exporter"
	"github.com/tradedesk/backoffice/pkg/models"
	"github.com/tradedesk/backoffice/pkg/printer"
)

var ExportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export every collection to a seed file",
	Long: `Fetches accounts, providers, configurations and permissions from the API
and writes them to a JSON file that 'boctl serve --seed-file' can import.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

// clientSource lists collections through the REST API.
type clientSource struct {
	c *client.Client
}

func (s clientSource) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return client.Accounts(s.c).List(ctx)
}

func (s clientSource) ListProviders(ctx context.Context) ([]models.Provider, error) {
	return client.Providers(s.c).List(ctx)
}

func (s clientSource) ListConfigurations(ctx context.Context) ([]models.Configuration, error) {
	return client.Configurations(s.c).List(ctx)
}

func (s clientSource) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	return client.Permissions(s.c).List(ctx)
}

func runExport(cmd *cobra.Command, args []string) error {
	if apiClient == nil {
		return fmt.Errorf("API client not initialized")
	}

	count, err := exporter.NewService(clientSource{c: apiClient}).ExportToPath(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	printer.PrintSuccess(fmt.Sprintf("Exported %d records to %s", count, args[0]))
	return nil
}
