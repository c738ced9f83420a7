package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tradedesk/backoffice/internal/client"
	"github.com/tradedesk/backoffice/internal/version"
)

var statusOutputFormat string

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of the back-office API",
	Long:  `Displays whether the back-office API is reachable, the server version, and record counts.`,
	RunE:  runStatus,
}

func init() {
	StatusCmd.Flags().StringVarP(&statusOutputFormat, "output", "o", "table", "Output format (table, json)")
}

type statusInfo struct {
	API            string `json:"api"`
	URL            string `json:"url"`
	Version        string `json:"version,omitempty"`
	GitCommit      string `json:"git_commit,omitempty"`
	BuildTime      string `json:"build_time,omitempty"`
	Accounts       int    `json:"accounts"`
	Providers      int    `json:"providers"`
	Configurations int    `json:"configurations"`
	Permissions    int    `json:"permissions"`
}

func count[R any](ctx context.Context, list func(context.Context) ([]R, error)) int {
	items, err := list(ctx)
	if err != nil {
		return -1
	}
	return len(items)
}

func runStatus(cmd *cobra.Command, args []string) error {
	c := apiClient
	if c == nil {
		c = client.NewClientFromEnv()
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	info := statusInfo{
		API:            "unreachable",
		URL:            c.BaseURL,
		Accounts:       -1,
		Providers:      -1,
		Configurations: -1,
		Permissions:    -1,
	}

	if err := c.Ping(ctx); err == nil {
		info.API = "ok"

		if ver, err := c.GetVersion(ctx); err == nil {
			info.Version = ver.Version
			info.GitCommit = ver.GitCommit
			info.BuildTime = ver.BuildTime
		}

		info.Accounts = count(ctx, client.Accounts(c).List)
		info.Providers = count(ctx, client.Providers(c).List)
		info.Configurations = count(ctx, client.Configurations(c).List)
		info.Permissions = count(ctx, client.Permissions(c).List)
	}

	out := cmd.OutOrStdout()
	if statusOutputFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintf(out, "boctl version:   %s\n", version.Version)
	fmt.Fprintf(out, "API:             %s (%s)\n", info.API, info.URL)
	if info.Version != "" {
		fmt.Fprintf(out, "Server version:  %s\n", info.Version)
		fmt.Fprintf(out, "Git commit:      %s\n", info.GitCommit)
		fmt.Fprintf(out, "Build time:      %s\n", info.BuildTime)
	}
	if info.Accounts >= 0 {
		fmt.Fprintf(out, "Cuentas:         %d\n", info.Accounts)
	}
	if info.Providers >= 0 {
		fmt.Fprintf(out, "Proveedores:     %d\n", info.Providers)
	}
	if info.Configurations >= 0 {
		fmt.Fprintf(out, "Configuraciones: %d\n", info.Configurations)
	}
	if info.Permissions >= 0 {
		fmt.Fprintf(out, "Permisos:        %d\n", info.Permissions)
	}

	return nil
}
