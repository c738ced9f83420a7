// Package cli assembles the boctl command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cliinternal "github.com/tradedesk/backoffice/internal/cli"
	"github.com/tradedesk/backoffice/internal/cli/resource"
	"github.com/tradedesk/backoffice/internal/client"
	"github.com/tradedesk/backoffice/pkg/cli/config"
)

// Root returns a fresh boctl command tree.
func Root() *cobra.Command {
	var (
		apiURL  string
		logFile string
	)

	rootCmd := &cobra.Command{
		Use:   "boctl",
		Short: "Trading back-office console",
		Long: `boctl manages the trading back office: accounts, providers, global
configurations and copy-trading permissions. It can open an interactive
console, run scripted CRUD commands, or serve the REST API itself.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("api-url") {
				apiURL = settings.APIURL
			}
			if logFile == "" {
				logFile = settings.LogFile
			}

			logger, err := newLogger(logFile)
			if err != nil {
				return err
			}

			c := client.NewClient(apiURL)
			cliinternal.SetAPIClient(c)
			cliinternal.SetLogger(logger)
			resource.SetAPIClient(c)
			resource.SetLogger(logger)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", client.DefaultBaseURL, "Back-office API base URL (env BOCTL_API_URL)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write debug logs to this file (env BOCTL_LOG_FILE)")

	rootCmd.AddCommand(cliinternal.AccountCmd())
	rootCmd.AddCommand(cliinternal.ProviderCmd())
	rootCmd.AddCommand(cliinternal.ConfigCmd())
	rootCmd.AddCommand(cliinternal.PermissionCmd())
	rootCmd.AddCommand(cliinternal.UICmd)
	rootCmd.AddCommand(cliinternal.ServeCmd)
	rootCmd.AddCommand(cliinternal.StatusCmd)
	rootCmd.AddCommand(cliinternal.VersionCmd)
	rootCmd.AddCommand(cliinternal.ExportCmd)

	return rootCmd
}

// newLogger returns a no-op logger unless a log file is configured; the
// console owns the terminal, so logs never go to stderr.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Named("boctl"), nil
}
