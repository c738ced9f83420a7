package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tradedesk/backoffice/internal/cli/tui"
)

var uiLogger = zap.NewNop()

// SetLogger sets the logger used by the terminal UI controllers.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	uiLogger = l
}

var UICmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"console"},
	Short:   "Open the interactive back-office console",
	Long: `Opens the terminal console: a top menu with the dashboard, accounts,
providers, global configurations and copy-trading permissions. Use
--log-file to record controller activity while the console owns the screen.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if apiClient == nil {
			return fmt.Errorf("API client not initialized")
		}
		return tui.Run(cmd.Context(), apiClient, uiLogger)
	},
}
