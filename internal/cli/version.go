package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tradedesk/backoffice/internal/client"
	"github.com/tradedesk/backoffice/internal/version"
)

var apiClient *client.Client

func SetAPIClient(client *client.Client) {
	apiClient = client
}

type VersionOutput struct {
	BoctlVersion         string `json:"boctl_version"`
	GitCommit            string `json:"git_commit"`
	BuildDate            string `json:"build_date"`
	ServerVersion        string `json:"server_version,omitempty"`
	ServerGitCommit      string `json:"server_git_commit,omitempty"`
	ServerBuildDate      string `json:"server_build_date,omitempty"`
	UpdateRecommendation string `json:"update_recommendation,omitempty"`
}

var jsonOutput bool

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Displays the version of boctl and of the back-office API it talks to.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		output := VersionOutput{
			BoctlVersion: version.Version,
			GitCommit:    version.GitCommit,
			BuildDate:    version.BuildDate,
		}

		c := apiClient
		if c == nil {
			c = client.NewClientFromEnv()
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		serverVersion, err := c.GetVersion(ctx)
		if err == nil {
			output.ServerVersion = serverVersion.Version
			output.ServerGitCommit = serverVersion.GitCommit
			output.ServerBuildDate = serverVersion.BuildTime

			if compare, ok := version.Compare(version.Version, serverVersion.Version); ok {
				switch compare {
				case 1:
					output.UpdateRecommendation = "CLI version is newer than server version. Consider updating the server."
				case -1:
					output.UpdateRecommendation = "Server version is newer than CLI version. Consider updating the CLI."
				}
			}
		}

		if jsonOutput {
			jsonBytes, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				fmt.Fprintf(out, "Error marshaling JSON: %v\n", err)
				return
			}
			fmt.Fprintln(out, string(jsonBytes))
			return
		}

		fmt.Fprintf(out, "boctl version %s\n", output.BoctlVersion)
		fmt.Fprintf(out, "Git commit: %s\n", output.GitCommit)
		fmt.Fprintf(out, "Build date: %s\n", output.BuildDate)

		if serverVersion != nil {
			fmt.Fprintf(out, "Server version: %s\n", output.ServerVersion)
			fmt.Fprintf(out, "Server git commit: %s\n", output.ServerGitCommit)
			fmt.Fprintf(out, "Server build date: %s\n", output.ServerBuildDate)

			if output.UpdateRecommendation != "" {
				fmt.Fprintln(out, "\n-------------------------------")
				fmt.Fprintln(out, output.UpdateRecommendation)
			}
		} else if err != nil {
			fmt.Fprintf(out, "Error getting server version: %v\n", err)
		}
	},
}

func init() {
	VersionCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version information in JSON format")
}
