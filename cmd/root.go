// Package cmd provides the command-line interface for the jiratool CLI.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opsvik/jiratool/internal/config"
	"github.com/opsvik/jiratool/internal/jira"
)

var rootCmd = &cobra.Command{
	Use:   "jiratool",
	Short: "Jira management utilities for releases and initiatives",
	Long: `jiratool is a small utility for Jira Cloud with two features:

1. Release Manager - finds releases whose issues are all Bug or Customer bug
2. Initiative Exporter - exports open Initiative issues to a JSON file

Run it without arguments for an interactive menu, or use the releases and
initiatives subcommands directly.

Configuration comes from the environment (a .env file in the working
directory is also read):

  JIRA_URL        Jira instance URL (e.g. https://yourcompany.atlassian.net)
  JIRA_EMAIL      Atlassian account email
  JIRA_API_TOKEN  API token for the account`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// newJiraClient loads configuration and opens the authenticated session used
// for the rest of the process lifetime.
func newJiraClient() (*jira.Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return jira.NewClient(cfg)
}
