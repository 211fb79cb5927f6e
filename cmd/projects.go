package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects visible to the configured account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newJiraClient()
		if err != nil {
			return err
		}

		projects, err := client.Projects(nil)
		if err != nil {
			return fmt.Errorf("fetching projects: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Found %d project(s):\n", len(projects))
		for _, p := range projects {
			fmt.Fprintf(out, "  %s: %s\n", p.Key, p.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}
