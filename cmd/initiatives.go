package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/opsvik/jiratool/internal/initiative"
	"github.com/opsvik/jiratool/internal/jira"
	"github.com/opsvik/jiratool/internal/logging"
)

var initiativesCmd = &cobra.Command{
	Use:   "initiatives PROJECT",
	Short: "Export open Initiative issues to JSON",
	Long: `Export a project's Initiative issues that are not Done or Canceled to a
timestamped JSON file in the working directory. Each record carries the issue
key, the description flattened to plain text, the reporter's display name and
the number of linked issues.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newJiraClient()
		if err != nil {
			return err
		}
		return runInitiativeExporter(client, args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initiativesCmd)
}

// runInitiativeExporter exports a project's open Initiatives and reports the
// resulting file.
func runInitiativeExporter(client *jira.Client, projectKey string, out io.Writer) error {
	logging.Info("exporting initiatives", "project", projectKey)
	fmt.Fprintf(out, "\nFetching Initiatives from project %s...\n", projectKey)

	path, count, err := initiative.Export(client, projectKey, ".")
	if err != nil {
		return err
	}

	if count == 0 {
		fmt.Fprintln(out, "No Initiatives found to export.")
		return nil
	}

	fmt.Fprintf(out, "Exported %d Initiative(s) to %s\n", count, path)
	fmt.Fprintln(out, "\nEach record contains:")
	fmt.Fprintln(out, "  - issueKey: the Jira issue key")
	fmt.Fprintln(out, "  - description: the issue description as plain text")
	fmt.Fprintln(out, "  - requester: the issue reporter")
	fmt.Fprintln(out, "  - linkedIssuesCount: number of linked issues")
	return nil
}
