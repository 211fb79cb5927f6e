package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/opsvik/jiratool/internal/jira"
	"github.com/opsvik/jiratool/internal/logging"
	"github.com/opsvik/jiratool/internal/release"
)

var releasesCmd = &cobra.Command{
	Use:   "releases PROJECT",
	Short: "Find releases containing only bug issues",
	Long: `Scan every release (fix version) of a project and report the ones whose
issues are all of type Bug or Customer bug. Releases without issues do not
qualify.

The Investment Category custom field is resolved alongside so qualifying
releases can be updated with it; if the field cannot be found the scan still
runs and the output says so.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newJiraClient()
		if err != nil {
			return err
		}
		return runReleaseManager(client, args[0], nil, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(releasesCmd)
}

// runReleaseManager classifies a project's releases and prints the verdicts.
// When run interactively (in != nil) an unresolved Investment Category field
// can be supplied by hand.
func runReleaseManager(client *jira.Client, projectKey string, in *bufio.Reader, out io.Writer) error {
	logging.Info("analyzing releases", "project", projectKey)
	fmt.Fprintf(out, "\nAnalyzing releases in project %s...\n", projectKey)

	result, err := release.Classify(client, projectKey)
	if err != nil {
		return err
	}

	if !result.FieldResolved {
		fmt.Fprintf(out, "\nWarning: could not find the %q custom field by either discovery method.\n", release.InvestmentCategoryField)
		if in != nil {
			manual, err := prompt(in, out, "Enter the field ID (e.g. customfield_10001) or press Enter to skip: ")
			if err == nil && manual != "" {
				result.FieldID = manual
				result.FieldResolved = true
				fmt.Fprintf(out, "Using field ID %s\n", manual)
			}
		}
	}

	var qualifying []release.Report
	for _, report := range result.Releases {
		if report.Qualifies {
			qualifying = append(qualifying, report)
			fmt.Fprintf(out, "  + %s: %d issue(s) - %v\n", report.Name, report.IssueCount, report.IssueTypes)
		} else {
			fmt.Fprintf(out, "  - %s: %s\n", report.Name, report.Reason)
		}
	}

	fmt.Fprintf(out, "\nSummary: %d of %d release(s) contain only Bug/Customer bug issues\n",
		len(qualifying), len(result.Releases))
	for _, report := range qualifying {
		fmt.Fprintf(out, "  * %s (%d issues)\n", report.Name, report.IssueCount)
	}

	if result.FieldResolved && len(qualifying) > 0 {
		fmt.Fprintf(out, "\nNext step: these releases can be updated with %s = %q (field %s)\n",
			release.InvestmentCategoryField, release.SuggestedCategory, result.FieldID)
	}

	return nil
}
