package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/opsvik/jiratool/internal/jira"
	"github.com/opsvik/jiratool/internal/logging"
)

// feature is one entry of the interactive menu. The registry is static and
// built once; handlers receive the shared session plus the interactive
// streams.
type feature struct {
	id          string
	description string
	run         func(client *jira.Client, in *bufio.Reader, out io.Writer) error
}

var features = []feature{
	{
		id:          "1",
		description: "Release Manager - find releases with only bug issues",
		run:         runReleaseFeature,
	},
	{
		id:          "2",
		description: "Initiative Exporter - export initiatives to JSON",
		run:         runInitiativeFeature,
	},
}

// exitID is the menu choice that leaves the loop, one past the last feature.
var exitID = strconv.Itoa(len(features) + 1)

// runMenu drives the interactive loop. A failed workflow run is reported and
// the menu stays usable; the authenticated session is reused throughout.
func runMenu(in io.Reader, out io.Writer) error {
	client, err := newJiraClient()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(in)
	for {
		printMenu(out)

		choice, err := prompt(reader, out, fmt.Sprintf("Select an option (1-%s): ", exitID))
		if err != nil {
			if err == io.EOF {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		if choice == exitID {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		selected := false
		for _, f := range features {
			if f.id != choice {
				continue
			}
			selected = true
			fmt.Fprintf(out, "\n%s\n%s\n%s\n", divider, f.description, divider)
			if err := f.run(client, reader, out); err != nil {
				logging.Error("workflow failed", "feature", f.id, "error", err)
				fmt.Fprintf(out, "Error: %v\n", err)
			}
		}

		if !selected {
			fmt.Fprintf(out, "Invalid option. Please select 1-%s.\n", exitID)
		}
	}
}

const divider = "============================================================"

func printMenu(out io.Writer) {
	fmt.Fprintf(out, "\n%s\nJira Management Tool\n%s\n\nAvailable features:\n", divider, divider)
	for _, f := range features {
		fmt.Fprintf(out, "  %s. %s\n", f.id, f.description)
	}
	fmt.Fprintf(out, "  %s. Exit\n\n", exitID)
}

// prompt prints a label and reads one trimmed line.
func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptProject optionally lists available projects, then asks for a project
// key. An empty key is reported and returned as such; the caller skips the
// workflow.
func promptProject(client *jira.Client, in *bufio.Reader, out io.Writer) (string, error) {
	answer, err := prompt(in, out, "List available projects first? (y/n): ")
	if err != nil {
		return "", err
	}
	if strings.EqualFold(answer, "y") {
		listProjects(client, out)
	}

	key, err := prompt(in, out, "Enter your Jira project key (e.g. PROJ): ")
	if err != nil {
		return "", err
	}
	if key == "" {
		fmt.Fprintln(out, "Error: project key is required")
	}
	return key, nil
}

// projectListLimit caps how many projects the menu prints.
const projectListLimit = 20

func listProjects(client *jira.Client, out io.Writer) {
	projects, err := client.Projects(nil)
	if err != nil {
		fmt.Fprintf(out, "Could not fetch projects: %v\n", err)
		return
	}

	fmt.Fprintf(out, "\nFound %d project(s):\n", len(projects))
	shown := projects
	if len(shown) > projectListLimit {
		shown = shown[:projectListLimit]
	}
	for _, p := range shown {
		fmt.Fprintf(out, "  %s: %s\n", p.Key, p.Name)
	}
	if rest := len(projects) - projectListLimit; rest > 0 {
		fmt.Fprintf(out, "  ... and %d more projects\n", rest)
	}
}

func runReleaseFeature(client *jira.Client, in *bufio.Reader, out io.Writer) error {
	projectKey, err := promptProject(client, in, out)
	if err != nil || projectKey == "" {
		return err
	}
	return runReleaseManager(client, projectKey, in, out)
}

func runInitiativeFeature(client *jira.Client, in *bufio.Reader, out io.Writer) error {
	projectKey, err := promptProject(client, in, out)
	if err != nil || projectKey == "" {
		return err
	}
	return runInitiativeExporter(client, projectKey, out)
}
