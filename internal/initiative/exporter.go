// Package initiative exports a project's open Initiative issues to a
// timestamped JSON file.
package initiative

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/opsvik/jiratool/internal/logging"
	"github.com/opsvik/jiratool/pkg/models"
)

// Clause selects Initiatives that are still in flight. Status names are
// matched case-insensitively by the remote.
const Clause = "issuetype = Initiative AND status NOT IN (Done, Canceled)"

// searchFields are the only issue fields the export needs.
var searchFields = []string{"summary", "description", "reporter", "issuelinks"}

// Gateway is the slice of the Jira client the exporter needs.
type Gateway interface {
	SearchProject(projectKey, clause string, fields []string) ([]models.Issue, error)
}

// Record is the write-only projection of an Initiative issue. It never
// round-trips back into Jira.
type Record struct {
	// IssueKey is the Jira issue key.
	IssueKey string `json:"issueKey"`

	// Description is the issue description flattened to plain text.
	Description string `json:"description"`

	// Requester is the reporter's display name, or null when the issue has
	// no reporter.
	Requester *string `json:"requester"`

	// LinkedIssuesCount is the number of entries in the issue's link
	// collection.
	LinkedIssuesCount int `json:"linkedIssuesCount"`
}

// NewRecord projects one issue into its export shape.
func NewRecord(issue models.Issue) Record {
	var requester *string
	if reporter := issue.Fields.Reporter; reporter != nil {
		name := reporter.DisplayName
		if name == "" {
			name = reporter.EmailAddress
		}
		// A reporter with no usable name exports as null, same as an
		// absent reporter.
		if name != "" {
			requester = &name
		}
	}

	return Record{
		IssueKey:          issue.Key,
		Description:       issue.Fields.Description.PlainText(),
		Requester:         requester,
		LinkedIssuesCount: len(issue.Fields.IssueLinks),
	}
}

// Fetch retrieves the project's open Initiatives and projects them into
// export records, in the order the remote returned them.
func Fetch(gw Gateway, projectKey string) ([]Record, error) {
	issues, err := gw.SearchProject(projectKey, Clause, searchFields)
	if err != nil {
		return nil, fmt.Errorf("fetching initiatives for %s: %w", projectKey, err)
	}
	logging.Info("found initiatives", "project", projectKey, "count", len(issues))

	records := make([]Record, 0, len(issues))
	for _, issue := range issues {
		records = append(records, NewRecord(issue))
	}
	return records, nil
}

// Filename names an export file. The timestamp has second resolution and is
// generated once per export call, so all records of one export share a file.
func Filename(projectKey string, now time.Time) string {
	return fmt.Sprintf("initiatives_%s_%s.json", projectKey, now.Format("20060102_150405"))
}

// Export fetches the project's open Initiatives and writes them to a
// timestamped JSON file in dir. It returns the file path and record count;
// when the project has no open Initiatives no file is written and the path
// is empty.
func Export(gw Gateway, projectKey, dir string) (string, int, error) {
	records, err := Fetch(gw, projectKey)
	if err != nil {
		return "", 0, err
	}
	if len(records) == 0 {
		return "", 0, nil
	}

	path := filepath.Join(dir, Filename(projectKey, time.Now()))
	if err := WriteRecords(path, records); err != nil {
		return "", 0, err
	}

	logging.Info("exported initiatives", "project", projectKey, "count", len(records), "file", path)
	return path, len(records), nil
}

// WriteRecords writes records as a pretty-printed UTF-8 JSON array.
func WriteRecords(path string, records []Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export records: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}
