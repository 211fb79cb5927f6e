// Package release classifies the releases of a project by the issue types
// they contain and resolves the "Investment Category" custom field used to
// annotate qualifying ones.
package release

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opsvik/jiratool/internal/logging"
	"github.com/opsvik/jiratool/pkg/models"
)

// InvestmentCategoryField is the display label of the custom field resolved
// during classification. Matching is exact and case-sensitive.
const InvestmentCategoryField = "Investment Category"

// SuggestedCategory is the value qualifying releases are expected to be
// updated with, reported to the operator alongside the resolved field ID.
const SuggestedCategory = "Product Growth (Offense)"

// allowedTypes are the issue types a qualifying release may contain.
var allowedTypes = map[string]bool{
	"Bug":          true,
	"Customer bug": true,
}

// Gateway is the slice of the Jira client the classifier needs.
type Gateway interface {
	Fields() ([]models.Field, error)
	SearchFirst(projectKey string) (string, error)
	EditMeta(issueKey string) (map[string]models.FieldMeta, error)
	ProjectVersions(projectKey string) ([]models.Version, error)
	SearchProject(projectKey, clause string, fields []string) ([]models.Issue, error)
}

// Report is the classification result for a single release.
type Report struct {
	// Name is the release name.
	Name string

	// Qualifies is true when the release has at least one issue and every
	// issue is a Bug or Customer bug.
	Qualifies bool

	// IssueCount is the number of issues attached to the release.
	IssueCount int

	// IssueTypes are the distinct issue type names seen, sorted.
	IssueTypes []string

	// Reason explains the verdict for the operator.
	Reason string
}

// Classification is the outcome of a full project scan.
type Classification struct {
	// FieldID is the resolved "Investment Category" custom field ID, empty
	// when unresolved.
	FieldID string

	// FieldResolved reports whether either discovery strategy found the
	// field. Classification proceeds regardless; the field is informational.
	FieldResolved bool

	// Releases are the per-release reports, in remote listing order.
	Releases []Report
}

// fieldLookup is one discovery strategy. A false second return means the
// strategy could not find the field; strategies swallow their own errors so
// the next one can still run.
type fieldLookup struct {
	name string
	fn   func(gw Gateway, projectKey string) (string, bool)
}

// fieldLookups are tried in order; the first hit wins.
var fieldLookups = []fieldLookup{
	{name: "field listing", fn: lookupFieldListing},
	{name: "issue edit metadata", fn: lookupEditMeta},
}

// ResolveInvestmentCategory finds the custom field ID for the Investment
// Category field. Scoped tokens may suppress custom fields from the global
// listing, hence the edit-metadata fallback anchored on a sample issue.
func ResolveInvestmentCategory(gw Gateway, projectKey string) (string, bool) {
	for _, lookup := range fieldLookups {
		if id, ok := lookup.fn(gw, projectKey); ok {
			logging.Info("resolved investment category field",
				"strategy", lookup.name,
				"field_id", id)
			return id, true
		}
		logging.Debug("field discovery strategy found nothing",
			"strategy", lookup.name,
			"project", projectKey)
	}
	return "", false
}

func lookupFieldListing(gw Gateway, _ string) (string, bool) {
	fields, err := gw.Fields()
	if err != nil {
		logging.Warn("field listing failed", "error", err)
		return "", false
	}

	for _, field := range fields {
		if field.Name == InvestmentCategoryField {
			return field.ID, true
		}
	}
	return "", false
}

func lookupEditMeta(gw Gateway, projectKey string) (string, bool) {
	issueKey, err := gw.SearchFirst(projectKey)
	if err != nil {
		logging.Warn("sample issue lookup failed", "project", projectKey, "error", err)
		return "", false
	}
	if issueKey == "" {
		logging.Debug("project has no issues to anchor field discovery", "project", projectKey)
		return "", false
	}

	meta, err := gw.EditMeta(issueKey)
	if err != nil {
		logging.Warn("edit metadata fetch failed", "issue", issueKey, "error", err)
		return "", false
	}

	for fieldID, field := range meta {
		if field.Name == InvestmentCategoryField {
			return fieldID, true
		}
	}
	return "", false
}

// Classify scans every release of the project and reports which ones contain
// only Bug or Customer bug issues. A release with no issues does not qualify.
// Field discovery failures are non-fatal; release or issue enumeration
// failures abort the scan.
func Classify(gw Gateway, projectKey string) (*Classification, error) {
	fieldID, resolved := ResolveInvestmentCategory(gw, projectKey)
	if !resolved {
		logging.Warn("could not resolve investment category field; continuing without it",
			"project", projectKey)
	}

	versions, err := gw.ProjectVersions(projectKey)
	if err != nil {
		return nil, fmt.Errorf("listing releases for %s: %w", projectKey, err)
	}
	logging.Info("found releases", "project", projectKey, "count", len(versions))

	classification := &Classification{
		FieldID:       fieldID,
		FieldResolved: resolved,
	}

	for _, version := range versions {
		if version.Name == "" {
			continue
		}
		report, err := classifyRelease(gw, projectKey, version.Name)
		if err != nil {
			return nil, err
		}
		classification.Releases = append(classification.Releases, *report)
	}

	return classification, nil
}

func classifyRelease(gw Gateway, projectKey, releaseName string) (*Report, error) {
	clause := fmt.Sprintf("fixVersion = %q", releaseName)
	issues, err := gw.SearchProject(projectKey, clause, []string{"issuetype"})
	if err != nil {
		return nil, fmt.Errorf("fetching issues for release %q: %w", releaseName, err)
	}

	report := &Report{
		Name:       releaseName,
		IssueCount: len(issues),
	}

	if len(issues) == 0 {
		report.Reason = "no issues"
		return report, nil
	}

	seen := make(map[string]bool)
	var others []string
	for _, issue := range issues {
		if issue.Fields.IssueType == nil || issue.Fields.IssueType.Name == "" {
			continue
		}
		name := issue.Fields.IssueType.Name
		if seen[name] {
			continue
		}
		seen[name] = true
		report.IssueTypes = append(report.IssueTypes, name)
		if !allowedTypes[name] {
			others = append(others, name)
		}
	}
	sort.Strings(report.IssueTypes)

	if len(others) > 0 {
		sort.Strings(others)
		report.Reason = fmt.Sprintf("contains other issue types: %s", strings.Join(others, ", "))
		return report, nil
	}

	// Issues without a type name are not Bug or Customer bug; a release
	// where no type names were collected must not qualify.
	if len(report.IssueTypes) == 0 {
		report.Reason = "no recognized issue types"
		return report, nil
	}

	report.Qualifies = true
	report.Reason = "only bug issues"
	return report, nil
}
