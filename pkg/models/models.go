// Package models defines data structures shared across the application.
package models

import (
	"github.com/opsvik/jiratool/internal/adf"
)

// Project represents a Jira project as returned by the project listing.
type Project struct {
	// ID is the internal numeric identifier of the project
	ID string `json:"id"`

	// Key is the short project key (e.g. "PROJ")
	Key string `json:"key"`

	// Name is the human-readable project name
	Name string `json:"name"`
}

// Field describes a Jira field from the global field listing.
type Field struct {
	// ID is the field identifier (e.g. "summary" or "customfield_10001")
	ID string `json:"id"`

	// Name is the display label of the field
	Name string `json:"name"`

	// Custom reports whether the field is a custom field
	Custom bool `json:"custom"`
}

// FieldMeta is the per-field entry of an issue's edit metadata.
type FieldMeta struct {
	// Name is the display label of the editable field
	Name string `json:"name"`
}

// Version represents a release (fix version) of a project.
type Version struct {
	// ID is the internal identifier of the version
	ID string `json:"id"`

	// Name is the release name used in fixVersion JQL clauses
	Name string `json:"name"`

	// Released reports whether the version has been released
	Released bool `json:"released"`

	// ReleaseDate is the release date in YYYY-MM-DD form, if set
	ReleaseDate string `json:"releaseDate,omitempty"`
}

// User is a Jira account reference as embedded in issue fields.
type User struct {
	// AccountID is the Atlassian account identifier
	AccountID string `json:"accountId"`

	// DisplayName is the user's display name
	DisplayName string `json:"displayName"`

	// EmailAddress is the account email, when visible to the caller
	EmailAddress string `json:"emailAddress,omitempty"`
}

// IssueType is the type of a Jira issue (e.g. "Bug", "Initiative").
type IssueType struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Status is the workflow status of an issue.
type Status struct {
	Name string `json:"name"`
}

// IssueLink is one entry of an issue's link collection. Only its presence is
// consumed; callers count links rather than follow them.
type IssueLink struct {
	ID string `json:"id"`
}

// IssueFields holds the subset of issue fields this tool requests. Fields not
// named in a search request are absent from the response and stay zero-valued.
type IssueFields struct {
	Summary     string      `json:"summary,omitempty"`
	IssueType   *IssueType  `json:"issuetype,omitempty"`
	Status      *Status     `json:"status,omitempty"`
	Reporter    *User       `json:"reporter,omitempty"`
	Description *adf.Node   `json:"description,omitempty"`
	IssueLinks  []IssueLink `json:"issuelinks,omitempty"`
}

// Issue represents a Jira issue record. Issues are immutable once fetched;
// every run re-reads them from the remote instance.
type Issue struct {
	// ID is the internal numeric identifier of the issue
	ID string `json:"id,omitempty"`

	// Key is the issue key, unique within a Jira instance (e.g. "PROJ-123")
	Key string `json:"key"`

	// Fields carries the requested issue fields
	Fields IssueFields `json:"fields"`
}
