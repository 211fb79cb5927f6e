package jira

import (
	"encoding/json"
	"fmt"

	"github.com/opsvik/jiratool/pkg/models"
)

// ProjectListOptions narrows the project listing.
type ProjectListOptions struct {
	// Recent limits the listing to the n most recently accessed projects.
	Recent int `url:"recent,omitempty"`

	// Expand requests additional project detail, comma separated.
	Expand string `url:"expand,omitempty"`
}

// Projects lists the projects visible to the authenticated account. This is
// also the low-privilege endpoint used as the connectivity probe, since it
// works with scoped tokens.
func (c *Client) Projects(opts *ProjectListOptions) ([]models.Project, error) {
	raw, err := c.Get("/rest/api/3/project", opts)
	if err != nil {
		return nil, err
	}

	var projects []models.Project
	if err := json.Unmarshal(raw, &projects); err != nil {
		return nil, fmt.Errorf("decoding project listing: %w", err)
	}
	return projects, nil
}

// Fields lists all fields known to the instance, system and custom alike.
// Scoped tokens are known to suppress some custom fields from this listing.
func (c *Client) Fields() ([]models.Field, error) {
	raw, err := c.Get("/rest/api/3/field", nil)
	if err != nil {
		return nil, err
	}

	var fields []models.Field
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decoding field listing: %w", err)
	}
	return fields, nil
}

// EditMeta fetches the edit metadata of one issue, keyed by field ID. It is
// the fallback path for custom field discovery when the global field listing
// omits the field.
func (c *Client) EditMeta(issueKey string) (map[string]models.FieldMeta, error) {
	raw, err := c.Get(fmt.Sprintf("/rest/api/3/issue/%s/editmeta", issueKey), nil)
	if err != nil {
		return nil, err
	}

	var meta struct {
		Fields map[string]models.FieldMeta `json:"fields"`
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("decoding edit metadata for %s: %w", issueKey, err)
	}
	return meta.Fields, nil
}

// ProjectVersions lists all releases (versions) of a project.
func (c *Client) ProjectVersions(projectKey string) ([]models.Version, error) {
	raw, err := c.Get(fmt.Sprintf("/rest/api/3/project/%s/versions", projectKey), nil)
	if err != nil {
		return nil, err
	}

	var versions []models.Version
	if err := json.Unmarshal(raw, &versions); err != nil {
		return nil, fmt.Errorf("decoding versions for %s: %w", projectKey, err)
	}
	return versions, nil
}
