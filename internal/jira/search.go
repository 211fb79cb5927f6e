package jira

import (
	"encoding/json"
	"fmt"

	"github.com/opsvik/jiratool/internal/logging"
	"github.com/opsvik/jiratool/pkg/models"
)

// searchPath is the only issue search endpoint the tool uses. The older
// GET /rest/api/3/search route was removed by Atlassian and must never be
// called.
const searchPath = "/rest/api/3/search/jql"

// maxPageSize is the remote maximum number of issues per search page.
const maxPageSize = 100

type searchRequest struct {
	JQL           string   `json:"jql"`
	Fields        []string `json:"fields,omitempty"`
	MaxResults    int      `json:"maxResults"`
	NextPageToken string   `json:"nextPageToken,omitempty"`
}

type searchResponse struct {
	Issues        []models.Issue `json:"issues"`
	NextPageToken string         `json:"nextPageToken"`
}

// BuildJQL composes the query sent over the wire. Every query is restricted
// to a project; the remote rejects unbounded queries, so free-form JQL is
// never accepted from callers.
func BuildJQL(projectKey, clause string) string {
	jql := fmt.Sprintf("project = %s", projectKey)
	if clause != "" {
		jql += fmt.Sprintf(" AND %s", clause)
	}
	return jql
}

// SearchProject runs a project-scoped JQL search and returns all matching
// issues, walking the page-token cursor until the response omits a next
// token. Result order is whatever the remote returns. Any HTTP failure
// aborts the search; pages already consumed are discarded.
func (c *Client) SearchProject(projectKey, clause string, fields []string) ([]models.Issue, error) {
	if projectKey == "" {
		return nil, fmt.Errorf("project key is required")
	}

	jql := BuildJQL(projectKey, clause)

	var all []models.Issue
	token := ""
	for {
		req := searchRequest{
			JQL:           jql,
			Fields:        fields,
			MaxResults:    maxPageSize,
			NextPageToken: token,
		}

		raw, err := c.Post(searchPath, req)
		if err != nil {
			return nil, fmt.Errorf("searching %q: %w", jql, err)
		}

		var page searchResponse
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, fmt.Errorf("decoding search response: %w", err)
		}

		all = append(all, page.Issues...)

		if page.NextPageToken == "" {
			logging.Debug("search complete", "jql", jql, "issues", len(all))
			return all, nil
		}
		token = page.NextPageToken
	}
}

// SearchFirst returns the key of one issue in the project, or the empty
// string if the project has none. It anchors edit-metadata field discovery.
func (c *Client) SearchFirst(projectKey string) (string, error) {
	if projectKey == "" {
		return "", fmt.Errorf("project key is required")
	}

	req := searchRequest{
		JQL:        BuildJQL(projectKey, ""),
		Fields:     []string{"issuetype"},
		MaxResults: 1,
	}

	raw, err := c.Post(searchPath, req)
	if err != nil {
		return "", fmt.Errorf("searching for a sample issue in %s: %w", projectKey, err)
	}

	var page searchResponse
	if err := json.Unmarshal(raw, &page); err != nil {
		return "", fmt.Errorf("decoding search response: %w", err)
	}

	if len(page.Issues) == 0 {
		return "", nil
	}
	return page.Issues[0].Key, nil
}
