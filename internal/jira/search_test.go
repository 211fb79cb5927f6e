package jira

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildJQL(t *testing.T) {
	tests := []struct {
		name     string
		project  string
		clause   string
		expected string
	}{
		{
			name:     "Bare project restriction",
			project:  "PROJ",
			clause:   "",
			expected: "project = PROJ",
		},
		{
			name:     "Clause composed after project",
			project:  "PROJ",
			clause:   `fixVersion = "1.2.0"`,
			expected: `project = PROJ AND fixVersion = "1.2.0"`,
		},
		{
			name:     "Initiative clause",
			project:  "PMT",
			clause:   "issuetype = Initiative AND status NOT IN (Done, Canceled)",
			expected: "project = PMT AND issuetype = Initiative AND status NOT IN (Done, Canceled)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jql := BuildJQL(tt.project, tt.clause)
			assert.Equal(t, tt.expected, jql)
			assert.Contains(t, jql, "project = ", "every composed query must carry a project restriction")
		})
	}
}

func TestSearchProjectWalksAllPages(t *testing.T) {
	pages := []string{
		`{"issues":[{"key":"PROJ-1"},{"key":"PROJ-2"}],"nextPageToken":"tok-1"}`,
		`{"issues":[{"key":"PROJ-3"}],"nextPageToken":"tok-2"}`,
		`{"issues":[{"key":"PROJ-4"}]}`,
	}

	var requests []searchRequest
	mux := http.NewServeMux()
	serveProjects(mux)
	mux.HandleFunc("/rest/api/3/search/jql", func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)
		fmt.Fprint(w, pages[len(requests)-1])
	})

	client, _ := newTestClient(t, mux)

	issues, err := client.SearchProject("PROJ", "", []string{"issuetype"})
	require.NoError(t, err)

	// Concatenation of all pages, in fetch order, with no duplicates.
	keys := make([]string, 0, len(issues))
	seen := make(map[string]bool)
	for _, issue := range issues {
		keys = append(keys, issue.Key)
		assert.False(t, seen[issue.Key], "duplicate key %s", issue.Key)
		seen[issue.Key] = true
	}
	assert.Equal(t, []string{"PROJ-1", "PROJ-2", "PROJ-3", "PROJ-4"}, keys)

	// Terminates exactly when a response omits the next page token.
	require.Len(t, requests, 3)
	assert.Empty(t, requests[0].NextPageToken)
	assert.Equal(t, "tok-1", requests[1].NextPageToken)
	assert.Equal(t, "tok-2", requests[2].NextPageToken)

	for _, req := range requests {
		assert.Equal(t, "project = PROJ", req.JQL)
		assert.Equal(t, maxPageSize, req.MaxResults)
		assert.Equal(t, []string{"issuetype"}, req.Fields)
	}
}

func TestSearchProjectRequiresProjectKey(t *testing.T) {
	mux := http.NewServeMux()
	serveProjects(mux)
	mux.HandleFunc("/rest/api/3/search/jql", func(w http.ResponseWriter, r *http.Request) {
		t.Error("no search request may be sent without a project restriction")
	})

	client, _ := newTestClient(t, mux)

	_, err := client.SearchProject("", "issuetype = Bug", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project key is required")
}

func TestSearchProjectPropagatesHTTPError(t *testing.T) {
	mux := http.NewServeMux()
	serveProjects(mux)
	mux.HandleFunc("/rest/api/3/search/jql", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorMessages":["bad jql"]}`, http.StatusBadRequest)
	})

	client, _ := newTestClient(t, mux)

	_, err := client.SearchProject("PROJ", "nonsense ===", nil)
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
}

func TestSearchNeverUsesRemovedEndpoint(t *testing.T) {
	mux := http.NewServeMux()
	serveProjects(mux)
	mux.HandleFunc("/rest/api/3/search", func(w http.ResponseWriter, r *http.Request) {
		// The removed endpoint answers 410 Gone; reaching it is a bug.
		t.Errorf("deprecated endpoint called: %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusGone)
	})
	mux.HandleFunc("/rest/api/3/search/jql", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"issues":[{"key":"PROJ-1"}]}`)
	})

	client, _ := newTestClient(t, mux)

	issues, err := client.SearchProject("PROJ", "", nil)
	require.NoError(t, err)
	assert.Len(t, issues, 1)

	key, err := client.SearchFirst("PROJ")
	require.NoError(t, err)
	assert.Equal(t, "PROJ-1", key)
}

func TestSearchFirst(t *testing.T) {
	var lastReq searchRequest
	mux := http.NewServeMux()
	serveProjects(mux)
	mux.HandleFunc("/rest/api/3/search/jql", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&lastReq))
		fmt.Fprint(w, `{"issues":[{"key":"PROJ-7"}]}`)
	})

	client, _ := newTestClient(t, mux)

	key, err := client.SearchFirst("PROJ")
	require.NoError(t, err)
	assert.Equal(t, "PROJ-7", key)
	assert.Equal(t, 1, lastReq.MaxResults)
	assert.Equal(t, "project = PROJ", lastReq.JQL)
}

func TestSearchFirstEmptyProjectYieldsNoKey(t *testing.T) {
	mux := http.NewServeMux()
	serveProjects(mux)
	mux.HandleFunc("/rest/api/3/search/jql", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"issues":[]}`)
	})

	client, _ := newTestClient(t, mux)

	key, err := client.SearchFirst("PROJ")
	require.NoError(t, err)
	assert.Empty(t, key)
}
