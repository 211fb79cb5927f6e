// Package jira is a thin client for the Jira Cloud REST API v3. It exposes a
// session-scoped gateway with generic Get/Post/Put operations plus typed
// wrappers for the handful of endpoints this tool consumes.
package jira

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/hashicorp/go-cleanhttp"

	"github.com/opsvik/jiratool/internal/config"
	"github.com/opsvik/jiratool/internal/logging"
)

// requestTimeout bounds every API call so a network stall cannot hang the
// tool indefinitely.
const requestTimeout = 30 * time.Second

// Doer executes an HTTP request. *http.Client satisfies it; tests substitute
// their own implementation.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPError is returned for any non-2xx API response. It carries the status
// code and response body so callers can report the remote failure verbatim.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("jira api returned status %d: %s", e.StatusCode, e.Body)
}

// Client handles interactions with a single Jira Cloud instance. Credentials
// are bound once at construction; the client is safe to reuse across workflow
// runs for the process lifetime.
type Client struct {
	baseURL    string
	authHeader string
	httpClient Doer
}

// NewClient creates an authenticated client and eagerly verifies connectivity
// by listing the projects visible to the credentials. Construction fails if
// the instance is unreachable or the credentials are rejected.
func NewClient(cfg *config.Config) (*Client, error) {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = requestTimeout

	client := &Client{
		baseURL:    strings.TrimRight(cfg.Jira.URL, "/"),
		authHeader: basicAuth(cfg.Jira.Email, cfg.Jira.Token),
		httpClient: httpClient,
	}

	projects, err := client.Projects(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to jira at %s: %w", client.baseURL, err)
	}

	logging.Info("connected to jira",
		"url", client.baseURL,
		"email", cfg.Jira.Email,
		"token", logging.MaskSensitive(cfg.Jira.Token),
		"visible_projects", len(projects))

	return client, nil
}

// Get performs a GET request against the given API path. The optional query
// value is a struct with `url` tags, encoded into the query string.
func (c *Client) Get(path string, queryOpts any) (json.RawMessage, error) {
	return c.do(http.MethodGet, path, queryOpts, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(path string, body any) (json.RawMessage, error) {
	return c.do(http.MethodPost, path, nil, body)
}

// Put performs a PUT request with a JSON body. Jira answers some mutations
// with 204 and an empty body; the returned message is nil in that case.
func (c *Client) Put(path string, body any) (json.RawMessage, error) {
	return c.do(http.MethodPut, path, nil, body)
}

func (c *Client) do(method, path string, queryOpts, body any) (json.RawMessage, error) {
	url := c.baseURL + "/" + strings.TrimLeft(path, "/")

	if queryOpts != nil {
		values, err := query.Values(queryOpts)
		if err != nil {
			return nil, fmt.Errorf("encoding query parameters: %w", err)
		}
		if encoded := values.Encode(); encoded != "" {
			url += "?" + encoded
		}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.Debug("jira api request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	if len(respBody) == 0 {
		return nil, nil
	}
	return respBody, nil
}

// basicAuth builds the Authorization header value for an email/token pair.
func basicAuth(email, token string) string {
	credentials := fmt.Sprintf("%s:%s", email, token)
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}
