// ABOUTME: HTTP client for the DocuSeal e-signature API
// ABOUTME: Thin request/response wrapper with bounded timeouts and a mock mode
package docuseal

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const (
	defaultBaseURL = "https://api.docuseal.com"
	defaultTimeout = 30 * time.Second
)

// Config holds signing service credentials. An empty APIKey enables mock
// mode: structurally identical fake responses, no network access.
type Config struct {
	BaseURL string
	APIKey  string
}

// ConfigFromEnv reads DOCUSEAL_BASE_URL and DOCUSEAL_API_KEY.
func ConfigFromEnv() Config {
	return Config{
		BaseURL: os.Getenv("DOCUSEAL_BASE_URL"),
		APIKey:  os.Getenv("DOCUSEAL_API_KEY"),
	}
}

// Client talks to the signing service. Create with NewClient.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	mock       *mockState
}

// NewClient creates a signing API client. Network calls are bounded by a
// 30 second timeout and fail with an APIError rather than hang.
func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	c := &Client{
		baseURL:    base,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	if cfg.APIKey == "" {
		c.mock = newMockState()
	}
	return c
}

// MockMode reports whether the client fakes responses locally.
func (c *Client) MockMode() bool {
	return c.mock != nil
}

// GetTemplate fetches a template's roles and fields.
func (c *Client) GetTemplate(ctx context.Context, id string) (*Template, error) {
	if c.mock != nil {
		return c.mock.getTemplate(id), nil
	}
	var tmpl Template
	if err := c.do(ctx, http.MethodGet, "/templates/"+url.PathEscape(id), nil, &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// CreateSubmission creates an envelope from an existing template.
func (c *Client) CreateSubmission(ctx context.Context, req CreateSubmissionRequest) (*Submission, error) {
	if c.mock != nil {
		return c.mock.createSubmission(req.Submitters), nil
	}
	var sub Submission
	if err := c.do(ctx, http.MethodPost, "/submissions", req, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// CreateSubmissionFromPDF uploads a PDF with field placements and creates
// an envelope in one call.
func (c *Client) CreateSubmissionFromPDF(ctx context.Context, req CreateSubmissionFromPDFRequest) (*Submission, error) {
	if c.mock != nil {
		return c.mock.createSubmission(req.Submitters), nil
	}

	payload := map[string]any{
		"name":       req.Name,
		"documents":  []map[string]any{{"name": req.Name, "file": base64.StdEncoding.EncodeToString(req.PDF), "fields": req.Fields}},
		"submitters": req.Submitters,
		"send_email": req.SendEmail,
	}
	if req.Order != "" {
		payload["order"] = req.Order
	}

	var sub Submission
	if err := c.do(ctx, http.MethodPost, "/submissions/pdf", payload, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetSubmissionDocuments lists the downloadable documents of a submission,
// optionally merged into one PDF.
func (c *Client) GetSubmissionDocuments(ctx context.Context, submissionID string, merge bool) ([]Document, error) {
	if c.mock != nil {
		return c.mock.getDocuments(submissionID, merge), nil
	}

	path := "/submissions/" + url.PathEscape(submissionID) + "/documents"
	if merge {
		path += "?merge=true"
	}
	var resp struct {
		Documents []Document `json:"documents"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// MergeTemplates combines templates into a single new template.
func (c *Client) MergeTemplates(ctx context.Context, templateIDs []string, name string, roles []string) (*Template, error) {
	if c.mock != nil {
		return c.mock.mergeTemplates(templateIDs, name, roles), nil
	}

	payload := map[string]any{
		"template_ids": templateIDs,
		"name":         name,
	}
	if len(roles) > 0 {
		payload["roles"] = roles
	}
	var tmpl Template
	if err := c.do(ctx, http.MethodPost, "/templates/merge", payload, &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// ArchiveSubmission voids a sent envelope.
func (c *Client) ArchiveSubmission(ctx context.Context, submissionID string) error {
	if c.mock != nil {
		return nil
	}
	return c.do(ctx, http.MethodDelete, "/submissions/"+url.PathEscape(submissionID), nil, nil)
}

// do performs one JSON request. Non-2xx responses become an APIError with
// the status and raw body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-Auth-Token", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("docuseal request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw), Op: method + " " + path}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
