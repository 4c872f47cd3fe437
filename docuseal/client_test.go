// ABOUTME: Unit tests for the signing API client
// ABOUTME: Covers mock mode shapes and typed error surfacing against a test server
package docuseal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhousecrm/docpipe/models"
)

func TestMockModeWithoutAPIKey(t *testing.T) {
	client := NewClient(Config{})
	require.True(t, client.MockMode())

	client = NewClient(Config{APIKey: "secret"})
	assert.False(t, client.MockMode())
}

func TestMockTemplateShape(t *testing.T) {
	client := NewClient(Config{})

	tmpl, err := client.GetTemplate(context.Background(), "184417")
	require.NoError(t, err)
	assert.Equal(t, "184417", tmpl.ID)
	assert.NotEmpty(t, tmpl.Roles)
	assert.NotEmpty(t, tmpl.Fields)

	targets := tmpl.TargetFields()
	require.Len(t, targets, len(tmpl.Fields))
	assert.Equal(t, tmpl.Fields[0].Name, targets[0].Name)
}

func TestMockCreateSubmission(t *testing.T) {
	client := NewClient(Config{})

	submitters := []models.Submitter{
		{Role: "Seller", Email: "ann@example.com"},
		{Role: "Listing Agent", Email: "dana@brokerage.com", Completed: true},
	}

	sub, err := client.CreateSubmission(context.Background(), CreateSubmissionRequest{
		TemplateID: "184417",
		Submitters: submitters,
		SendEmail:  true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	require.Len(t, sub.Submitters, 2)
	assert.Equal(t, "awaiting", sub.Submitters[0].Status)
	assert.Equal(t, "completed", sub.Submitters[1].Status, "completed submitter is pre-signed")
	assert.NotEmpty(t, sub.Submitters[0].AccessURL)

	// IDs are unique per submission.
	sub2, err := client.CreateSubmission(context.Background(), CreateSubmissionRequest{TemplateID: "184417"})
	require.NoError(t, err)
	assert.NotEqual(t, sub.ID, sub2.ID)
}

func TestMockDocumentsAndMerge(t *testing.T) {
	client := NewClient(Config{})

	docs, err := client.GetSubmissionDocuments(context.Background(), "mock-sub-000001", false)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.NotEmpty(t, docs[0].URL)

	merged, err := client.GetSubmissionDocuments(context.Background(), "mock-sub-000001", true)
	require.NoError(t, err)
	assert.Equal(t, "merged.pdf", merged[0].Name)

	tmpl, err := client.MergeTemplates(context.Background(), []string{"1", "2"}, "Combined Packet", []string{"Seller"})
	require.NoError(t, err)
	assert.Equal(t, "Combined Packet", tmpl.Name)
	assert.NotEmpty(t, tmpl.Fields)
}

func TestAPIErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"submitters missing"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "secret"})
	_, err := client.CreateSubmission(context.Background(), CreateSubmissionRequest{TemplateID: "1"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "submitters missing")
}

func TestRequestShape(t *testing.T) {
	var gotPath, gotToken, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Auth-Token")
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"id":"77","submitters":[]}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "secret"})
	sub, err := client.CreateSubmission(context.Background(), CreateSubmissionRequest{TemplateID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "77", sub.ID)
	assert.Equal(t, "/submissions", gotPath)
	assert.Equal(t, "secret", gotToken)
	assert.Equal(t, "application/json", gotContentType)
}

func TestArchiveSubmission(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "secret"})
	require.NoError(t, client.ArchiveSubmission(context.Background(), "sub-123"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/submissions/sub-123", gotPath)

	// Mock mode archives without a network call.
	assert.NoError(t, NewClient(Config{}).ArchiveSubmission(context.Background(), "sub-123"))
}

func TestGetTemplateOverHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/templates/184417", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"184417","name":"Listing","roles":["Seller"],"fields":[{"name":"Property Address","type":"text","role":"Seller"}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "secret"})
	tmpl, err := client.GetTemplate(context.Background(), "184417")
	require.NoError(t, err)
	assert.Equal(t, "Listing", tmpl.Name)
	require.Len(t, tmpl.Fields, 1)
	assert.Equal(t, "Property Address", tmpl.Fields[0].Name)
}
