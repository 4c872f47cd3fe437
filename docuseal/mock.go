// ABOUTME: Mock mode for the signing client when no API key is configured
// ABOUTME: Produces structurally identical fake responses so the pipeline tests offline
package docuseal

import (
	"fmt"
	"sync"

	"github.com/openhousecrm/docpipe/models"
)

type mockState struct {
	mu      sync.Mutex
	counter int
}

func newMockState() *mockState {
	return &mockState{}
}

func (m *mockState) nextID(prefix string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("%s-%06d", prefix, m.counter)
}

func (m *mockState) getTemplate(id string) *Template {
	return &Template{
		ID:    id,
		Name:  "Mock Template " + id,
		Roles: []string{"Seller", "Buyer", "Listing Agent"},
		Fields: []TemplateField{
			{Name: "Property Address", Type: "text", Role: "Seller"},
			{Name: "List Price", Type: "number", Role: "Seller"},
			{Name: "Closing Date", Type: "date", Role: "Buyer"},
			{Name: "Seller Initials", Type: "text", Role: "Seller"},
			{Name: "Conventional Option", Type: "checkbox", Role: "Buyer"},
		},
	}
}

func (m *mockState) createSubmission(submitters []models.Submitter) *Submission {
	id := m.nextID("mock-sub")
	out := &Submission{ID: id}
	for _, s := range submitters {
		status := "awaiting"
		if s.Completed {
			status = "completed"
		}
		out.Submitters = append(out.Submitters, SubmissionSubmitter{
			Email:     s.Email,
			Role:      s.Role,
			Status:    status,
			AccessURL: fmt.Sprintf("https://docuseal.invalid/s/%s/%s", id, s.Role),
		})
	}
	return out
}

func (m *mockState) getDocuments(submissionID string, merge bool) []Document {
	if merge {
		return []Document{{Name: "merged.pdf", URL: fmt.Sprintf("https://docuseal.invalid/d/%s/merged.pdf", submissionID)}}
	}
	return []Document{{Name: "document.pdf", URL: fmt.Sprintf("https://docuseal.invalid/d/%s/document.pdf", submissionID)}}
}

func (m *mockState) mergeTemplates(templateIDs []string, name string, roles []string) *Template {
	tmpl := &Template{
		ID:    m.nextID("mock-tmpl"),
		Name:  name,
		Roles: roles,
	}
	for _, id := range templateIDs {
		tmpl.Fields = append(tmpl.Fields, m.getTemplate(id).Fields...)
	}
	return tmpl
}
