// ABOUTME: Request and response types for the DocuSeal signing API
// ABOUTME: Mirrors the wire shapes the document pipeline depends on
package docuseal

import "github.com/openhousecrm/docpipe/models"

// TemplateField is one fillable field on a signing template.
type TemplateField struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
	Role string `json:"role,omitempty"`
}

// Template is the subset of a signing template the pipeline consumes.
type Template struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Roles  []string        `json:"roles"`
	Fields []TemplateField `json:"fields"`
}

// TargetFields converts template fields into auto-mapper targets.
func (t *Template) TargetFields() []models.TargetField {
	out := make([]models.TargetField, 0, len(t.Fields))
	for _, f := range t.Fields {
		out = append(out, models.TargetField{Name: f.Name, Type: f.Type, Role: f.Role})
	}
	return out
}

// CreateSubmissionRequest creates envelopes from an existing template.
type CreateSubmissionRequest struct {
	TemplateID string             `json:"template_id"`
	Submitters []models.Submitter `json:"submitters"`
	SendEmail  bool               `json:"send_email"`
	Message    string             `json:"message,omitempty"`
	Order      string             `json:"order,omitempty"`
}

// FieldPlacement positions one field on an uploaded PDF page.
type FieldPlacement struct {
	Name string  `json:"name"`
	Role string  `json:"role,omitempty"`
	Type string  `json:"type,omitempty"`
	Page int     `json:"page"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
}

// CreateSubmissionFromPDFRequest creates an envelope from raw PDF bytes.
type CreateSubmissionFromPDFRequest struct {
	PDF        []byte             `json:"-"`
	Name       string             `json:"name"`
	Fields     []FieldPlacement   `json:"fields,omitempty"`
	Submitters []models.Submitter `json:"submitters"`
	SendEmail  bool               `json:"send_email"`
	Order      string             `json:"order,omitempty"`
}

// SubmissionSubmitter is the per-signer state of a created submission.
type SubmissionSubmitter struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	AccessURL string `json:"access_url,omitempty"`
}

// Submission is the created envelope returned by the API.
type Submission struct {
	ID         string                `json:"id"`
	Submitters []SubmissionSubmitter `json:"submitters"`
}

// Document is one signed/merged document available for download.
type Document struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
