// ABOUTME: Data models for the document generation engine
// ABOUTME: Defines document definitions, resolved fields, submitters, and mapping suggestions
package models

import (
	"time"

	"github.com/google/uuid"
)

// Document type constants.
const (
	DocTypeFormDriven = "form-driven"
	DocTypePDFPreview = "pdf-preview"
)

// Context holds the per-request data the resolver reads field values from.
// Exactly three top-level keys are recognized: user, transaction, form.
type Context map[string]any

// Display carries UI hints for listing documents in admin screens.
type Display struct {
	Color     string `yaml:"color" json:"color,omitempty"`
	Icon      string `yaml:"icon" json:"icon,omitempty"`
	SortOrder int    `yaml:"sort_order" json:"sort_order,omitempty"`
}

// FormConfig names the HTML form template backing a form-driven document.
type FormConfig struct {
	Template string `yaml:"template" json:"template"`
	Partial  string `yaml:"partial" json:"partial,omitempty"`
}

// RoleDefinition is a named signer slot in a document.
type RoleDefinition struct {
	RoleKey          string `yaml:"role_key" json:"role_key"`
	ExternalRoleName string `yaml:"external_role_name" json:"external_role_name"`
	EmailSource      string `yaml:"email_source" json:"email_source,omitempty"`
	NameSource       string `yaml:"name_source" json:"name_source,omitempty"`
	Optional         bool   `yaml:"optional" json:"optional,omitempty"`
	AutoComplete     bool   `yaml:"auto_complete" json:"auto_complete,omitempty"`
}

// FieldDefinition maps one template field to a source path.
// A nil Source marks a manual field: left blank for the signer to fill.
// Sources plus Template describe a combined field built from several paths.
type FieldDefinition struct {
	FieldKey          string   `yaml:"field_key" json:"field_key"`
	ExternalFieldName string   `yaml:"external_field_name" json:"external_field_name"`
	RoleKey           string   `yaml:"role_key" json:"role_key"`
	Source            *string  `yaml:"source" json:"source"`
	Sources           []string `yaml:"sources" json:"sources,omitempty"`
	Template          string   `yaml:"template" json:"template,omitempty"`
	Transform         string   `yaml:"transform" json:"transform,omitempty"`
	ConditionField    string   `yaml:"condition_field" json:"condition_field,omitempty"`
	ConditionEquals   string   `yaml:"condition_equals" json:"condition_equals,omitempty"`
}

// Manual reports whether the field is never auto-filled.
func (f *FieldDefinition) Manual() bool {
	return f.Source == nil && len(f.Sources) == 0
}

// DocumentDefinition is a loaded, validated document configuration.
// Definitions are immutable once loaded; the loader replaces them wholesale.
type DocumentDefinition struct {
	SchemaVersion      int               `yaml:"schema_version" json:"schema_version"`
	Slug               string            `yaml:"slug" json:"slug"`
	Name               string            `yaml:"name" json:"name"`
	ExternalTemplateID string            `yaml:"external_template_id" json:"external_template_id"`
	Type               string            `yaml:"type" json:"type"`
	Display            Display           `yaml:"display" json:"display"`
	Form               *FormConfig       `yaml:"form" json:"form,omitempty"`
	Roles              []RoleDefinition  `yaml:"roles" json:"roles"`
	Fields             []FieldDefinition `yaml:"fields" json:"fields"`
}

// Role returns the role definition for a role_key, if declared.
func (d *DocumentDefinition) Role(roleKey string) (*RoleDefinition, bool) {
	for i := range d.Roles {
		if d.Roles[i].RoleKey == roleKey {
			return &d.Roles[i], true
		}
	}
	return nil, false
}

// ResolvedField is the result of evaluating one FieldDefinition against a
// context. A nil Value means the field stays blank in the signing UI.
type ResolvedField struct {
	FieldKey          string  `json:"field_key"`
	ExternalFieldName string  `json:"external_field_name"`
	RoleKey           string  `json:"role_key"`
	Value             *string `json:"value"`
	IsManual          bool    `json:"is_manual"`
}

// SubmitterField is one pre-filled field in a submitter payload.
type SubmitterField struct {
	Name         string `json:"name"`
	DefaultValue string `json:"default_value"`
}

// Submitter is the per-role payload sent to the signing API.
type Submitter struct {
	Role      string           `json:"role"`
	Email     string           `json:"email"`
	Name      string           `json:"name,omitempty"`
	Fields    []SubmitterField `json:"fields,omitempty"`
	Completed bool             `json:"completed,omitempty"`
}

// SourceField describes a field on an arbitrary HTML form fed to the auto-mapper.
type SourceField struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// TargetField describes a field on an external signing template.
type TargetField struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
	Role string `json:"role,omitempty"`
}

// Match strategy constants for mapping suggestions.
const (
	MatchExact    = "exact"
	MatchPattern  = "pattern"
	MatchSemantic = "semantic"
)

// MappingSuggestion is one proposed source-to-target field mapping.
// Suggestions are reviewed by an admin; accepted ones become FieldDefinitions.
type MappingSuggestion struct {
	SourceField        string `json:"source_field"`
	SourceType         string `json:"source_type,omitempty"`
	TargetField        string `json:"target_field"`
	TargetRole         string `json:"target_role,omitempty"`
	TargetType         string `json:"target_type,omitempty"`
	Confidence         int    `json:"confidence"`
	SuggestedTransform string `json:"suggested_transform,omitempty"`
	MatchStrategy      string `json:"match_strategy"`
}

// Submission status constants for the audit log.
const (
	SubmissionStatusSent      = "sent"
	SubmissionStatusCompleted = "completed"
	SubmissionStatusArchived  = "archived"
)

// SubmissionRecord is one row in the local submission audit log.
type SubmissionRecord struct {
	ID           uuid.UUID `json:"id"`
	DocumentSlug string    `json:"document_slug"`
	SubmissionID string    `json:"submission_id"`
	TemplateID   string    `json:"template_id"`
	Status       string    `json:"status"`
	SignerEmails string    `json:"signer_emails,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
