// ABOUTME: Structural validation for document definitions
// ABOUTME: Enforces referential integrity, key uniqueness, and path syntax before caching
package definitions

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/openhousecrm/docpipe/models"
	"github.com/openhousecrm/docpipe/resolve"
)

// Schema versions this loader understands.
const currentSchemaVersion = 1

// parseDefinition unmarshals and validates one definition file.
// On failure the returned definition is nil and problems is non-empty.
func parseDefinition(raw []byte) (*models.DocumentDefinition, []string) {
	var def models.DocumentDefinition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, []string{fmt.Sprintf("not valid YAML: %v", err)}
	}

	// The parsed struct is returned even when invalid so callers can
	// still report which slug the problems belong to.
	return &def, validateDefinition(&def)
}

func validateDefinition(def *models.DocumentDefinition) []string {
	var problems []string

	if def.SchemaVersion != currentSchemaVersion {
		problems = append(problems, fmt.Sprintf("unsupported schema_version %d (want %d)", def.SchemaVersion, currentSchemaVersion))
	}
	if def.Slug == "" {
		problems = append(problems, "slug is required")
	}
	if def.Name == "" {
		problems = append(problems, "name is required")
	}
	if def.ExternalTemplateID == "" && def.Type != models.DocTypePDFPreview {
		problems = append(problems, "external_template_id is required")
	}

	switch def.Type {
	case models.DocTypeFormDriven:
		if def.Form == nil || def.Form.Template == "" {
			problems = append(problems, "form-driven documents must declare form.template")
		}
	case models.DocTypePDFPreview:
		// No form config needed.
	default:
		problems = append(problems, fmt.Sprintf("unknown document type %q", def.Type))
	}

	if len(def.Roles) == 0 {
		problems = append(problems, "at least one role is required")
	}

	roleKeys := make(map[string]bool, len(def.Roles))
	for _, role := range def.Roles {
		if role.RoleKey == "" {
			problems = append(problems, "role with empty role_key")
			continue
		}
		if roleKeys[role.RoleKey] {
			problems = append(problems, fmt.Sprintf("duplicate role_key %q", role.RoleKey))
		}
		roleKeys[role.RoleKey] = true

		if role.ExternalRoleName == "" {
			problems = append(problems, fmt.Sprintf("role %s: external_role_name is required", role.RoleKey))
		}
		for _, p := range []struct{ label, path string }{
			{"email_source", role.EmailSource},
			{"name_source", role.NameSource},
		} {
			if p.path == "" {
				continue
			}
			if err := resolve.CheckPath(p.path); err != nil {
				problems = append(problems, fmt.Sprintf("role %s: %s: %v", role.RoleKey, p.label, err))
			}
		}
	}

	fieldKeys := make(map[string]bool, len(def.Fields))
	for _, field := range def.Fields {
		if field.FieldKey == "" {
			problems = append(problems, "field with empty field_key")
			continue
		}
		if fieldKeys[field.FieldKey] {
			problems = append(problems, fmt.Sprintf("duplicate field_key %q", field.FieldKey))
		}
		fieldKeys[field.FieldKey] = true

		if field.ExternalFieldName == "" {
			problems = append(problems, fmt.Sprintf("field %s: external_field_name is required", field.FieldKey))
		}
		if !roleKeys[field.RoleKey] {
			problems = append(problems, fmt.Sprintf("field %s references unknown role_key %q", field.FieldKey, field.RoleKey))
		}

		if field.Source != nil {
			if err := resolve.CheckPath(*field.Source); err != nil {
				problems = append(problems, fmt.Sprintf("field %s: source: %v", field.FieldKey, err))
			}
		}

		// Combined fields need both halves.
		if len(field.Sources) > 0 && field.Template == "" {
			problems = append(problems, fmt.Sprintf("field %s declares sources without a template", field.FieldKey))
		}
		if field.Template != "" && len(field.Sources) == 0 {
			problems = append(problems, fmt.Sprintf("field %s declares a template without sources", field.FieldKey))
		}
		for _, src := range field.Sources {
			if err := resolve.CheckPath(src); err != nil {
				problems = append(problems, fmt.Sprintf("field %s: sources: %v", field.FieldKey, err))
			}
		}
	}

	return problems
}
