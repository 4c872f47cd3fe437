// ABOUTME: Groups resolved fields into per-role submitter payloads
// ABOUTME: One shared build path with explicit preview and send modes
package builder

import (
	"strings"

	"github.com/openhousecrm/docpipe/models"
	"github.com/openhousecrm/docpipe/resolve"
	"github.com/openhousecrm/docpipe/transform"
)

// Mode selects preview or live-send behavior. Both modes share one build
// path so the field-filtering logic cannot diverge.
type Mode int

const (
	ModePreview Mode = iota
	ModeSend
)

// PlaceholderEmail fills required roles whose email did not resolve, so a
// preview still shows every signer slot.
const PlaceholderEmail = "pending@signers.invalid"

// Build turns resolved fields into submitters, one per included role,
// in the document's role declaration order. On send, optional roles whose
// email does not resolve are omitted entirely; on preview they stay with a
// placeholder email so the reviewer sees the full signer list. Manual and
// nil-valued fields never appear in a submitter's field list.
func Build(def *models.DocumentDefinition, fields []models.ResolvedField, ctx models.Context, mode Mode) []models.Submitter {
	byRole := make(map[string][]models.SubmitterField, len(def.Roles))
	for _, rf := range fields {
		if rf.IsManual || rf.Value == nil {
			continue
		}
		byRole[rf.RoleKey] = append(byRole[rf.RoleKey], models.SubmitterField{
			Name:         rf.ExternalFieldName,
			DefaultValue: *rf.Value,
		})
	}

	submitters := make([]models.Submitter, 0, len(def.Roles))
	for _, role := range def.Roles {
		email := resolveString(role.EmailSource, ctx)
		if email == "" {
			if role.Optional && mode == ModeSend {
				continue
			}
			email = PlaceholderEmail
		}

		submitters = append(submitters, models.Submitter{
			Role:      role.ExternalRoleName,
			Email:     email,
			Name:      resolveString(role.NameSource, ctx),
			Fields:    byRole[role.RoleKey],
			Completed: mode == ModeSend && role.AutoComplete,
		})
	}
	return submitters
}

// BuildForPreview builds submitters for a dry-run preview: every declared
// role is present (placeholder email where resolution came up empty) and
// no role is marked completed.
func BuildForPreview(def *models.DocumentDefinition, fields []models.ResolvedField, ctx models.Context) []models.Submitter {
	return Build(def, fields, ctx, ModePreview)
}

// BuildForSend builds submitters for a live send: auto-complete roles are
// marked completed so they skip the signing flow.
func BuildForSend(def *models.DocumentDefinition, fields []models.ResolvedField, ctx models.Context) []models.Submitter {
	return Build(def, fields, ctx, ModeSend)
}

// MissingFields reports non-manual fields that resolved empty, so a
// preview can show what the signer will have to fill by hand.
func MissingFields(fields []models.ResolvedField) []string {
	var missing []string
	for _, rf := range fields {
		if !rf.IsManual && rf.Value == nil {
			missing = append(missing, rf.ExternalFieldName)
		}
	}
	return missing
}

func resolveString(path string, ctx models.Context) string {
	if path == "" {
		return ""
	}
	return strings.TrimSpace(transform.Stringify(resolve.ResolvePath(path, ctx)))
}
