// ABOUTME: Bootstraps a draft document definition from accepted mapping suggestions
// ABOUTME: Includes the best-effort role_key guesser for common signer names
package automap

import (
	"fmt"
	"strings"

	"github.com/openhousecrm/docpipe/models"
)

// roleKeyGuesses maps signer-name substrings to conventional role keys.
// Best-effort convenience for drafting definitions; nothing in the
// resolver or builder depends on these keys.
var roleKeyGuesses = []struct {
	substring string
	key       string
}{
	{"co-seller", "co_seller"},
	{"co seller", "co_seller"},
	{"co-buyer", "co_buyer"},
	{"co buyer", "co_buyer"},
	{"seller", "seller"},
	{"buyer", "buyer"},
	{"listing agent", "listing_agent"},
	{"buyer agent", "buyer_agent"},
	{"agent", "agent"},
	{"broker", "broker"},
	{"escrow", "escrow_officer"},
	{"lender", "lender"},
	{"title", "title_company"},
}

// GuessRoleKey proposes a stable role_key for an external signer role name.
func GuessRoleKey(externalRoleName string) string {
	lower := strings.ToLower(externalRoleName)
	for _, g := range roleKeyGuesses {
		if strings.Contains(lower, g.substring) {
			return g.key
		}
	}
	return Normalize(externalRoleName)
}

// BuildDefinitionSkeleton turns accepted suggestions into a draft
// definition an admin can edit and save. Mapped fields read from the form
// context; unmapped target fields become manual fields so nothing on the
// template is silently dropped.
func BuildDefinitionSkeleton(slug, name, templateID string, target []models.TargetField, suggestions []models.MappingSuggestion) *models.DocumentDefinition {
	def := &models.DocumentDefinition{
		SchemaVersion:      1,
		Slug:               slug,
		Name:               name,
		ExternalTemplateID: templateID,
		Type:               models.DocTypePDFPreview,
	}

	// Roles in target declaration order, deduped.
	seenRoles := make(map[string]bool)
	for _, tf := range target {
		if tf.Role == "" || seenRoles[tf.Role] {
			continue
		}
		seenRoles[tf.Role] = true
		def.Roles = append(def.Roles, models.RoleDefinition{
			RoleKey:          GuessRoleKey(tf.Role),
			ExternalRoleName: tf.Role,
		})
	}
	if len(def.Roles) == 0 {
		def.Roles = append(def.Roles, models.RoleDefinition{RoleKey: "signer", ExternalRoleName: "Signer"})
	}

	mappedTargets := make(map[string]models.MappingSuggestion, len(suggestions))
	for _, s := range suggestions {
		mappedTargets[s.TargetField] = s
	}

	usedKeys := make(map[string]int)
	for _, tf := range target {
		fieldKey := uniqueKey(usedKeys, Normalize(tf.Name))
		roleKey := def.Roles[0].RoleKey
		if tf.Role != "" {
			roleKey = GuessRoleKey(tf.Role)
		}

		fd := models.FieldDefinition{
			FieldKey:          fieldKey,
			ExternalFieldName: tf.Name,
			RoleKey:           roleKey,
		}
		if s, ok := mappedTargets[tf.Name]; ok {
			source := "form." + s.SourceField
			fd.Source = &source
			fd.Transform = s.SuggestedTransform
		}
		def.Fields = append(def.Fields, fd)
	}
	return def
}

func uniqueKey(used map[string]int, key string) string {
	if key == "" {
		key = "field"
	}
	used[key]++
	if used[key] == 1 {
		return key
	}
	return fmt.Sprintf("%s_%d", key, used[key])
}
