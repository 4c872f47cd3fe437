// ABOUTME: Field value resolution against a request context
// ABOUTME: Evaluates path expressions, applies transforms, and gates conditional fields
package resolve

import (
	"fmt"
	"log"
	"strings"

	"github.com/openhousecrm/docpipe/models"
	"github.com/openhousecrm/docpipe/transform"
)

// Resolve evaluates every field in a definition against the context.
// Resolution never fails on missing data; unresolvable fields come back
// with a nil value so the signer can fill them in the signing UI.
func Resolve(def *models.DocumentDefinition, ctx models.Context) []models.ResolvedField {
	resolved := make([]models.ResolvedField, 0, len(def.Fields))
	for i := range def.Fields {
		resolved = append(resolved, ResolveField(&def.Fields[i], ctx))
	}
	return resolved
}

// ResolveField evaluates a single field definition against the context.
func ResolveField(fd *models.FieldDefinition, ctx models.Context) models.ResolvedField {
	rf := models.ResolvedField{
		FieldKey:          fd.FieldKey,
		ExternalFieldName: fd.ExternalFieldName,
		RoleKey:           fd.RoleKey,
	}

	if fd.Manual() {
		rf.IsManual = true
		return rf
	}

	// Conditional gating: a failed condition drops the field from the
	// payload entirely, not as an empty string.
	if fd.ConditionField != "" && !conditionMet(fd, ctx) {
		return rf
	}

	var raw any
	if len(fd.Sources) > 0 {
		raw = resolveCombined(fd, ctx)
	} else {
		raw = ResolvePath(*fd.Source, ctx)
	}
	if raw == nil {
		return rf
	}

	value := transform.Apply(fd.Transform, raw)
	if value == "" {
		return rf
	}
	rf.Value = &value
	return rf
}

// ResolvePath evaluates a dotted/bracketed path expression against the
// context. Any missing key, attribute, or index short-circuits to nil.
func ResolvePath(path string, ctx models.Context) any {
	segments, err := parsePath(path)
	if err != nil {
		log.Printf("warning: unresolvable path %q: %v", path, err)
		return nil
	}

	head := segments[0]
	current, ok := ctx[head.name]
	if !ok {
		return nil
	}
	if head.index >= 0 {
		current = index(current, head.index)
	}

	for _, seg := range segments[1:] {
		if current == nil {
			return nil
		}
		if seg.name == "full_name" && seg.index < 0 {
			current = fullName(current)
			continue
		}
		current = get(current, seg.name)
		if seg.index >= 0 {
			current = index(current, seg.index)
		}
	}
	return current
}

// fullName is the computed segment: first_name + last_name when present,
// otherwise a display_name/name fallback.
func fullName(obj any) any {
	first := strings.TrimSpace(transform.Stringify(get(obj, "first_name")))
	last := strings.TrimSpace(transform.Stringify(get(obj, "last_name")))
	if first != "" || last != "" {
		return strings.TrimSpace(first + " " + last)
	}
	for _, key := range []string{"display_name", "name"} {
		if v := get(obj, key); v != nil {
			if s := strings.TrimSpace(transform.Stringify(v)); s != "" {
				return s
			}
		}
	}
	return nil
}

// conditionMet resolves the condition field and compares it (stringified)
// against the expected value. A bare field name is looked up under form,
// then transaction, then user.
func conditionMet(fd *models.FieldDefinition, ctx models.Context) bool {
	var raw any
	if strings.Contains(fd.ConditionField, ".") {
		raw = ResolvePath(fd.ConditionField, ctx)
	} else {
		for _, top := range []string{"form", "transaction", "user"} {
			raw = ResolvePath(top+"."+fd.ConditionField, ctx)
			if raw != nil {
				break
			}
		}
	}
	return transform.Stringify(raw) == fd.ConditionEquals
}

// resolveCombined fills a combined field's template with its resolved
// sources. Placeholders are positional: {0}, {1}, ... Returns nil when no
// source resolves so the field is dropped rather than sent half-filled.
func resolveCombined(fd *models.FieldDefinition, ctx models.Context) any {
	out := fd.Template
	anyResolved := false
	for i, src := range fd.Sources {
		value := ""
		if raw := ResolvePath(src, ctx); raw != nil {
			value = transform.Stringify(raw)
			anyResolved = true
		}
		out = strings.ReplaceAll(out, fmt.Sprintf("{%d}", i), value)
	}
	if !anyResolved {
		return nil
	}
	return strings.TrimSpace(out)
}
