// ABOUTME: Typed errors for document definition loading and validation
// ABOUTME: ConfigurationError aggregates load failures; ValidationError is single-document
package definitions

import (
	"fmt"
	"strings"
)

// ConfigurationError reports every problem found across a full load.
// When raised, no definitions were cached; the document system is
// unavailable until the files are fixed.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("document definitions failed to load (%d problems):\n  %s",
		len(e.Problems), strings.Join(e.Problems, "\n  "))
}

// ValidationError reports problems in a single document definition,
// used by the dry-run validation path.
type ValidationError struct {
	Slug     string
	Problems []string
}

func (e *ValidationError) Error() string {
	slug := e.Slug
	if slug == "" {
		slug = "(unknown slug)"
	}
	return fmt.Sprintf("document %s invalid: %s", slug, strings.Join(e.Problems, "; "))
}
