// ABOUTME: Document definition discovery, caching, and reload
// ABOUTME: Loads YAML definition files fail-fast and swaps the cache atomically
package definitions

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/openhousecrm/docpipe/models"
)

// Loader owns the in-memory definition cache. Many readers, one rare
// writer (Reload): the cache is a single map reference built off to the
// side and swapped in whole, so readers never see a partial load.
type Loader struct {
	dir string

	mu     sync.RWMutex
	defs   map[string]*models.DocumentDefinition
	loaded bool
}

// NewLoader creates a loader for a directory of .yml/.yaml definition files.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// LoadAll discovers, parses, and validates every definition file. If any
// file is invalid the whole load fails with an aggregated ConfigurationError
// and the cache is left as-is (empty on first load).
func (l *Loader) LoadAll() error {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("failed to read definitions directory %s: %w", l.dir, err)
	}

	next := make(map[string]*models.DocumentDefinition)
	var problems []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yml" && ext != ".yaml" {
			continue
		}

		path := filepath.Join(l.dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", entry.Name(), err))
			continue
		}

		def, fileProblems := parseDefinition(raw)
		if len(fileProblems) > 0 {
			for _, p := range fileProblems {
				problems = append(problems, fmt.Sprintf("%s: %s", entry.Name(), p))
			}
			continue
		}

		if _, exists := next[def.Slug]; exists {
			problems = append(problems, fmt.Sprintf("%s: duplicate slug %q", entry.Name(), def.Slug))
			continue
		}
		next[def.Slug] = def
	}

	if len(problems) > 0 {
		return &ConfigurationError{Problems: problems}
	}

	l.mu.Lock()
	l.defs = next
	l.loaded = true
	l.mu.Unlock()
	return nil
}

// Reload rebuilds the cache from disk. Readers see either the old or the
// new complete snapshot, never a partial one; on failure the old snapshot
// stays in place.
func (l *Loader) Reload() error {
	return l.LoadAll()
}

// IsLoaded reports whether a successful load has happened.
func (l *Loader) IsLoaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

// Get returns the definition for a slug, or nil when unknown.
func (l *Loader) Get(slug string) *models.DocumentDefinition {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.defs[slug]
}

// GetOrErr returns the definition for a slug or an error naming it.
func (l *Loader) GetOrErr(slug string) (*models.DocumentDefinition, error) {
	if def := l.Get(slug); def != nil {
		return def, nil
	}
	return nil, fmt.Errorf("unknown document %q", slug)
}

// All returns every cached definition, ordered by slug.
func (l *Loader) All() []*models.DocumentDefinition {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*models.DocumentDefinition, 0, len(l.defs))
	for _, def := range l.defs {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// GetByType returns every cached definition of the given type, ordered by slug.
func (l *Loader) GetByType(docType string) []*models.DocumentDefinition {
	all := l.All()
	out := make([]*models.DocumentDefinition, 0, len(all))
	for _, def := range all {
		if def.Type == docType {
			out = append(out, def)
		}
	}
	return out
}

// ValidateContent dry-run checks raw definition text without touching the
// cache. Used by editing tools before saving a file. Returns a
// *ValidationError describing every problem, or nil when the content is
// valid.
func (l *Loader) ValidateContent(raw []byte) error {
	def, problems := parseDefinition(raw)
	if len(problems) == 0 {
		return nil
	}
	slug := ""
	if def != nil {
		slug = def.Slug
	}
	return &ValidationError{Slug: slug, Problems: problems}
}
