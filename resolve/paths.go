// ABOUTME: Path expression grammar for field sources
// ABOUTME: Parses dotted segments with optional bracketed integer indices
package resolve

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// segmentPattern matches one path segment: an identifier optionally followed
// by a single bracketed non-negative integer index, e.g. "sellers[1]".
var segmentPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)(?:\[(\d+)\])?$`)

// dotIndexPattern detects the rejected dot-notation array form, e.g. "sellers.0.email".
var dotIndexPattern = regexp.MustCompile(`(^|\.)\d+(\.|$)`)

type segment struct {
	name  string
	index int // -1 when no bracket index
}

// parsePath splits a path expression into segments, keeping bracket groups
// atomic. Returns an error for anything outside the grammar.
func parsePath(path string) ([]segment, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty path")
	}
	if dotIndexPattern.MatchString(path) {
		return nil, fmt.Errorf("path %q uses dot-notation array index; use brackets, e.g. sellers[0].email", path)
	}

	parts := strings.Split(path, ".")
	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		m := segmentPattern.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("invalid path segment %q in %q", part, path)
		}
		seg := segment{name: m[1], index: -1}
		if m[2] != "" {
			n, err := strconv.Atoi(m[2])
			if err != nil {
				return nil, fmt.Errorf("invalid index in segment %q", part)
			}
			seg.index = n
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// CheckPath validates a path expression without resolving it. Used by the
// definition loader to reject bad sources at load time.
func CheckPath(path string) error {
	_, err := parsePath(path)
	return err
}
