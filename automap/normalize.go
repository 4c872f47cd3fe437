// ABOUTME: Field name normalization and similarity scoring helpers
// ABOUTME: Shared by every matching pass of the auto-mapper
package automap

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

var (
	strippablePrefixes = []string{"field_", "form_", "input_", "txt_"}
	strippableSuffixes = []string{"_field", "_input", "_txt"}
)

// Normalize canonicalizes a field name for comparison: lowercase,
// non-alphanumeric runs collapsed to a single underscore, common
// form-builder prefixes and suffixes stripped.
func Normalize(name string) string {
	s := strings.ToLower(name)
	s = nonAlnum.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	for _, p := range strippablePrefixes {
		s = strings.TrimPrefix(s, p)
	}
	for _, suf := range strippableSuffixes {
		s = strings.TrimSuffix(s, suf)
	}
	return s
}

// words splits a normalized name into its word parts.
func words(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, "_")
}

// sameSynonymGroup reports whether two words share a synonym group.
func sameSynonymGroup(a, b string) bool {
	ga, ok := synonymIndex[a]
	if !ok {
		return false
	}
	gb, ok := synonymIndex[b]
	return ok && ga == gb
}

// similarity is a sequence-similarity ratio in [0,1]: twice the longest
// common subsequence over the combined length.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return 2 * float64(lcsLength(a, b)) / float64(len(a)+len(b))
}

func lcsLength(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// typesCompatible reports whether a source field type can fill a target
// field type. Unknown types are treated as incompatible (no bonus).
func typesCompatible(sourceType, targetType string) bool {
	if sourceType == "" || targetType == "" {
		return false
	}
	for _, t := range typeCompat[strings.ToLower(sourceType)] {
		if t == strings.ToLower(targetType) {
			return true
		}
	}
	return false
}
