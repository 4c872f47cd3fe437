// ABOUTME: Heuristic field mapper proposing source-to-target field mappings
// ABOUTME: Three ordered passes: exact alias, pattern rewrite, weighted semantic scoring
package automap

import (
	"strings"

	"github.com/openhousecrm/docpipe/models"
)

// Scoring weights and thresholds. Tuned empirically against real forms;
// treat as configuration, not fixed contract.
const (
	exactConfidence   = 98 // alias-table hit
	patternConfidence = 95 // numbered/boolean pattern hit
	semanticCap       = 94 // display cap so exact/pattern stay visually distinct
	exactNameScore    = 95 // identical normalized names inside the semantic pass
	minConfidence     = 35 // semantic floor; below this, no suggestion

	wordMatchScore     = 25 // per shared word
	synonymMatchScore  = 20 // per synonym-group hit
	synonymScoreMax    = 50
	coverageBonusMax   = 20 // scaled by fraction of source words matched
	overlapScoreMax    = 30 // scaled by word-set Jaccard
	similarityScoreMax = 15 // scaled by sequence similarity
	typeCompatBonus    = 5
)

// Map proposes a mapping from arbitrary source form fields to template
// fields. Each target is consumed by at most one source; earlier passes win
// and passes never re-rank each other. Output order follows source
// declaration order and is deterministic for a fixed input.
func Map(source []models.SourceField, target []models.TargetField) []models.MappingSuggestion {
	m := &mapping{
		source:      source,
		target:      target,
		normSource:  make([]string, len(source)),
		normTarget:  make([]string, len(target)),
		usedTarget:  make([]bool, len(target)),
		suggestions: make([]*models.MappingSuggestion, len(source)),
	}
	for i, sf := range source {
		m.normSource[i] = Normalize(sf.Name)
	}
	for i, tf := range target {
		m.normTarget[i] = Normalize(tf.Name)
	}

	m.exactPass()
	m.patternPass()
	m.semanticPass()

	out := make([]models.MappingSuggestion, 0, len(source))
	for _, s := range m.suggestions {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

type mapping struct {
	source      []models.SourceField
	target      []models.TargetField
	normSource  []string
	normTarget  []string
	usedTarget  []bool
	suggestions []*models.MappingSuggestion
}

func (m *mapping) accept(si, ti, confidence int, strategy string) {
	sf, tf := m.source[si], m.target[ti]
	m.usedTarget[ti] = true
	m.suggestions[si] = &models.MappingSuggestion{
		SourceField:        sf.Name,
		SourceType:         sf.Type,
		TargetField:        tf.Name,
		TargetRole:         tf.Role,
		TargetType:         tf.Type,
		Confidence:         confidence,
		SuggestedTransform: InferTransform(sf.Name, tf.Type),
		MatchStrategy:      strategy,
	}
}

// exactPass matches normalized source names through the curated alias table.
func (m *mapping) exactPass() {
	for si := range m.source {
		if m.suggestions[si] != nil {
			continue
		}
		aliases, ok := fieldAliases[m.normSource[si]]
		if !ok {
			continue
		}
		for ti := range m.target {
			if m.usedTarget[ti] {
				continue
			}
			if anyAliasMatches(aliases, m.target[ti].Name) {
				m.accept(si, ti, exactConfidence, models.MatchExact)
				break
			}
		}
	}
}

func anyAliasMatches(aliases []string, targetName string) bool {
	for _, alias := range aliases {
		if strings.EqualFold(alias, targetName) {
			return true
		}
	}
	return false
}

// patternPass handles numbered/sequential fields and known boolean
// financing options via regex rewrite rules.
func (m *mapping) patternPass() {
	for si := range m.source {
		if m.suggestions[si] != nil {
			continue
		}
		norm := m.normSource[si]

		expected := ""
		if t, ok := booleanTargets[norm]; ok {
			expected = t
		} else {
			for _, rule := range patternRules {
				if g := rule.re.FindStringSubmatch(norm); g != nil {
					expected = strings.ReplaceAll(rule.target, "{n}", g[1])
					break
				}
			}
		}
		if expected == "" {
			continue
		}

		for ti := range m.target {
			if m.usedTarget[ti] {
				continue
			}
			if containsFold(m.target[ti].Name, expected) {
				m.accept(si, ti, patternConfidence, models.MatchPattern)
				break
			}
		}
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// semanticPass scores every remaining source/target pair and keeps the
// best target per source when it clears the confidence floor. Ties break
// on earliest target declaration order.
func (m *mapping) semanticPass() {
	for si := range m.source {
		if m.suggestions[si] != nil {
			continue
		}

		best, bestScore := -1, 0
		for ti := range m.target {
			if m.usedTarget[ti] {
				continue
			}
			score := semanticScore(m.normSource[si], m.normTarget[ti], m.source[si].Type, m.target[ti].Type)
			if score > bestScore {
				best, bestScore = ti, score
			}
		}

		if best >= 0 && bestScore >= minConfidence {
			if bestScore > semanticCap {
				bestScore = semanticCap
			}
			m.accept(si, best, bestScore, models.MatchSemantic)
		}
	}
}

// semanticScore combines synonym overlap, raw word overlap, string
// similarity, and a type-compatibility bonus.
func semanticScore(sourceNorm, targetNorm, sourceType, targetType string) int {
	if sourceNorm == "" || targetNorm == "" {
		return 0
	}
	if sourceNorm == targetNorm {
		return exactNameScore
	}

	sw := words(sourceNorm)
	tw := words(targetNorm)

	synScore := 0
	matched := 0
	for _, w := range sw {
		if containsWord(tw, w) {
			synScore += wordMatchScore
			matched++
			continue
		}
		for _, t := range tw {
			if sameSynonymGroup(w, t) {
				synScore += synonymMatchScore
				matched++
				break
			}
		}
	}
	if synScore > synonymScoreMax {
		synScore = synonymScoreMax
	}
	coverage := int(coverageBonusMax * float64(matched) / float64(len(sw)))

	overlap := int(overlapScoreMax * jaccard(sw, tw))
	sim := int(similarityScoreMax * similarity(sourceNorm, targetNorm))

	score := synScore + coverage + overlap + sim
	if typesCompatible(sourceType, targetType) {
		score += typeCompatBonus
	}
	return score
}

func containsWord(ws []string, w string) bool {
	for _, x := range ws {
		if x == w {
			return true
		}
	}
	return false
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]bool, len(a))
	for _, w := range a {
		setA[w] = true
	}
	setB := make(map[string]bool, len(b))
	for _, w := range b {
		setB[w] = true
	}

	inter := 0
	union := len(setA)
	for w := range setB {
		if setA[w] {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}

// InferTransform suggests a formatting transform from keyword hits on the
// source field name, falling back to the target field's declared type.
func InferTransform(sourceName, targetType string) string {
	norm := Normalize(sourceName)
	for _, kw := range transformKeywords {
		if kw.re.MatchString(norm) {
			return kw.transform
		}
	}
	return typeTransforms[strings.ToLower(targetType)]
}
