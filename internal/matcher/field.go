// file: internal/matcher/field.go
// version: 1.0.0
// guid: 2ffbb4bb-c4e2-427c-8add-75d907ac8df4

package matcher

import "strings"

// Query is a raw search string together with its normalized form and words.
type Query struct {
	Raw        string
	Normalized string
	Words      []string
}

// NewQuery normalizes raw once so it can be matched against many fields.
func NewQuery(raw string) Query {
	n := Normalize(raw)
	return Query{
		Raw:        raw,
		Normalized: n,
		Words:      strings.Fields(n),
	}
}

// Empty reports whether the query has nothing to match on.
func (q Query) Empty() bool {
	return q.Normalized == ""
}

// FieldMatches reports whether any of values matches q. A field with no
// values, or only empty ones, never matches.
func FieldMatches(values []string, q Query, threshold float64) bool {
	for _, v := range values {
		if ValueMatches(v, q, threshold) {
			return true
		}
	}
	return false
}

// ValueMatches applies the single-value rule: full query substring, fuzzy
// similarity, or any one query word as a substring.
func ValueMatches(value string, q Query, threshold float64) bool {
	if value == "" {
		return false
	}
	field := Normalize(value)
	if field == "" {
		return false
	}
	if FuzzyMatch(field, q.Normalized, threshold) {
		return true
	}
	for _, w := range q.Words {
		if strings.Contains(field, w) {
			return true
		}
	}
	return false
}

// ContainsNormalized reports whether the normalized value contains the
// normalized query. It is the substring-only check used for codes and
// autocomplete.
func ContainsNormalized(value string, q Query) bool {
	if value == "" {
		return false
	}
	field := Normalize(value)
	return field != "" && strings.Contains(field, q.Normalized)
}
