// file: internal/matcher/fuzzy.go
// version: 2.0.0
// guid: a1b2c3d4-e5f6-7890-abcd-ef1234567890

package matcher

import (
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultThreshold is the minimum similarity FuzzyMatch accepts when the
// query is not a literal substring of the text.
//
// TODO: validate 0.6 against real catalog queries before tuning it.
const DefaultThreshold = 0.6

// Distance computes the Levenshtein edit distance between two strings,
// counted in runes. Callers normalize first; Distance does not fold case.
func Distance(a, b string) int {
	if a == b {
		return 0
	}
	return fuzzy.LevenshteinDistance(a, b)
}

// Similarity returns 1 - distance/maxLen in the range [0, 1].
// Two empty strings are identical.
func Similarity(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1.0
	}
	return float64(maxLen-Distance(a, b)) / float64(maxLen)
}

// FuzzyMatch reports whether text contains query, or failing that whether
// the two are at least threshold similar.
func FuzzyMatch(text, query string, threshold float64) bool {
	if strings.Contains(text, query) {
		return true
	}
	return Similarity(text, query) >= threshold
}
