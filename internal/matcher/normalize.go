// file: internal/matcher/normalize.go
// version: 1.0.0
// guid: 91efbb9a-d2d6-4501-a1db-d6eac0829b31

package matcher

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningMarks is the Combining Diacritical Marks block, U+0300..U+036F.
var combiningMarks = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// Normalize canonicalizes s for comparison: case folded, accents stripped,
// punctuation turned into spaces and whitespace collapsed.
//
//	Normalize("  Suspensão / Dianteira ") == "suspensao dianteira"
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	// Transformers keep internal buffers, so the chain is built per call.
	t := transform.Chain(
		norm.NFD,
		cases.Fold(),
		norm.NFD,
		runes.Remove(runes.In(combiningMarks)),
		runes.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
				return r
			}
			return ' '
		}),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		// Only reachable on invalid UTF-8 sequences the transformers refuse.
		out = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(out), " ")
}
