// file: internal/search/suggest.go
// version: 1.0.0
// guid: b1ce36f9-7a26-4ea0-9481-d65aa731333e

package search

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jdfalk/catalog-search/internal/matcher"
	"github.com/jdfalk/catalog-search/internal/models"
)

// MaxSuggestions caps the autocomplete list.
const MaxSuggestions = 5

// MinSuggestionQueryLen is the shortest trimmed query that gets suggestions.
const MinSuggestionQueryLen = 2

// Suggest returns up to MaxSuggestions distinct field values containing
// rawQuery, in the order they are first met. Values are returned as stored,
// not normalized. Collection stops at the cap, so early records win.
func Suggest[R models.Record](records []R, schema Schema[R], rawQuery string) []string {
	out := []string{}
	if utf8.RuneCountInString(strings.TrimSpace(rawQuery)) < MinSuggestionQueryLen {
		return out
	}

	q := matcher.NewQuery(rawQuery)
	seen := make(map[string]struct{}, MaxSuggestions)
	for _, r := range records {
		for _, candidate := range schema.Suggestions(r) {
			if _, dup := seen[candidate]; dup {
				continue
			}
			if !matcher.ContainsNormalized(candidate, q) {
				continue
			}
			seen[candidate] = struct{}{}
			out = append(out, candidate)
			if len(out) == MaxSuggestions {
				return out
			}
		}
	}
	return out
}

// SuggestCatalog dispatches on kind and suggests from the matching collection of cat.
func SuggestCatalog(cat *models.Catalog, kind models.EntityKind, rawQuery string) ([]string, error) {
	if cat == nil {
		cat = &models.Catalog{}
	}
	switch kind {
	case models.KindParts:
		return Suggest(cat.Parts, PartSchema, rawQuery), nil
	case models.KindColors:
		return Suggest(cat.Colors, ColorSchema, rawQuery), nil
	case models.KindFuses:
		return Suggest(cat.Fuses, FuseSchema, rawQuery), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
