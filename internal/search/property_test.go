// file: internal/search/property_test.go
// version: 1.0.0
// guid: e59974fd-3e31-4cfa-ab29-465e05dbd65b

package search

import (
	"slices"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/jdfalk/catalog-search/internal/models"
)

var (
	vocab      = []string{"Amortecedor", "Freio", "Pastilha", "Filtro", "Óleo", "Suspensão", "Golf", "Gol", "Uno", "Vela"}
	categories = []string{"", "freios", "motor", "suspensao"}
	modelNames = []string{"GL", "GLX", "GTI", "Mille"}
)

func genPart() *rapid.Generator[models.Part] {
	return rapid.Custom(func(t *rapid.T) models.Part {
		words := rapid.SliceOfN(rapid.SampledFrom(vocab), 0, 3).Draw(t, "words")
		compat := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) models.Compatibility {
			return models.Compatibility{
				Make:    rapid.SampledFrom([]string{"VW", "Fiat", ""}).Draw(t, "make"),
				Vehicle: rapid.SampledFrom(vocab).Draw(t, "vehicle"),
				Model:   rapid.SampledFrom(modelNames).Draw(t, "model"),
			}
		}), 0, 2).Draw(t, "compat")
		return models.Part{
			Name:          strings.Join(words, " "),
			Category:      rapid.SampledFrom(categories).Draw(t, "category"),
			Models:        rapid.SliceOfN(rapid.SampledFrom(modelNames), 0, 2).Draw(t, "models"),
			Compatibility: compat,
		}
	})
}

func genFilters(t *rapid.T, label string) Filters {
	f := Filters{}
	if rapid.Bool().Draw(t, label+"-hasCategory") {
		f["category"] = rapid.SampledFrom(categories).Draw(t, label+"-category")
	}
	if rapid.Bool().Draw(t, label+"-hasModel") {
		f["model"] = rapid.SampledFrom(modelNames).Draw(t, label+"-model")
	}
	return f
}

func TestProperty_MoreFiltersNeverGrowResults(t *testing.T) {
	e := New()
	rapid.Check(t, func(t *rapid.T) {
		parts := rapid.SliceOfN(genPart(), 0, 12).Draw(t, "parts")
		query := rapid.SampledFrom(append([]string{"", "freio gol", "amortecedr"}, vocab...)).Draw(t, "query")
		f1 := genFilters(t, "f1")
		f2 := f1.Clone()
		if _, ok := f2["model"]; !ok {
			f2["model"] = rapid.SampledFrom(modelNames).Draw(t, "extraModel")
		} else if _, ok := f2["category"]; !ok {
			f2["category"] = rapid.SampledFrom(categories).Draw(t, "extraCategory")
		}

		r1 := e.SearchParts(parts, query, f1)
		r2 := e.SearchParts(parts, query, f2)
		if r2.Total > r1.Total {
			t.Fatalf("filters %v returned %d items, superset %v returned %d", f1, r1.Total, f2, r2.Total)
		}
	})
}

func TestProperty_ResultIsSubsequenceOfInput(t *testing.T) {
	e := New()
	rapid.Check(t, func(t *rapid.T) {
		parts := rapid.SliceOfN(genPart(), 0, 12).Draw(t, "parts")
		for i := range parts {
			parts[i].ID = string(rune('a' + i))
		}
		query := rapid.SampledFrom(vocab).Draw(t, "query")
		res := e.SearchParts(parts, query, genFilters(t, "f"))

		if res.Total != len(res.Items) {
			t.Fatalf("total %d != len(items) %d", res.Total, len(res.Items))
		}
		next := 0
		for _, item := range res.Items {
			idx := slices.IndexFunc(parts[next:], func(p models.Part) bool { return p.ID == item.ID })
			if idx < 0 {
				t.Fatalf("item %q is out of order or not from the input", item.ID)
			}
			next += idx + 1
		}
	})
}

func TestProperty_EmptyQueryEqualsFilterOnly(t *testing.T) {
	e := New()
	rapid.Check(t, func(t *rapid.T) {
		parts := rapid.SliceOfN(genPart(), 1, 12).Draw(t, "parts")
		f := genFilters(t, "f")
		res := e.SearchParts(parts, "", f)
		want := ApplyFilters(parts, PartSchema, f)
		if !slices.EqualFunc(res.Items, want, func(a, b models.Part) bool { return a.Name == b.Name && a.Category == b.Category }) {
			t.Fatalf("empty query returned %d items, filters alone %d", len(res.Items), len(want))
		}
	})
}

func TestProperty_SuggestionsBoundedAndDistinct(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		parts := rapid.SliceOfN(genPart(), 0, 20).Draw(t, "parts")
		query := rapid.String().Draw(t, "query")
		got := Suggest(parts, PartSchema, query)

		if len(got) > MaxSuggestions {
			t.Fatalf("got %d suggestions", len(got))
		}
		seen := map[string]bool{}
		for _, s := range got {
			if seen[s] {
				t.Fatalf("duplicate suggestion %q", s)
			}
			seen[s] = true
		}
		if len([]rune(strings.TrimSpace(query))) < MinSuggestionQueryLen && len(got) != 0 {
			t.Fatalf("short query %q produced %v", query, got)
		}
	})
}
