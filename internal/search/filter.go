// file: internal/search/filter.go
// version: 1.0.0
// guid: 6ed3ca45-e0bc-47f3-b098-f2830514a809

package search

import (
	"slices"
	"sort"
	"strings"

	"github.com/jdfalk/catalog-search/internal/models"
)

// Filters maps a filter key to the exact value a record must carry.
// Keys the entity does not know are ignored; an empty value means no constraint.
type Filters map[string]string

// Clone returns a copy so callers can keep mutating their map.
func (f Filters) Clone() Filters {
	if f == nil {
		return nil
	}
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// With returns a copy of f with key set to value.
func (f Filters) With(key, value string) Filters {
	out := f.Clone()
	if out == nil {
		out = Filters{}
	}
	out[key] = value
	return out
}

// String renders the filters in sorted key order, e.g. "category=freios,model=GL".
func (f Filters) String() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+f[k])
	}
	return strings.Join(parts, ",")
}

type constraint[R models.Record] struct {
	values func(R) []string
	want   string
}

// ApplyFilters keeps the records that satisfy every applicable filter,
// preserving input order. With no applicable filters the input is returned as is.
func ApplyFilters[R models.Record](records []R, schema Schema[R], filters Filters) []R {
	if len(filters) == 0 {
		return records
	}
	var active []constraint[R]
	for key, want := range filters {
		if want == "" {
			continue
		}
		values, ok := schema.Filters[key]
		if !ok {
			continue
		}
		active = append(active, constraint[R]{values: values, want: want})
	}
	if len(active) == 0 {
		return records
	}

	out := make([]R, 0, len(records))
	for _, r := range records {
		if satisfies(r, active) {
			out = append(out, r)
		}
	}
	return out
}

func satisfies[R models.Record](r R, active []constraint[R]) bool {
	for _, c := range active {
		if !slices.Contains(c.values(r), c.want) {
			return false
		}
	}
	return true
}
