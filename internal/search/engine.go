// file: internal/search/engine.go
// version: 1.0.0
// guid: e9111760-4b2d-4f50-86a3-f5778566b2a8

package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jdfalk/catalog-search/internal/matcher"
	"github.com/jdfalk/catalog-search/internal/models"
)

// ErrUnknownKind is returned when a caller asks for an entity kind the
// catalog does not have.
var ErrUnknownKind = errors.New("unknown entity kind")

// Result is the envelope returned by a search.
type Result[R models.Record] struct {
	Items   []R     `json:"items"`
	Total   int     `json:"total"`
	Query   string  `json:"query"`
	Filters Filters `json:"filters"`
}

// Envelope is a Result with the item type erased, for transports that
// pick the entity kind at runtime.
type Envelope struct {
	Kind    models.EntityKind `json:"kind"`
	Items   any               `json:"items"`
	Total   int               `json:"total"`
	Query   string            `json:"query"`
	Filters Filters           `json:"filters"`
}

func (r Result[R]) envelope(kind models.EntityKind) Envelope {
	return Envelope{Kind: kind, Items: r.Items, Total: r.Total, Query: r.Query, Filters: r.Filters}
}

// Engine holds the tunables of a search. The zero value is not useful;
// use New. Engine is a value with no mutable state and is safe to share.
type Engine struct {
	threshold float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithThreshold overrides matcher.DefaultThreshold. Values outside [0, 1]
// are ignored.
func WithThreshold(t float64) Option {
	return func(e *Engine) {
		if t >= 0 && t <= 1 {
			e.threshold = t
		}
	}
}

// New returns an Engine using the default similarity threshold unless overridden.
func New(opts ...Option) Engine {
	e := Engine{threshold: matcher.DefaultThreshold}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Threshold returns the similarity threshold in use.
func (e Engine) Threshold() float64 {
	return e.threshold
}

// Search filters records, then keeps the ones whose searchable fields match
// rawQuery. A blank query skips text matching entirely.
func Search[R models.Record](e Engine, schema Schema[R], records []R, rawQuery string, filters Filters) Result[R] {
	filtered := ApplyFilters(records, schema, filters)

	var items []R
	if strings.TrimSpace(rawQuery) == "" {
		items = filtered
	} else {
		q := matcher.NewQuery(rawQuery)
		items = make([]R, 0, len(filtered))
		for _, r := range filtered {
			if e.recordMatches(schema.Fields(r), q) {
				items = append(items, r)
			}
		}
	}
	if items == nil {
		items = []R{}
	}

	return Result[R]{
		Items:   items,
		Total:   len(items),
		Query:   rawQuery,
		Filters: filters,
	}
}

func (e Engine) recordMatches(fields []Field, q matcher.Query) bool {
	for _, f := range fields {
		if f.Code {
			for _, v := range f.Values {
				if matcher.ContainsNormalized(v, q) {
					return true
				}
			}
		}
		if matcher.FieldMatches(f.Values, q, e.threshold) {
			return true
		}
	}
	return false
}

// SearchParts runs Search over parts.
func (e Engine) SearchParts(parts []models.Part, rawQuery string, filters Filters) Result[models.Part] {
	return Search(e, PartSchema, parts, rawQuery, filters)
}

// SearchColors runs Search over paint codes.
func (e Engine) SearchColors(colors []models.ColorCode, rawQuery string, filters Filters) Result[models.ColorCode] {
	return Search(e, ColorSchema, colors, rawQuery, filters)
}

// SearchFuses runs Search over fuses.
func (e Engine) SearchFuses(fuses []models.Fuse, rawQuery string, filters Filters) Result[models.Fuse] {
	return Search(e, FuseSchema, fuses, rawQuery, filters)
}

// SearchCatalog dispatches on kind and searches the matching collection of cat.
func (e Engine) SearchCatalog(cat *models.Catalog, kind models.EntityKind, rawQuery string, filters Filters) (Envelope, error) {
	if cat == nil {
		cat = &models.Catalog{}
	}
	switch kind {
	case models.KindParts:
		return e.SearchParts(cat.Parts, rawQuery, filters).envelope(kind), nil
	case models.KindColors:
		return e.SearchColors(cat.Colors, rawQuery, filters).envelope(kind), nil
	case models.KindFuses:
		return e.SearchFuses(cat.Fuses, rawQuery, filters).envelope(kind), nil
	}
	return Envelope{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
