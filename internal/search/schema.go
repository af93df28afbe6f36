// file: internal/search/schema.go
// version: 1.0.0
// guid: 126b55dc-68e1-4d66-9e8d-4ac9b3c44038

package search

import (
	"strconv"

	"github.com/jdfalk/catalog-search/internal/models"
)

// Field is one searchable attribute of a record. A scalar field has one
// value; list fields such as compatibility entries have several.
type Field struct {
	Name   string
	Values []string
	// Code fields are checked with a plain substring test before the fuzzy path.
	Code bool
}

// Schema binds an entity type to the fields that take part in filtering,
// text search and autocomplete.
type Schema[R models.Record] struct {
	Kind models.EntityKind
	// Filters maps a filter key to the values it is compared against.
	// A record passes a filter when any returned value equals the expected one.
	Filters map[string]func(R) []string
	// Fields lists the searchable fields of a record.
	Fields func(R) []Field
	// Suggestions lists the display strings offered for autocomplete.
	Suggestions func(R) []string
}

func one(s string) []string { return []string{s} }

// PartSchema searches part names and compatibility entries.
var PartSchema = Schema[models.Part]{
	Kind: models.KindParts,
	Filters: map[string]func(models.Part) []string{
		"category": func(p models.Part) []string { return one(p.Category) },
		"model":    func(p models.Part) []string { return p.Models },
	},
	Fields: func(p models.Part) []Field {
		vehicles := make([]string, 0, len(p.Compatibility))
		modelNames := make([]string, 0, len(p.Compatibility))
		notes := make([]string, 0, len(p.Compatibility))
		for _, c := range p.Compatibility {
			vehicles = append(vehicles, c.Vehicle)
			modelNames = append(modelNames, c.Model)
			notes = append(notes, c.Observations)
		}
		return []Field{
			{Name: "name", Values: one(p.Name)},
			{Name: "vehicle", Values: vehicles},
			{Name: "model", Values: modelNames},
			{Name: "observations", Values: notes},
		}
	},
	Suggestions: func(p models.Part) []string {
		out := make([]string, 0, 1+len(p.Compatibility))
		out = append(out, p.Name)
		for _, c := range p.Compatibility {
			out = append(out, c.Label())
		}
		return out
	},
}

// ColorSchema searches paint codes and color names.
var ColorSchema = Schema[models.ColorCode]{
	Kind: models.KindColors,
	Filters: map[string]func(models.ColorCode) []string{
		"ano":  func(c models.ColorCode) []string { return one(c.Year) },
		"year": func(c models.ColorCode) []string { return one(c.Year) },
		"tipo": func(c models.ColorCode) []string { return one(c.Type) },
		"type": func(c models.ColorCode) []string { return one(c.Type) },
	},
	Fields: func(c models.ColorCode) []Field {
		return []Field{
			{Name: "code", Values: one(c.Code), Code: true},
			{Name: "name", Values: one(c.Name)},
		}
	},
	Suggestions: func(c models.ColorCode) []string {
		return []string{c.Code, c.Name}
	},
}

// FuseSchema searches fuse positions, functions and amperage.
var FuseSchema = Schema[models.Fuse]{
	Kind: models.KindFuses,
	Filters: map[string]func(models.Fuse) []string{
		"localizacao": func(f models.Fuse) []string { return one(f.Location) },
		"location":    func(f models.Fuse) []string { return one(f.Location) },
		"tipo":        func(f models.Fuse) []string { return one(f.Type) },
		"type":        func(f models.Fuse) []string { return one(f.Type) },
	},
	Fields: func(f models.Fuse) []Field {
		var amps []string
		if f.Amperage > 0 {
			amps = one(strconv.Itoa(f.Amperage))
		}
		return []Field{
			{Name: "position", Values: one(f.Position), Code: true},
			{Name: "function", Values: one(f.Function)},
			{Name: "amperage", Values: amps},
		}
	},
	Suggestions: func(f models.Fuse) []string {
		return []string{f.Position, f.Function}
	},
}
