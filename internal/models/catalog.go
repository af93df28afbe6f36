// file: internal/models/catalog.go
// version: 1.1.0
// guid: fb0402a2-1917-46ae-936e-79aabe65c15e

package models

import (
	"fmt"
	"strings"
	"time"
)

// EntityKind identifies one of the catalog collections.
type EntityKind string

const (
	KindParts  EntityKind = "parts"
	KindColors EntityKind = "colors"
	KindFuses  EntityKind = "fuses"
)

// AllKinds lists every entity kind in a stable order.
var AllKinds = []EntityKind{KindParts, KindColors, KindFuses}

// ParseEntityKind maps a user supplied name ("parts", "Colors", "fuse") to an EntityKind.
func ParseEntityKind(s string) (EntityKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "parts", "part", "pecas":
		return KindParts, nil
	case "colors", "color", "cores":
		return KindColors, nil
	case "fuses", "fuse", "fusiveis":
		return KindFuses, nil
	}
	return "", fmt.Errorf("unknown entity kind %q", s)
}

// Record is implemented by every searchable catalog entity. The set is closed.
type Record interface {
	Kind() EntityKind
	sealed()
}

// Compatibility describes one vehicle a part fits.
type Compatibility struct {
	Make         string `json:"make" yaml:"make"`
	Vehicle      string `json:"vehicle" yaml:"vehicle"`
	Model        string `json:"model" yaml:"model"`
	Years        string `json:"years,omitempty" yaml:"years,omitempty"`
	Observations string `json:"observations,omitempty" yaml:"observations,omitempty"`
}

// Label is the "make model" string shown in autocomplete.
func (c Compatibility) Label() string {
	return strings.TrimSpace(c.Make + " " + c.Model)
}

// Part is a replacement part with its vehicle compatibility list.
type Part struct {
	ID            string          `json:"id" yaml:"id"`
	Name          string          `json:"name" yaml:"name"`
	Category      string          `json:"category,omitempty" yaml:"category,omitempty"`
	Models        []string        `json:"models,omitempty" yaml:"models,omitempty"`
	Compatibility []Compatibility `json:"compatibility,omitempty" yaml:"compatibility,omitempty"`
}

func (Part) Kind() EntityKind { return KindParts }
func (Part) sealed()          {}

// ColorCode is a factory paint code.
type ColorCode struct {
	ID           string `json:"id" yaml:"id"`
	Code         string `json:"code" yaml:"code"`
	Name         string `json:"name" yaml:"name"`
	Year         string `json:"year,omitempty" yaml:"year,omitempty"`
	Type         string `json:"type,omitempty" yaml:"type,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
}

func (ColorCode) Kind() EntityKind { return KindColors }
func (ColorCode) sealed()          {}

// Fuse is one slot of a vehicle fuse box map.
type Fuse struct {
	ID       string `json:"id" yaml:"id"`
	Position string `json:"position" yaml:"position"`
	Function string `json:"function" yaml:"function"`
	// Amperage is in amps. Zero means unknown; such fuses have no searchable amperage.
	Amperage int    `json:"amperage,omitempty" yaml:"amperage,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
}

func (Fuse) Kind() EntityKind { return KindFuses }
func (Fuse) sealed()          {}

// Catalog is one immutable snapshot of all three collections.
type Catalog struct {
	Parts    []Part      `json:"parts"`
	Colors   []ColorCode `json:"colors"`
	Fuses    []Fuse      `json:"fuses"`
	LoadedAt time.Time   `json:"loaded_at"`
	Source   string      `json:"source,omitempty"`
}

// Count returns the number of records of the given kind.
func (c *Catalog) Count(kind EntityKind) int {
	if c == nil {
		return 0
	}
	switch kind {
	case KindParts:
		return len(c.Parts)
	case KindColors:
		return len(c.Colors)
	case KindFuses:
		return len(c.Fuses)
	}
	return 0
}

// CatalogStats is returned by the stats endpoint
type CatalogStats struct {
	Parts    int       `json:"parts"`
	Colors   int       `json:"colors"`
	Fuses    int       `json:"fuses"`
	LoadedAt time.Time `json:"loaded_at"`
	Source   string    `json:"source,omitempty"`
}

// Stats summarizes the catalog.
func (c *Catalog) Stats() CatalogStats {
	if c == nil {
		return CatalogStats{}
	}
	return CatalogStats{
		Parts:    len(c.Parts),
		Colors:   len(c.Colors),
		Fuses:    len(c.Fuses),
		LoadedAt: c.LoadedAt,
		Source:   c.Source,
	}
}
