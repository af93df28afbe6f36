// file: internal/catalog/validate.go
// version: 1.0.0
// guid: 5c1d9e47-2a83-4b6f-9d05-e8f3a7b1c4d2

package catalog

import (
	"fmt"
	"strings"

	"github.com/jdfalk/catalog-search/internal/models"
)

// Issue is a data problem found by Validate. Issues never stop a load.
type Issue struct {
	Kind    models.EntityKind `json:"kind"`
	Index   int               `json:"index"`
	ID      string            `json:"id,omitempty"`
	Message string            `json:"message"`
}

func (i Issue) String() string {
	if i.ID != "" {
		return fmt.Sprintf("%s[%d] (%s): %s", i.Kind, i.Index, i.ID, i.Message)
	}
	return fmt.Sprintf("%s[%d]: %s", i.Kind, i.Index, i.Message)
}

// Validate reports records that are unsearchable or ambiguous: missing
// primary text, duplicate ids, and negative amperages.
func Validate(cat *models.Catalog) []Issue {
	if cat == nil {
		return nil
	}
	var issues []Issue
	add := func(kind models.EntityKind, idx int, id, format string, args ...any) {
		issues = append(issues, Issue{Kind: kind, Index: idx, ID: id, Message: fmt.Sprintf(format, args...)})
	}

	seen := map[string]int{}
	dup := func(kind models.EntityKind, idx int, id string) {
		if id == "" {
			return
		}
		key := string(kind) + "/" + id
		if first, ok := seen[key]; ok {
			add(kind, idx, id, "duplicate id, first used at index %d", first)
			return
		}
		seen[key] = idx
	}

	for i, p := range cat.Parts {
		dup(models.KindParts, i, p.ID)
		if strings.TrimSpace(p.Name) == "" {
			add(models.KindParts, i, p.ID, "empty name")
		}
	}
	for i, c := range cat.Colors {
		dup(models.KindColors, i, c.ID)
		if strings.TrimSpace(c.Code) == "" {
			add(models.KindColors, i, c.ID, "empty code")
		}
	}
	for i, f := range cat.Fuses {
		dup(models.KindFuses, i, f.ID)
		if strings.TrimSpace(f.Position) == "" {
			add(models.KindFuses, i, f.ID, "empty position")
		}
		if f.Amperage < 0 {
			add(models.KindFuses, i, f.ID, "negative amperage %d", f.Amperage)
		}
	}
	return issues
}
