// file: internal/search/suggest_test.go
// version: 1.0.0
// guid: 0f92318c-7b2a-4d0e-a613-24b7bdeeca8a

package search

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdfalk/catalog-search/internal/models"
)

func TestSuggest_ShortQueries(t *testing.T) {
	for _, q := range []string{"", "a", " a ", "ã", "\t"} {
		got := Suggest(sampleParts(), PartSchema, q)
		assert.NotNil(t, got)
		assert.Empty(t, got, "query %q", q)
	}
}

func TestSuggest_ReturnsOriginalText(t *testing.T) {
	got := Suggest(sampleParts(), PartSchema, "oleo")
	assert.Equal(t, []string{"Filtro de Óleo"}, got)

	got = Suggest(sampleParts(), PartSchema, "vw")
	assert.Equal(t, []string{"VW GL", "VW GLX"}, got)
}

func TestSuggest_Dedup(t *testing.T) {
	parts := []models.Part{
		{Name: "Pastilha de Freio"},
		{Name: "Pastilha de Freio"},
		{Name: "Disco de Freio"},
	}
	assert.Equal(t, []string{"Pastilha de Freio", "Disco de Freio"}, Suggest(parts, PartSchema, "freio"))
}

func TestSuggest_CapsAtFiveInInputOrder(t *testing.T) {
	parts := make([]models.Part, 0, 12)
	for i := 0; i < 12; i++ {
		parts = append(parts, models.Part{Name: fmt.Sprintf("Filtro %02d", i)})
	}
	got := Suggest(parts, PartSchema, "filtro")
	assert.Equal(t, []string{"Filtro 00", "Filtro 01", "Filtro 02", "Filtro 03", "Filtro 04"}, got)
}

func TestSuggest_SubstringOnlyNoFuzzy(t *testing.T) {
	parts := []models.Part{{Name: "Amortecedor"}}
	assert.Empty(t, Suggest(parts, PartSchema, "amortecedr"))
	assert.Equal(t, []string{"Amortecedor"}, Suggest(parts, PartSchema, "amorte"))
}

func TestSuggest_ColorsAndFuses(t *testing.T) {
	assert.Equal(t, []string{"LB9Z"}, Suggest(sampleColors(), ColorSchema, "lb"))
	assert.Equal(t, []string{"Preto Universal", "Prata Sirius"}, Suggest(sampleColors(), ColorSchema, "pr"))
	assert.Equal(t, []string{"F12"}, Suggest(sampleFuses(), FuseSchema, "f1"))
	assert.Equal(t, []string{"Buzina"}, Suggest(sampleFuses(), FuseSchema, "buz"))
}

func TestSuggestCatalog(t *testing.T) {
	cat := &models.Catalog{Parts: sampleParts(), Colors: sampleColors(), Fuses: sampleFuses()}

	got, err := SuggestCatalog(cat, models.KindFuses, "radi")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ventilador do radiador"}, got)

	got, err = SuggestCatalog(nil, models.KindParts, "freio")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = SuggestCatalog(cat, models.EntityKind("wheels"), "freio")
	assert.True(t, errors.Is(err, ErrUnknownKind))
}
