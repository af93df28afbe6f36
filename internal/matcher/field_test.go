// file: internal/matcher/field_test.go
// version: 1.0.0
// guid: 45951782-75e9-4d3c-b38d-de33266dcda2

package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewQuery(t *testing.T) {
	q := NewQuery("  Golf   FREIO! ")
	assert.Equal(t, "  Golf   FREIO! ", q.Raw)
	assert.Equal(t, "golf freio", q.Normalized)
	assert.Equal(t, []string{"golf", "freio"}, q.Words)
	assert.False(t, q.Empty())

	assert.True(t, NewQuery("   ").Empty())
	assert.Empty(t, NewQuery("").Words)
}

func TestFieldMatches(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		query  string
		want   bool
	}{
		{"absent field", nil, "freio", false},
		{"only empty values", []string{"", ""}, "freio", false},
		{"punctuation only value", []string{"---"}, "freio", false},
		{"full substring", []string{"Pastilha de Freio"}, "freio", true},
		{"accent insensitive", []string{"Suspensão Dianteira"}, "suspensao", true},
		{"fuzzy typo", []string{"Amortecedor"}, "amortecedr", true},
		{"single word of several", []string{"Disco de Freio"}, "golf freio", true},
		{"any array element", []string{"Gol", "Golf", "Polo"}, "golf", true},
		{"no overlap", []string{"Vela de Ignição"}, "xyzzy-nomatch", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FieldMatches(tt.values, NewQuery(tt.query), DefaultThreshold)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContainsNormalized(t *testing.T) {
	q := NewQuery("lb9")
	assert.True(t, ContainsNormalized("LB9Z", q))
	assert.False(t, ContainsNormalized("LC9Z", q))
	assert.False(t, ContainsNormalized("", q))
}
