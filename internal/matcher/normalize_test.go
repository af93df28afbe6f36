// file: internal/matcher/normalize_test.go
// version: 1.0.0
// guid: 788ca817-3252-44f6-b1a9-b327aa43fcaa

package matcher

import (
	"testing"

	"pgregory.net/rapid"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Suspensão", "suspensao"},
		{"Hello, World!", "hello world"},
		{"  spaces  ", "spaces"},
		{"it's a test", "it s a test"},
		{"", ""},
		{" \t\n ", ""},
		{"AMORTECEDOR   Dianteiro", "amortecedor dianteiro"},
		{"Gol/Parati (G3)", "gol parati g3"},
		{"xyzzy-nomatch", "xyzzy nomatch"},
		{"Ignição", "ignicao"},
		{"STRASSE", "strasse"},
		{"F-12", "f 12"},
		{"10A", "10a"},
	}
	for _, tt := range tests {
		got := Normalize(tt.input)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", s, once, twice)
		}
	})
}

func TestNormalize_ConcurrentCalls(t *testing.T) {
	done := make(chan string, 16)
	for i := 0; i < cap(done); i++ {
		go func() { done <- Normalize("Pastilha de Freio Dianteira – Cerâmica") }()
	}
	for i := 0; i < cap(done); i++ {
		if got := <-done; got != "pastilha de freio dianteira ceramica" {
			t.Errorf("concurrent Normalize = %q", got)
		}
	}
}
