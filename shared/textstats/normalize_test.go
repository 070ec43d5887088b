package textstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"diacritics and punctuation", "Por que NINGUÉM fala a Verdade?!", "por que ninguem fala a verdade"},
		{"cedilla and tilde", "Ação & Reação", "acao reacao"},
		{"whitespace runs", "  multiple   spaces\t\nhere ", "multiple spaces here"},
		{"keeps underscore and digits", "snake_case 123", "snake_case 123"},
		{"drops emoji", "emoji 🚀 rocket", "emoji rocket"},
		{"currency", "R$ 1.000,00", "r 1 000 00"},
		{"only punctuation", "?!...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"História Emocionante!!", "Você NÃO vai acreditar", "caso real #3"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
