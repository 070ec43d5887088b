package textstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  []string
	}{
		{"drops stop words and short words", "Como ganhar dinheiro com renda extra em 2024", []string{"ganhar", "dinheiro", "renda", "extra", "2024"}},
		{"keeps duplicates in order", "Deus Deus é fiel", []string{"deus", "deus", "fiel"}},
		{"normalized stop word", "Você precisa ver isso", []string{"precisa", "ver"}},
		{"empty", "", []string{}},
		{"only stop words", "a de que para", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.title))
		})
	}
}

func TestTokenizeNeverReturnsShortOrStopTokens(t *testing.T) {
	titles := []string{
		"A VERDADE sobre o término que ninguém te contou",
		"Oração da manhã: mensagem bíblica para hoje",
		"Lofi pra estudar e relaxar (sem anúncios)",
		"Por que você nunca tem dinheiro? 5 erros",
	}
	for _, title := range titles {
		for _, tok := range Tokenize(title) {
			assert.GreaterOrEqual(t, len(tok), MinTokenLength, "title %q token %q", title, tok)
			assert.False(t, IsStopWord(tok), "title %q token %q", title, tok)
		}
	}
}
