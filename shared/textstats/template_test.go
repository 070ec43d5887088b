package textstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTemplate(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Por que ninguém fala a verdade", "por que"},
		{"Porque eu desisti de tudo", "por que"},
		{"Como fazer pão caseiro", "como"},
		{"A verdade sobre o segredo dos ricos", "a verdade"},
		{"Ninguém te contou esse erro", "ninguem"},
		{"CUIDADO com esse golpe", "cuidado/pare"},
		{"O que aparece no fundo do mar", "cuidado/pare"},
		{"Meu maior erro financeiro", "erro"},
		{"O segredo do sono profundo", "segredo"},
		{"O que acontece depois da morte", "o que"},
		{"Veja o que acontece", "o que"},
		{"Receita de bolo de cenoura", OtherTemplate},
		{"", OtherTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTemplate(tt.title))
		})
	}
}

func TestClassifyTemplateIsTotal(t *testing.T) {
	known := map[string]bool{}
	for _, n := range TemplateNames() {
		known[n] = true
	}
	assert.Len(t, known, 9)

	for _, title := range []string{"🙂", "1234", "como", "porquê?", "tudo sobre IA", "erro 404"} {
		assert.True(t, known[ClassifyTemplate(title)], "title %q", title)
	}
}
