package ai

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"ctr-optimizer/internal/models"
)

const (
	maxThemes          = 8
	maxAnchorQuestions = 4
	maxImpactLines     = 4
	maxExcerptChars    = 1400
	maxPromptSamples   = 20

	excerptCutMarker = "\n[...cortado...]"
	noSnapshotText   = "(sem snapshot disponível — ainda assim gere a melhor resposta possível)"
)

// promptSnapshot is the part of the snapshot that is sent to the model.
type promptSnapshot struct {
	GeneratedAt time.Time         `json:"generatedAt"`
	ValidUntil  time.Time         `json:"validUntil"`
	Filters     models.Filters    `json:"filters"`
	Aggregates  models.Aggregates `json:"aggregates"`
	Samples     []models.Sample   `json:"samples"`
}

// BuildPrompt renders the generation prompt. snap may be nil.
func BuildPrompt(form models.FormData, extracted models.Extracted, snap *models.Snapshot) string {
	var b strings.Builder

	b.WriteString("Você é um especialista brasileiro em YouTube CTR (títulos e thumbnails) e precisa gerar respostas COERENTES e ESPECÍFICAS.\n\n")

	b.WriteString("## CONTEXTO DO USUÁRIO\n")
	fmt.Fprintf(&b, "- Formato: %s\n", form.Format)
	fmt.Fprintf(&b, "- Nicho: %s\n", form.Niche)
	fmt.Fprintf(&b, "- Subnicho: %s\n", form.Subniche)
	fmt.Fprintf(&b, "- Intenção: %s\n", form.Intention)
	fmt.Fprintf(&b, "- Emoção desejada: %s\n", form.Emotion)
	fmt.Fprintf(&b, "- Perfil de risco: %s\n\n", form.Risk)

	b.WriteString("## CONTEÚDO (resumo extraído do texto)\n")
	fmt.Fprintf(&b, "- Tema principal: %s\n", orDefault(extracted.PrimaryTheme, "(indefinido)"))
	fmt.Fprintf(&b, "- Temas alternativos: %s\n", joinOrDefault(head(extracted.AllThemes, maxThemes), "(nenhum)"))
	fmt.Fprintf(&b, "- Perguntas âncora: %s\n", joinOrDefault(head(extracted.AnchorQuestions, maxAnchorQuestions), "(nenhuma)"))
	fmt.Fprintf(&b, "- Linhas de impacto: %s\n\n", joinOrDefault(head(extracted.ImpactLines, maxImpactLines), "(nenhuma)"))

	b.WriteString("Trecho do texto (para manter fidelidade sem gastar tokens demais):\n")
	fmt.Fprintf(&b, "\"\"\"%s\"\"\"\n\n", ClampText(extracted.RawExcerpt, maxExcerptChars))

	b.WriteString("## SNAPSHOT YOUTUBE (o que está funcionando agora)\n")
	b.WriteString(snapshotSection(snap))
	b.WriteString("\n\n")

	b.WriteString(taskSection)

	return strings.TrimSpace(b.String())
}

const taskSection = `## TAREFA
Gere:
1) title: 1 título otimizado (PT-BR), ESPECÍFICO, fiel ao conteúdo.
   - Se formato=Short: <= 55 caracteres
   - Se formato=Vídeo longo: <= 70 caracteres
   - Proibido: placeholders genéricos (ex.: "o que ninguém te contou" se não tiver gancho real no texto)
2) thumb_text: 1–3 palavras, CAIXA ALTA, NÃO genérico (evite: VIBE, ASSISTA, VEJA, AGORA)
3) thumb_prompt: um prompt completo e copiável (PT-BR) para gerar thumbnail em IA de imagens, incluindo:
   - Composição 16:9, close/medium shot conforme emoção
   - Cenário e símbolo coerente com o texto
   - Iluminação/contraste (rim light, fundo escuro se necessário)
   - Tipografia recomendada (usar o thumb_text)
   - Paleta sugerida e elementos a evitar
4) keywords: 5–8 palavras-chave (PT-BR) coerentes
5) pattern_used: em 1 linha, cite qual padrão do snapshot você adaptou (ex.: “Por que…”, “A verdade…”, etc.)

## FORMATO DE SAÍDA
Responda APENAS com JSON válido, sem texto fora do JSON:
{
  "title": "...",
  "thumb_text": "...",
  "thumb_prompt": "...",
  "keywords": ["..."],
  "pattern_used": "..."
}
`

func snapshotSection(snap *models.Snapshot) string {
	if snap == nil {
		return noSnapshotText
	}

	view := promptSnapshot{
		GeneratedAt: snap.GeneratedAt,
		ValidUntil:  snap.ValidUntil,
		Filters:     snap.Filters,
		Aggregates:  snap.Aggregates,
		Samples:     head(snap.Samples, maxPromptSamples),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(view); err != nil {
		return noSnapshotText
	}
	return strings.TrimSpace(buf.String())
}

// ClampText cuts s to maxChars characters and marks the cut.
func ClampText(s string, maxChars int) string {
	r := []rune(s)
	if len(r) <= maxChars {
		return s
	}
	return string(r[:maxChars]) + excerptCutMarker
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func joinOrDefault(items []string, def string) string {
	return orDefault(strings.Join(items, " | "), def)
}
