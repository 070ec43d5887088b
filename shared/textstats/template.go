package textstats

import "strings"

// OtherTemplate is returned when no title template matches.
const OtherTemplate = "outros"

type titleTemplate struct {
	name  string
	match func(t string) bool
}

// templates are tried in order; the first match wins.
var templates = []titleTemplate{
	{"por que", func(t string) bool { return strings.HasPrefix(t, "por que") || strings.HasPrefix(t, "porque") }},
	{"como", func(t string) bool { return strings.HasPrefix(t, "como ") }},
	{"a verdade", func(t string) bool { return strings.Contains(t, "a verdade") }},
	{"ninguem", func(t string) bool { return strings.Contains(t, "ninguem") }},
	{"cuidado/pare", func(t string) bool { return strings.Contains(t, "cuidado") || strings.Contains(t, "pare") }},
	{"erro", func(t string) bool { return strings.Contains(t, "erro") }},
	{"segredo", func(t string) bool { return strings.Contains(t, "segredo") }},
	{"o que", func(t string) bool { return strings.HasPrefix(t, "o que ") || strings.Contains(t, " o que ") }},
}

// TemplateNames returns every label ClassifyTemplate can produce, in match order, ending with OtherTemplate.
func TemplateNames() []string {
	names := make([]string, 0, len(templates)+1)
	for _, tpl := range templates {
		names = append(names, tpl.name)
	}
	return append(names, OtherTemplate)
}

// ClassifyTemplate returns the name of the first template the normalized title matches.
func ClassifyTemplate(title string) string {
	t := Normalize(title)
	for _, tpl := range templates {
		if tpl.match(t) {
			return tpl.name
		}
	}
	return OtherTemplate
}
