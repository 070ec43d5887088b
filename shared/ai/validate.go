package ai

import (
	"strconv"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"ctr-optimizer/internal/models"
)

const (
	minTitleLength       = 10
	minThumbTextLength   = 2
	minThumbPromptLength = 20
)

// bannedThumbWords are captions too generic to be used as thumbnail text.
var bannedThumbWords = map[string]struct{}{
	"VIBE": {}, "ASSISTA": {}, "VEJA": {}, "CLIQUE": {}, "AGORA": {}, "TOP": {}, "MELHOR": {},
}

// rawResult is a model answer as decoded from JSON. Either snake_case or
// camelCase field names are accepted; the snake_case value wins when both are set.
type rawResult struct {
	Title       string
	ThumbText   string
	ThumbPrompt string
	Keywords    []string
	PatternUsed string
}

func (r *rawResult) UnmarshalJSON(data []byte) error {
	var aux struct {
		Title            any `json:"title"`
		ThumbTextSnake   any `json:"thumb_text"`
		ThumbTextCamel   any `json:"thumbText"`
		ThumbPromptSnake any `json:"thumb_prompt"`
		ThumbPromptCamel any `json:"thumbPrompt"`
		Keywords         any `json:"keywords"`
		PatternSnake     any `json:"pattern_used"`
		PatternCamel     any `json:"patternUsed"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Title = stringify(aux.Title)
	r.ThumbText = firstNonEmpty(stringify(aux.ThumbTextSnake), stringify(aux.ThumbTextCamel))
	r.ThumbPrompt = firstNonEmpty(stringify(aux.ThumbPromptSnake), stringify(aux.ThumbPromptCamel))
	r.PatternUsed = firstNonEmpty(stringify(aux.PatternSnake), stringify(aux.PatternCamel))

	r.Keywords = []string{}
	if list, ok := aux.Keywords.([]any); ok {
		for _, k := range list {
			if s := strings.TrimSpace(keywordText(k)); s != "" {
				r.Keywords = append(r.Keywords, s)
			}
		}
	}
	return nil
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if !x {
			return ""
		}
		return "true"
	case float64:
		if x == 0 {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}

// keywordText renders a keyword item of any JSON type. Unlike stringify it keeps
// falsy scalars, so 0, false and null become "0", "false" and "null".
func keywordText(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ValidateResult applies the quality gate to a decoded answer. It returns false
// unless every required field is long enough and the thumbnail text is not generic.
func ValidateResult(r *rawResult) (*models.GeneratedResult, bool) {
	if r == nil {
		return nil, false
	}

	title := strings.TrimSpace(r.Title)
	thumbText := strings.TrimSpace(r.ThumbText)
	thumbPrompt := strings.TrimSpace(r.ThumbPrompt)

	if utf8.RuneCountInString(title) < minTitleLength {
		return nil, false
	}
	if utf8.RuneCountInString(thumbText) < minThumbTextLength {
		return nil, false
	}
	if utf8.RuneCountInString(thumbPrompt) < minThumbPromptLength {
		return nil, false
	}
	if _, banned := bannedThumbWords[strings.ToUpper(thumbText)]; banned {
		return nil, false
	}

	keywords := r.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	return &models.GeneratedResult{
		Title:       title,
		ThumbText:   thumbText,
		ThumbPrompt: thumbPrompt,
		Keywords:    keywords,
		PatternUsed: strings.TrimSpace(r.PatternUsed),
	}, true
}

// ParseResult extracts, decodes and validates a model response in one step.
func ParseResult(text string) (*models.GeneratedResult, bool) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, false
	}
	var r rawResult
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, false
	}
	return ValidateResult(&r)
}
