package api

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"

	"ctr-optimizer/internal/models"
)

// looseBody is a request body decoded field by field. A field of the wrong
// type falls back to its zero value without discarding its siblings, and a
// body that is not a JSON object reads as {}.
type looseBody map[string]any

func readLooseBody(c *gin.Context) looseBody {
	data, err := c.GetRawData()
	if err != nil || len(data) == 0 {
		return looseBody{}
	}
	var body looseBody
	if err := json.Unmarshal(data, &body); err != nil || body == nil {
		return looseBody{}
	}
	return body
}

func (b looseBody) object(key string) looseBody {
	m, ok := b[key].(map[string]any)
	if !ok {
		return looseBody{}
	}
	return looseBody(m)
}

// text returns a scalar as a string. Falsy scalars (false, 0, "") and
// non-scalars read as "".
func (b looseBody) text(key string) string {
	return scalarText(b[key])
}

// texts returns the items of a list field as strings; anything else is empty.
func (b looseBody) texts(key string) []string {
	list, ok := b[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		out = append(out, scalarText(v))
	}
	return out
}

// truthy follows JSON truthiness: null, false, 0 and "" are false, everything else is true.
func (b looseBody) truthy(key string) bool {
	switch x := b[key].(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	default:
		return true
	}
}

// integer reads a number or a numeric string, truncated toward zero. Anything else is 0.
func (b looseBody) integer(key string) int {
	switch x := b[key].(type) {
	case float64:
		return int(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return int(f)
	default:
		return 0
	}
}

func scalarText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		if x == 0 {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if !x {
			return ""
		}
		return "true"
	default:
		return ""
	}
}

func decodeGenerateRequest(b looseBody) models.GenerateRequest {
	form := b.object("formData")
	ext := b.object("extracted")
	return models.GenerateRequest{
		FormData: models.FormData{
			Idea:      form.text("idea"),
			Niche:     form.text("niche"),
			Subniche:  form.text("subniche"),
			Format:    form.text("format"),
			Intention: form.text("intention"),
			Emotion:   form.text("emotion"),
			Risk:      form.text("risk"),
		},
		Extracted: models.Extracted{
			PrimaryTheme:    ext.text("primaryTheme"),
			AllThemes:       ext.texts("allThemes"),
			AnchorQuestions: ext.texts("anchorQuestions"),
			ImpactLines:     ext.texts("impactLines"),
			RawExcerpt:      ext.text("rawExcerpt"),
		},
		AllowOpenAI: b.truthy("allowOpenAI"),
	}
}

func decodeRefreshRequest(b looseBody) refreshRequest {
	return refreshRequest{
		Force:       b.truthy("force"),
		RefreshDays: b.integer("refreshDays"),
		WindowDays:  b.integer("windowDays"),
	}
}
