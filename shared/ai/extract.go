package ai

import (
	"errors"
	"strings"
)

// ErrNoJSON is returned when a model response holds no {...} span.
var ErrNoJSON = errors.New("no JSON object found in response")

// ExtractJSON returns the span from the first '{' to the last '}' in text.
// Models often wrap their JSON in prose or code fences; this strips both.
func ExtractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSON
	}
	return text[start : end+1], nil
}
