// Package textstats holds the title statistics used to build trend snapshots:
// normalization, tokenization, n-gram counting and title template classification.
package textstats

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combining diacritical marks block, removed after NFD decomposition
func isCombiningMark(r rune) bool {
	return r >= 0x0300 && r <= 0x036f
}

func isWordByte(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Normalize lowercases s, strips diacritics, turns every character that is not
// an ASCII word character or whitespace into a space, collapses whitespace runs
// and trims. It never fails; an empty input yields "".
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.Predicate(isCombiningMark)))
	decomposed, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		decomposed = strings.ToLower(s)
	}

	cleaned := strings.Map(func(r rune) rune {
		if isWordByte(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, decomposed)

	return strings.Join(strings.Fields(cleaned), " ")
}
