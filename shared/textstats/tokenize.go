package textstats

import "strings"

// MinTokenLength is the shortest token kept by Tokenize.
const MinTokenLength = 3

// stopWords are Portuguese function words, already in normalized form.
var stopWords = map[string]struct{}{
	"a": {}, "o": {}, "as": {}, "os": {}, "um": {}, "uma": {},
	"de": {}, "do": {}, "da": {}, "dos": {}, "das": {},
	"em": {}, "no": {}, "na": {}, "nos": {}, "nas": {},
	"que": {}, "se": {}, "e": {}, "ou": {}, "mas": {},
	"por": {}, "pra": {}, "para": {}, "com": {}, "sem": {}, "sobre": {}, "como": {}, "quando": {},
	"isso": {}, "aquilo": {}, "algo": {}, "coisa": {},
	"hoje": {}, "ontem": {}, "amanha": {}, "agora": {}, "sempre": {}, "nunca": {},
	"voce": {}, "eu": {}, "ele": {}, "ela": {}, "eles": {}, "elas": {},
	"meu": {}, "minha": {}, "seu": {}, "sua": {}, "teu": {}, "tua": {},
}

// IsStopWord reports whether w is in the stop-word set.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// Tokenize normalizes a title and returns its words in order, dropping words
// shorter than MinTokenLength and stop words. Duplicates are kept.
func Tokenize(title string) []string {
	words := strings.Split(Normalize(title), " ")
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < MinTokenLength || IsStopWord(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}
