package textstats

import (
	"strings"
	"unicode"
)

// SentenceTerminator splits sentences. It survives preprocessing.
const SentenceTerminator = '.'

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// Preprocess lowercases text, strips decimal digits and removes every rune
// that is not a word character, whitespace or the sentence terminator.
// Applying it twice gives the same result as applying it once.
func Preprocess(text string) string {
	text = strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsDigit(r) {
			continue
		}
		if isWordRune(r) || unicode.IsSpace(r) || r == SentenceTerminator {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Sentences splits text on the terminator and drops blank segments.
// Segments are returned trimmed.
func Sentences(text string) []string {
	parts := strings.Split(text, string(SentenceTerminator))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
