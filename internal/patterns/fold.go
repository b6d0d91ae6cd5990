package patterns

import (
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold transliterates s to ASCII: NFKD decomposition, then every non-ASCII
// rune is dropped. "mañana" becomes "manana" and "¿qué" becomes "que".
func Fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r >= utf8.RuneSelf
	})))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
