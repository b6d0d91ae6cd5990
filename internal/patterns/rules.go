package patterns

import "regexp"

// Word characters follow Unicode: letters, numbers and underscore.
// Go's \b is ASCII-only, so word-initial rules capture the preceding
// non-word rune (or the start of the token) and put it back.
const (
	wordChar    = `[\p{L}\p{N}_]`
	nonWordChar = `[^\p{L}\p{N}_]`
	wordStart   = `(^|` + nonWordChar + `)`
)

// Rule is one pattern/replacement pair. Every non-overlapping match of
// Pattern in a token is rewritten with Replacement (regexp expansion syntax).
type Rule struct {
	Pattern     string
	Replacement string
	re          *regexp.Regexp
}

func newRule(pattern, replacement string) Rule {
	return Rule{
		Pattern:     pattern,
		Replacement: replacement,
		re:          regexp.MustCompile(pattern),
	}
}

func literalRule(old, replacement string) Rule {
	return newRule(regexp.QuoteMeta(old), replacement)
}

// Matches reports whether the rule can fire on token.
func (r Rule) Matches(token string) bool {
	return r.re.MatchString(token)
}

// Apply rewrites every match of the rule in token.
func (r Rule) Apply(token string) string {
	return r.re.ReplaceAllString(token, r.Replacement)
}

// ruleTable is indexed by Category and compiled once.
var ruleTable = [numCategories][]Rule{
	CategoryBV: {
		newRule(wordStart+`b(`+wordChar+`*)`, `${1}v${2}`), // biene -> viene
		newRule(wordStart+`v(`+wordChar+`*)`, `${1}b${2}`), // vien -> bien
	},
	CategoryHSilent: {
		newRule(wordStart+`h(`+wordChar+`+)`, `${1}${2}`),        // haber -> aber
		newRule(wordStart+`([aeiou]`+wordChar+`+)`, `${1}h${2}`), // asta -> hasta
	},
	CategoryLLY: {
		newRule(`ll`, `y`),
		newRule(`y`, `ll`),
	},
	CategorySCZ: {
		newRule(`c([ei])`, `s${1}`),  // cecina -> sesina
		newRule(`z([aou])`, `s${1}`), // zapato -> sapato
		newRule(`s([ei])`, `c${1}`),  // sena -> cena
	},
	CategoryGJ: {
		newRule(`g([ei])`, `j${1}`), // gente -> jente
		newRule(`j([ei])`, `g${1}`), // jeneral -> general
	},
	CategoryTildes: {
		literalRule("á", "a"), literalRule("é", "e"), literalRule("í", "i"),
		literalRule("ó", "o"), literalRule("ú", "u"),
		literalRule("a", "á"), literalRule("e", "é"), literalRule("i", "í"),
		literalRule("o", "ó"), literalRule("u", "ú"),
	},
	CategoryPunctuation: {
		literalRule("¿", ""), literalRule("¡", ""),
		literalRule(",", ""), literalRule(";", ""),
	},
}

// Rules returns a copy of the rules registered for c, in application order.
func Rules(c Category) []Rule {
	if !c.Valid() {
		return nil
	}
	return append([]Rule(nil), ruleTable[c]...)
}
