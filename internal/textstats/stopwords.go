// Package textstats computes sentence-length and word-frequency statistics.
package textstats

// Stopwords is an immutable set of tokens excluded from word statistics.
type Stopwords struct {
	set map[string]struct{}
}

// NewStopwords builds a set from words. The input slice is not retained.
func NewStopwords(words ...string) Stopwords {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return Stopwords{set: set}
}

// Contains reports whether word is a stopword.
func (s Stopwords) Contains(word string) bool {
	_, ok := s.set[word]
	return ok
}

// Len returns the number of stopwords.
func (s Stopwords) Len() int {
	return len(s.set)
}

// SpanishStopwords returns the articles, conjunctions, prepositions and
// possessives ignored when counting Spanish vocabulary.
func SpanishStopwords() Stopwords {
	return NewStopwords(
		"el", "la", "los", "las", "un", "una", "unos", "unas", "y", "o",
		"pero", "porque", "que", "de", "a", "en", "con", "por", "para", "del",
		"al", "lo", "le", "se", "su", "sus", "mi", "mis", "tu", "tus",
	)
}
