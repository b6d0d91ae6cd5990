// Package keyword provides a vocabulary lookup index over the reference corpus.
package keyword

// SearchOptions are optional parameters for a corpus search. Nil means defaults.
type SearchOptions struct {
	// Fuzzy matches terms within Fuzziness edits, for misspelled queries.
	Fuzzy bool
	// Fuzziness is the maximum edit distance (1 or 2). Default 1.
	Fuzziness int
}

// Hit is a single corpus search result.
type Hit struct {
	ID     int
	Author string
	Score  float64
}

// TermDictionary provides the vocabulary used for spelling suggestions.
type TermDictionary interface {
	// Terms returns every distinct term.
	Terms() ([]string, error)
	// TermFrequency returns the number of entries containing term.
	TermFrequency(term string) (int, error)
}
