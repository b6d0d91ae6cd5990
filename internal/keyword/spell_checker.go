package keyword

import (
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Suggestion is a dictionary term close to a queried term.
type Suggestion struct {
	Term      string
	Distance  int
	Frequency int
	Score     float64
}

// SpellCheckResult is the outcome of checking a query against the dictionary.
type SpellCheckResult struct {
	OriginalQuery   string
	CorrectedQuery  string
	HasCorrections  bool
	MisspelledTerms []string
}

// SpellChecker suggests corpus vocabulary for terms the corpus never uses.
type SpellChecker struct {
	dictionary     TermDictionary
	maxDistance    int
	minFreq        int
	maxSuggestions int

	once    sync.Once
	loadErr error
	terms   []string
	termSet map[string]struct{}
}

// SpellCheckerOption is a functional option for configuring SpellChecker.
type SpellCheckerOption func(*SpellChecker)

// WithMaxDistance sets the maximum edit distance for suggestions.
func WithMaxDistance(d int) SpellCheckerOption {
	return func(s *SpellChecker) {
		if d > 0 {
			s.maxDistance = d
		}
	}
}

// WithMinFrequency ignores terms used by fewer than f entries.
func WithMinFrequency(f int) SpellCheckerOption {
	return func(s *SpellChecker) {
		if f >= 0 {
			s.minFreq = f
		}
	}
}

// WithMaxSuggestions caps the suggestions returned per term.
func WithMaxSuggestions(n int) SpellCheckerOption {
	return func(s *SpellChecker) {
		if n > 0 {
			s.maxSuggestions = n
		}
	}
}

// NewSpellChecker creates a SpellChecker over dict. The dictionary is read
// once, on first use; the corpus it describes never changes.
func NewSpellChecker(dict TermDictionary, opts ...SpellCheckerOption) *SpellChecker {
	s := &SpellChecker{
		dictionary:     dict,
		maxDistance:    2,
		minFreq:        1,
		maxSuggestions: 5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SpellChecker) load() error {
	s.once.Do(func() {
		terms, err := s.dictionary.Terms()
		if err != nil {
			s.loadErr = err
			return
		}
		s.terms = terms
		s.termSet = make(map[string]struct{}, len(terms))
		for _, t := range terms {
			s.termSet[t] = struct{}{}
		}
	})
	return s.loadErr
}

// Known reports whether term is in the dictionary.
func (s *SpellChecker) Known(term string) bool {
	if s.load() != nil {
		return false
	}
	_, ok := s.termSet[strings.ToLower(term)]
	return ok
}

// Suggest returns dictionary terms within the maximum edit distance of term,
// best first. Closer and more frequent terms score higher.
func (s *SpellChecker) Suggest(term string) []Suggestion {
	if s.load() != nil {
		return nil
	}
	term = strings.ToLower(term)
	n := utf8.RuneCountInString(term)

	out := make([]Suggestion, 0)
	for _, t := range s.terms {
		if t == term {
			continue
		}
		if diff := utf8.RuneCountInString(t) - n; diff > s.maxDistance || -diff > s.maxDistance {
			continue
		}
		d := LevenshteinDistance(term, t)
		if d > s.maxDistance {
			continue
		}
		freq, err := s.dictionary.TermFrequency(t)
		if err != nil || freq < s.minFreq {
			continue
		}
		out = append(out, Suggestion{
			Term:      t,
			Distance:  d,
			Frequency: freq,
			Score:     float64(freq) / float64(d+1),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Term < out[j].Term
	})
	if len(out) > s.maxSuggestions {
		out = out[:s.maxSuggestions]
	}
	return out
}

// Check replaces every unknown term of query with its best suggestion.
func (s *SpellChecker) Check(query string) (*SpellCheckResult, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	terms := tokenizeQuery(query)
	res := &SpellCheckResult{OriginalQuery: query, MisspelledTerms: make([]string, 0)}

	corrected := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := s.termSet[t]; ok {
			corrected = append(corrected, t)
			continue
		}
		if sug := s.Suggest(t); len(sug) > 0 {
			res.HasCorrections = true
			res.MisspelledTerms = append(res.MisspelledTerms, t)
			corrected = append(corrected, sug[0].Term)
			continue
		}
		corrected = append(corrected, t)
	}
	res.CorrectedQuery = strings.Join(corrected, " ")
	return res, nil
}

// tokenizeQuery splits query into lowercase runs of letters and digits.
func tokenizeQuery(query string) []string {
	return strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
