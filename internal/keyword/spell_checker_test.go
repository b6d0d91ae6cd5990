package keyword

import (
	"errors"
	"testing"
)

type mockDictionary struct {
	freqs map[string]int
	err   error
}

func (m *mockDictionary) Terms() ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	terms := make([]string, 0, len(m.freqs))
	for t := range m.freqs {
		terms = append(terms, t)
	}
	return terms, nil
}

func (m *mockDictionary) TermFrequency(term string) (int, error) {
	return m.freqs[term], nil
}

func newMockChecker(opts ...SpellCheckerOption) *SpellChecker {
	return NewSpellChecker(&mockDictionary{freqs: map[string]int{
		"había":   3,
		"havia":   1,
		"escuela": 2,
		"tiempo":  4,
	}}, opts...)
}

func TestSpellChecker_Suggest(t *testing.T) {
	sc := newMockChecker()

	got := sc.Suggest("habia")
	if len(got) < 2 {
		t.Fatalf("expected at least 2 suggestions, got %v", got)
	}
	if got[0].Term != "había" {
		t.Errorf("best suggestion = %q, want %q", got[0].Term, "había")
	}
	if got[0].Distance != 1 {
		t.Errorf("distance = %d, want 1", got[0].Distance)
	}

	if got := sc.Suggest("tiempo"); len(got) != 0 {
		t.Errorf("exact term should not suggest itself, got %v", got)
	}
}

func TestSpellChecker_Options(t *testing.T) {
	sc := newMockChecker(WithMinFrequency(2))
	for _, s := range sc.Suggest("habia") {
		if s.Term == "havia" {
			t.Error("term below minimum frequency was suggested")
		}
	}

	sc = newMockChecker(WithMaxSuggestions(1))
	if got := sc.Suggest("habia"); len(got) != 1 {
		t.Errorf("expected 1 suggestion, got %d", len(got))
	}

	sc = newMockChecker(WithMaxDistance(1))
	if got := sc.Suggest("escuelaxx"); len(got) != 0 {
		t.Errorf("expected no suggestions beyond distance 1, got %v", got)
	}
}

func TestSpellChecker_Check(t *testing.T) {
	sc := newMockChecker()

	res, err := sc.Check("Escuelz tiempo")
	if err != nil {
		t.Fatal(err)
	}
	if !res.HasCorrections {
		t.Fatal("expected corrections")
	}
	if res.CorrectedQuery != "escuela tiempo" {
		t.Errorf("CorrectedQuery = %q", res.CorrectedQuery)
	}
	if len(res.MisspelledTerms) != 1 || res.MisspelledTerms[0] != "escuelz" {
		t.Errorf("MisspelledTerms = %v", res.MisspelledTerms)
	}

	res, _ = sc.Check("¿tiempo?")
	if res.HasCorrections || res.CorrectedQuery != "tiempo" {
		t.Errorf("unexpected result %+v", res)
	}
	if !sc.Known("TIEMPO") {
		t.Error("Known should ignore case")
	}
}

func TestSpellChecker_DictionaryError(t *testing.T) {
	sc := NewSpellChecker(&mockDictionary{err: errors.New("boom")})
	if _, err := sc.Check("x"); err == nil {
		t.Error("expected error")
	}
	if got := sc.Suggest("x"); got != nil {
		t.Errorf("expected nil suggestions, got %v", got)
	}
}

func TestLevenshteinDistance_spellChecker(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "ab", 2},
		{"havia", "había", 2},
		{"había", "habia", 1},
		{"escuela", "escuelz", 1},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		if got := LevenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := LevenshteinDistance(tt.b, tt.a); got != tt.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.b, tt.a, got, tt.want)
		}
	}
}
