package ranking

import (
	"testing"

	"github.com/hyperjump/huella/internal/corpus"
	"github.com/hyperjump/huella/internal/patterns"
)

const sampleInput = `Ayer bine a la escuela y no havia nadie. La profesora no yego a tiempo.
Me parese que todos estavan enfermos o quizas ubo algun problema.`

func TestWeightsSum(t *testing.T) {
	sum := WeightSentenceLength + WeightWordLength + WeightUniqueWords +
		WeightCommonWords + WeightSpellingPatterns
	if sum != WeightsTotal {
		t.Fatalf("weights sum to %d, want %d", sum, WeightsTotal)
	}
	ones := &Detail{SentenceLength: 1, WordLength: 1, UniqueWords: 1, CommonWords: 1, SpellingPatterns: 1}
	if got := Fuse(ones); got != 1.0 {
		t.Errorf("Fuse(all ones) = %v, want exactly 1", got)
	}
	if got := Fuse(&Detail{}); got != 0 {
		t.Errorf("Fuse(all zeros) = %v, want 0", got)
	}
}

func TestSafeSimilarity(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, 0, 1},
		{5, 0, 0},
		{0, 5, 0},
		{4, 4, 1},
		{3, 6, 0.5},
		{6, 3, 0.5},
	}
	for _, tt := range tests {
		if got := SafeSimilarity(tt.a, tt.b); got != tt.want {
			t.Errorf("SafeSimilarity(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestComparePatterns(t *testing.T) {
	empty := patterns.NewProfile()
	if got := ComparePatterns(empty, empty); got != 1 {
		t.Errorf("empty vs empty = %v, want 1", got)
	}

	d := patterns.NewDetector()
	// Both have b_v and tildes findings only.
	a := d.Detect("biene")
	b := d.Detect("viene")
	if got := ComparePatterns(a, b); got != 1 {
		t.Errorf("biene vs viene = %v, want 1", got)
	}

	got := ComparePatterns(d.Detect("¿qué"), d.Detect("que"))
	want := 6.0 / 7.0
	if got != want {
		t.Errorf("punctuation mismatch = %v, want %v", got, want)
	}
}

func TestScore_deterministic(t *testing.T) {
	s := NewScorer(nil, nil)
	text := corpus.Sample().At(1).Text
	s1, d1 := s.Score(sampleInput, text)
	s2, d2 := s.Score(sampleInput, text)
	if s1 != s2 {
		t.Errorf("scores differ: %v vs %v", s1, s2)
	}
	if *d1.subs() != *d2.subs() {
		t.Errorf("details differ: %+v vs %+v", d1, d2)
	}
}

func TestScore_symmetric(t *testing.T) {
	s := NewScorer(nil, nil)
	entries := corpus.Sample().Entries()
	for _, a := range entries {
		for _, b := range entries {
			ab, _ := s.Score(a.Text, b.Text)
			ba, _ := s.Score(b.Text, a.Text)
			if ab != ba {
				t.Errorf("score(%s,%s)=%v but score(%s,%s)=%v", a.Author, b.Author, ab, b.Author, a.Author, ba)
			}
		}
	}
}

func TestScore_selfSimilarity(t *testing.T) {
	s := NewScorer(nil, nil)
	for _, e := range corpus.Sample().Entries() {
		score, d := s.Score(e.Text, e.Text)
		if score != 1.0 {
			t.Errorf("self score for %s = %v, want 1 (detail %+v)", e.Author, score, *d.subs())
		}
	}
}

func TestScore_shortTextSelfSimilarity(t *testing.T) {
	// Fewer than ten distinct words cannot fill the common-words set, so
	// that sub-score stays below 1 even for identical texts.
	s := NewScorer(nil, nil)
	score, d := s.Score("perro gato casa", "perro gato casa")
	if d.CommonWords != 0.3 {
		t.Errorf("common words = %v, want 0.3", d.CommonWords)
	}
	if score >= 1 {
		t.Errorf("score = %v, want < 1", score)
	}
}

func TestScore_emptyInputs(t *testing.T) {
	s := NewScorer(nil, nil)
	score, d := s.Score("", "")
	if score != 0.85 {
		// Everything agrees except the common-words overlap of two empty sets.
		t.Errorf("empty vs empty = %v, want 0.85", score)
	}
	if !d.InputPatterns.Complete() || !d.EntryPatterns.Complete() {
		t.Error("profiles must list every category")
	}

	score, _ = s.Score(sampleInput, "")
	if score < 0 || score > 0.3 {
		t.Errorf("text vs empty = %v, want within [0, 0.3]", score)
	}
}

func TestScore_bounds(t *testing.T) {
	s := NewScorer(nil, nil)
	entries := corpus.Sample().Entries()
	for _, e := range entries {
		score, d := s.Score(sampleInput, e.Text)
		if score < 0 || score > 1 {
			t.Errorf("score %v out of range", score)
		}
		for _, sub := range d.SubScores() {
			if sub.Value < 0 || sub.Value > 1 {
				t.Errorf("%s = %v out of range", sub.Key, sub.Value)
			}
		}
	}
}

// subs is a comparable copy of the numeric part of a Detail.
func (d *Detail) subs() *[5]float64 {
	return &[5]float64{d.SentenceLength, d.WordLength, d.UniqueWords, d.CommonWords, d.SpellingPatterns}
}
