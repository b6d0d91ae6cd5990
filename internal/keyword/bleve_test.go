package keyword

import (
	"context"
	"slices"
	"testing"

	"github.com/hyperjump/huella/internal/corpus"
)

func newSampleIndex(t *testing.T) *CorpusIndex {
	t.Helper()
	idx, err := NewCorpusIndex(corpus.Sample())
	if err != nil {
		t.Fatalf("NewCorpusIndex: %v", err)
	}
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestCorpusIndex_DocCount(t *testing.T) {
	idx := newSampleIndex(t)
	n, err := idx.DocCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("DocCount() = %d, want 4", n)
	}
}

func TestCorpusIndex_Search(t *testing.T) {
	idx := newSampleIndex(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		query  string
		wantID int
	}{
		{"word in text", "escuela", 1},
		{"case insensitive", "PEDRO", 4},
		{"author name", "AngelC", 4},
		{"inflected form", "escuelas", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := idx.Search(ctx, tt.query, 10, nil)
			if err != nil {
				t.Fatal(err)
			}
			if len(hits) == 0 {
				t.Fatalf("no hits for %q", tt.query)
			}
			if hits[0].ID != tt.wantID {
				t.Errorf("top hit = %d, want %d", hits[0].ID, tt.wantID)
			}
		})
	}
}

func TestCorpusIndex_SearchNoMatch(t *testing.T) {
	idx := newSampleIndex(t)
	hits, err := idx.Search(context.Background(), "astronauta", 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("got %d hits, want none", len(hits))
	}
}

func TestCorpusIndex_SearchFuzzy(t *testing.T) {
	idx := newSampleIndex(t)
	ctx := context.Background()

	hits, err := idx.Search(ctx, "escuelaa", 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("exact search for a typo got %d hits, want none", len(hits))
	}

	hits, err = idx.Search(ctx, "escuelaa", 10, &SearchOptions{Fuzzy: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) == 0 {
		t.Fatal("fuzzy search found nothing")
	}
	if hits[0].ID != 1 || hits[0].Author != "Autor1" {
		t.Errorf("top hit = %d/%q, want 1/Autor1", hits[0].ID, hits[0].Author)
	}
}

func TestCorpusIndex_Suggest(t *testing.T) {
	idx := newSampleIndex(t)

	tests := []struct {
		query       string
		want        string
		wantChanged bool
	}{
		{"escuelz", "escuela", true},
		{"escuela", "escuela", false},
	}
	for _, tt := range tests {
		got, changed := idx.Suggest(tt.query)
		if got != tt.want || changed != tt.wantChanged {
			t.Errorf("Suggest(%q) = %q, %v; want %q, %v", tt.query, got, changed, tt.want, tt.wantChanged)
		}
	}
}

func TestCorpusIndex_Terms(t *testing.T) {
	idx := newSampleIndex(t)
	terms, err := idx.Terms()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"escuela", "havia"} {
		if !slices.Contains(terms, want) {
			t.Errorf("Terms() missing %q", want)
		}
	}

	freq, err := idx.TermFrequency("profesora")
	if err != nil {
		t.Fatal(err)
	}
	if freq != 2 {
		t.Errorf("TermFrequency(profesora) = %d, want 2", freq)
	}
}
