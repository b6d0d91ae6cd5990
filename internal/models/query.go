package models

import (
	"errors"
	"strings"

	"github.com/hyperjump/huella/internal/ranking"
)

// ErrEmptyText is returned when a request carries no text to analyze.
var ErrEmptyText = errors.New("text cannot be empty")

// ErrEmptyQuery is returned for a corpus search without terms.
var ErrEmptyQuery = errors.New("query cannot be empty")

// AnalyzeRequest asks for the corpus entries stylistically closest to Text.
type AnalyzeRequest struct {
	Text string `json:"text"`
	// MinSimilarity is a percentage in [0, 100]. Nil selects the configured default.
	MinSimilarity *float64 `json:"min_similarity,omitempty"`
	// Limit caps the number of matches returned; 0 returns all of them.
	Limit int `json:"limit,omitempty"`
}

// Validate rejects blank text and clamps the threshold to [0, 100].
func (r *AnalyzeRequest) Validate(defaultMin float64) error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}
	threshold := defaultMin
	if r.MinSimilarity != nil {
		threshold = *r.MinSimilarity
	}
	threshold = ranking.ClampThreshold(threshold)
	r.MinSimilarity = &threshold
	if r.Limit < 0 {
		r.Limit = 0
	}
	return nil
}

// Threshold returns the validated threshold.
func (r *AnalyzeRequest) Threshold() float64 {
	if r.MinSimilarity == nil {
		return 0
	}
	return *r.MinSimilarity
}

// CompareRequest compares two texts directly.
type CompareRequest struct {
	TextA string `json:"text_a"`
	TextB string `json:"text_b"`
}

// Validate rejects blank texts.
func (r *CompareRequest) Validate() error {
	if strings.TrimSpace(r.TextA) == "" || strings.TrimSpace(r.TextB) == "" {
		return ErrEmptyText
	}
	return nil
}

// ProfileRequest asks for the statistics and spelling profile of Text.
type ProfileRequest struct {
	Text string `json:"text"`
}

// Validate rejects blank text.
func (r *ProfileRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}
	return nil
}

// CorpusSearchQuery looks up corpus entries by vocabulary.
type CorpusSearchQuery struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
	Fuzzy bool   `json:"fuzzy,omitempty"`
}

// Validate ensures the query is not empty and normalizes the limit.
func (q *CorpusSearchQuery) Validate() error {
	if strings.TrimSpace(q.Query) == "" {
		return ErrEmptyQuery
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	return nil
}
