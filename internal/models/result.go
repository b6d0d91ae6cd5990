// Package models defines the request and response types shared by the
// analyzer service, the CLI and the HTTP API.
package models

import (
	"github.com/hyperjump/huella/internal/patterns"
	"github.com/hyperjump/huella/internal/ranking"
	"github.com/hyperjump/huella/internal/textstats"
)

// AnalyzeResponse is the result of ranking the corpus against a text.
type AnalyzeResponse struct {
	ID            string               `json:"id"`
	Matches       []*ranking.Match     `json:"matches"`
	Total         int                  `json:"total"`
	CorpusSize    int                  `json:"corpus_size"`
	MinSimilarity float64              `json:"min_similarity"`
	Report        string               `json:"report"`
	Basic         textstats.BasicStats `json:"basic_stats"`
	ElapsedMS     int64                `json:"elapsed_ms"`
}

// CompareResponse is the result of comparing two texts.
type CompareResponse struct {
	Score      float64         `json:"score"`
	Percentage float64         `json:"similarity"`
	Detail     *ranking.Detail `json:"details"`
}

// ProfileResponse describes one text on its own.
type ProfileResponse struct {
	Basic       textstats.BasicStats `json:"basic_stats"`
	Stats       textstats.Stats      `json:"stats"`
	CommonWords []string             `json:"common_words"`
	Patterns    patterns.Profile     `json:"patterns"`
}

// CorpusEntrySummary is a short listing of a corpus entry.
type CorpusEntrySummary struct {
	ID        int    `json:"id"`
	Author    string `json:"author"`
	WordCount int    `json:"word_count"`
	Preview   string `json:"preview"`
}

// CorpusHit is one corpus search result.
type CorpusHit struct {
	ID     int     `json:"id"`
	Author string  `json:"author"`
	Score  float64 `json:"score"`
}

// CorpusSearchResponse is the response for a corpus search.
type CorpusSearchResponse struct {
	Query     string       `json:"query"`
	Hits      []*CorpusHit `json:"hits"`
	Total     int          `json:"total"`
	QueryTime int64        `json:"query_time_ms"`
	// DidYouMean is the query rewritten with corpus vocabulary when some
	// terms are unknown to the corpus.
	DidYouMean string `json:"did_you_mean,omitempty"`
	// AutoFuzzy is set when the exact search found nothing and the hits come
	// from a fuzzy retry.
	AutoFuzzy bool `json:"auto_fuzzy,omitempty"`
}
