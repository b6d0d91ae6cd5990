// Package ranking scores texts against each other by orthographic habits
// and surface statistics, and ranks a corpus by similarity to an input.
package ranking

import (
	"github.com/hyperjump/huella/internal/patterns"
)

// Sub-score keys, as they appear in reports and JSON output.
const (
	KeySentenceLength   = "sentence_length_similarity"
	KeyWordLength       = "word_length_similarity"
	KeyUniqueWords      = "unique_words_similarity"
	KeyCommonWords      = "common_words_similarity"
	KeySpellingPatterns = "spelling_patterns_similarity"
)

// Detail is the breakdown of one pairwise comparison. Every sub-score is
// in [0, 1].
type Detail struct {
	SentenceLength   float64 `json:"sentence_length_similarity"`
	WordLength       float64 `json:"word_length_similarity"`
	UniqueWords      float64 `json:"unique_words_similarity"`
	CommonWords      float64 `json:"common_words_similarity"`
	SpellingPatterns float64 `json:"spelling_patterns_similarity"`

	// InputPatterns and EntryPatterns are the profiles of the first and
	// second text.
	InputPatterns patterns.Profile `json:"input_patterns"`
	EntryPatterns patterns.Profile `json:"entry_patterns"`
}

// SubScore is a named sub-score.
type SubScore struct {
	Key   string
	Value float64
}

// SubScores returns the sub-scores in report order.
func (d *Detail) SubScores() []SubScore {
	return []SubScore{
		{KeySentenceLength, d.SentenceLength},
		{KeyWordLength, d.WordLength},
		{KeyUniqueWords, d.UniqueWords},
		{KeyCommonWords, d.CommonWords},
		{KeySpellingPatterns, d.SpellingPatterns},
	}
}

// Match is a corpus entry that passed the similarity threshold.
type Match struct {
	EntryID    int     `json:"id"`
	Author     string  `json:"author"`
	Score      float64 `json:"score"`
	Percentage float64 `json:"similarity"`
	Detail     *Detail `json:"details"`
}
