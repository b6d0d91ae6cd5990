package textstats

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// CommonWordsLimit is the number of most frequent tokens kept per text.
const CommonWordsLimit = 10

// SentenceStats summarizes sentence lengths measured in tokens.
type SentenceStats struct {
	Mean   float64 `json:"avg_sentence_length"`
	StdDev float64 `json:"std_sentence_length"`
	Max    int     `json:"max_sentence_length"`
	Min    int     `json:"min_sentence_length"`
}

// WordStats summarizes the non-stopword vocabulary of a text.
type WordStats struct {
	UniqueRatio   float64             `json:"unique_words_ratio"`
	AvgWordLength float64             `json:"avg_word_length"`
	CommonWords   map[string]struct{} `json:"-"`
}

// CommonWordList returns the common words sorted alphabetically, for display.
func (w WordStats) CommonWordList() []string {
	out := make([]string, 0, len(w.CommonWords))
	for word := range w.CommonWords {
		out = append(out, word)
	}
	sort.Strings(out)
	return out
}

// Stats is the full statistical summary of one text.
type Stats struct {
	Sentences SentenceStats `json:"sentences"`
	Words     WordStats     `json:"words"`
}

// BasicStats are raw counts over the unprocessed text.
type BasicStats struct {
	WordCount           int     `json:"word_count"`
	SentenceCount       int     `json:"sentence_count"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence"`
}

// Extractor computes Stats with a fixed stopword set.
type Extractor struct {
	stopwords Stopwords
}

// NewExtractor returns an Extractor that ignores the given stopwords.
func NewExtractor(stopwords Stopwords) *Extractor {
	return &Extractor{stopwords: stopwords}
}

// Extract preprocesses text and computes its statistics. All values are
// zero when the text has no sentences or no tokens.
func (e *Extractor) Extract(text string) Stats {
	text = Preprocess(text)
	return Stats{
		Sentences: sentenceStats(text),
		Words:     e.wordStats(text),
	}
}

// Basic counts words and sentences on the raw text.
func (e *Extractor) Basic(text string) BasicStats {
	words := len(strings.Fields(text))
	sentences := len(Sentences(text))
	b := BasicStats{WordCount: words, SentenceCount: sentences}
	if sentences > 0 {
		b.AvgWordsPerSentence = float64(words) / float64(sentences)
	}
	return b
}

func sentenceStats(text string) SentenceStats {
	sentences := Sentences(text)
	if len(sentences) == 0 {
		return SentenceStats{}
	}
	lengths := make([]int, len(sentences))
	for i, s := range sentences {
		lengths[i] = len(strings.Fields(s))
	}

	stats := SentenceStats{Max: lengths[0], Min: lengths[0]}
	sum := 0
	for _, l := range lengths {
		sum += l
		stats.Max = max(stats.Max, l)
		stats.Min = min(stats.Min, l)
	}
	n := float64(len(lengths))
	stats.Mean = float64(sum) / n

	var sq float64
	for _, l := range lengths {
		d := float64(l) - stats.Mean
		sq += d * d
	}
	stats.StdDev = math.Sqrt(sq / n)
	return stats
}

func (e *Extractor) wordStats(text string) WordStats {
	words := make([]string, 0)
	for _, w := range strings.Fields(text) {
		if !e.stopwords.Contains(w) {
			words = append(words, w)
		}
	}
	stats := WordStats{CommonWords: make(map[string]struct{})}
	if len(words) == 0 {
		return stats
	}

	counts := make(map[string]int, len(words))
	order := make([]string, 0, len(words))
	totalRunes := 0
	for _, w := range words {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
		totalRunes += utf8.RuneCountInString(w)
	}

	stats.UniqueRatio = float64(len(counts)) / float64(len(words))
	stats.AvgWordLength = float64(totalRunes) / float64(len(words))

	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	for _, w := range order[:min(CommonWordsLimit, len(order))] {
		stats.CommonWords[w] = struct{}{}
	}
	return stats
}

// CommonWordsOverlap counts the tokens shared by two common-word sets.
func CommonWordsOverlap(a, b WordStats) int {
	n := 0
	for w := range a.CommonWords {
		if _, ok := b.CommonWords[w]; ok {
			n++
		}
	}
	return n
}
