package ranking

import (
	"math"

	"github.com/hyperjump/huella/internal/patterns"
	"github.com/hyperjump/huella/internal/textstats"
)

// Fusion weights in percentage points. They sum to WeightsTotal, so a pair of
// identical texts scores exactly 1.
const (
	WeightSentenceLength   = 20
	WeightWordLength       = 15
	WeightUniqueWords      = 20
	WeightCommonWords      = 15
	WeightSpellingPatterns = 30

	WeightsTotal = 100
)

// Scorer compares two texts.
type Scorer struct {
	detector  *patterns.Detector
	extractor *textstats.Extractor
}

// NewScorer returns a Scorer using detector and extractor. Nil arguments
// select the defaults: literal matching and the Spanish stopword set.
func NewScorer(detector *patterns.Detector, extractor *textstats.Extractor) *Scorer {
	if detector == nil {
		detector = patterns.NewDetector()
	}
	if extractor == nil {
		extractor = textstats.NewExtractor(textstats.SpanishStopwords())
	}
	return &Scorer{detector: detector, extractor: extractor}
}

// Detector returns the pattern detector used by the scorer.
func (s *Scorer) Detector() *patterns.Detector { return s.detector }

// Extractor returns the statistics extractor used by the scorer.
func (s *Scorer) Extractor() *textstats.Extractor { return s.extractor }

// features are the per-text inputs of a comparison.
type features struct {
	profile patterns.Profile
	stats   textstats.Stats
}

func (s *Scorer) features(text string) features {
	return features{
		profile: s.detector.Detect(text),
		stats:   s.extractor.Extract(text),
	}
}

// Score compares a and b and returns the fused score in [0, 1] with its
// breakdown. It never fails; empty texts score by the SafeSimilarity rules.
func (s *Scorer) Score(a, b string) (float64, *Detail) {
	return s.compare(s.features(a), s.features(b))
}

func (s *Scorer) compare(a, b features) (float64, *Detail) {
	d := &Detail{
		SentenceLength:   SafeSimilarity(a.stats.Sentences.Mean, b.stats.Sentences.Mean),
		WordLength:       SafeSimilarity(a.stats.Words.AvgWordLength, b.stats.Words.AvgWordLength),
		UniqueWords:      SafeSimilarity(a.stats.Words.UniqueRatio, b.stats.Words.UniqueRatio),
		CommonWords:      float64(textstats.CommonWordsOverlap(a.stats.Words, b.stats.Words)) / textstats.CommonWordsLimit,
		SpellingPatterns: ComparePatterns(a.profile, b.profile),
		InputPatterns:    a.profile,
		EntryPatterns:    b.profile,
	}
	return Fuse(d), d
}

// Fuse combines the sub-scores of d with the fixed weights.
func Fuse(d *Detail) float64 {
	sum := WeightSentenceLength*d.SentenceLength +
		WeightWordLength*d.WordLength +
		WeightUniqueWords*d.UniqueWords +
		WeightCommonWords*d.CommonWords +
		WeightSpellingPatterns*d.SpellingPatterns
	return sum / WeightsTotal
}

// SafeSimilarity returns 1 - |a-b| / max(a,b) for non-negative values.
// Equal values, including two zeros, give 1; a single zero gives 0.
func SafeSimilarity(a, b float64) float64 {
	switch {
	case a == b:
		return 1
	case a == 0 || b == 0:
		return 0
	}
	return 1 - math.Abs(a-b)/math.Max(a, b)
}

// ComparePatterns averages, over all categories, whether both profiles agree
// on the presence of at least one finding.
func ComparePatterns(a, b patterns.Profile) float64 {
	categories := patterns.Categories()
	agree := 0
	for _, c := range categories {
		if a.Has(c) == b.Has(c) {
			agree++
		}
	}
	return float64(agree) / float64(len(categories))
}
