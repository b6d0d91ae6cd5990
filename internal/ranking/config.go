package ranking

// DefaultMinSimilarity is the default match threshold, in percent.
const DefaultMinSimilarity = 70.0

// RankingConfig holds the configuration of the corpus ranker.
type RankingConfig struct {
	MinSimilarity float64 `yaml:"min_similarity" mapstructure:"min_similarity"` // default: 70
	Workers       int     `yaml:"workers" mapstructure:"workers"`               // default: 1 (sequential)
}

// DefaultRankingConfig returns the default ranking configuration.
func DefaultRankingConfig() *RankingConfig {
	return &RankingConfig{
		MinSimilarity: DefaultMinSimilarity,
		Workers:       1,
	}
}

// ApplyDefaults fills in zero values with defaults. A zero threshold is
// kept: it is a valid setting that accepts every entry.
func (c *RankingConfig) ApplyDefaults() {
	defaults := DefaultRankingConfig()

	if c.Workers <= 0 {
		c.Workers = defaults.Workers
	}
	c.MinSimilarity = ClampThreshold(c.MinSimilarity)
}

// ClampThreshold limits a percentage threshold to [0, 100].
func ClampThreshold(v float64) float64 {
	switch {
	case v != v: // NaN
		return DefaultMinSimilarity
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
