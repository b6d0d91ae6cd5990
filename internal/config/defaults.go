package config

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/hyperjump/huella/internal/ranking"
)

// Default values.
const (
	DefaultHost           = "localhost"
	DefaultPort           = 8080
	DefaultRequestTimeout = 30
	DefaultWorkers        = 1
	DefaultReportExamples = 5
	DefaultLookupLimit    = 10
)

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{
		Analysis: AnalysisConfig{MinSimilarity: ranking.DefaultMinSimilarity},
	}
	ApplyDefaults(cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.request_timeout_seconds", DefaultRequestTimeout)
	v.SetDefault("analysis.min_similarity", ranking.DefaultMinSimilarity)
	v.SetDefault("analysis.workers", DefaultWorkers)
	v.SetDefault("analysis.report_examples", DefaultReportExamples)
	v.SetDefault("analysis.folded_matching", false)
	v.SetDefault("corpus.source", "")
	v.SetDefault("corpus.lookup_limit", DefaultLookupLimit)
}

// ApplyDefaults sets default values for any zero values in cfg. A zero
// threshold is meaningful and is kept; out-of-range thresholds are clamped.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Analysis.Workers <= 0 {
		cfg.Analysis.Workers = DefaultWorkers
	}
	if cfg.Analysis.ReportExamples <= 0 {
		cfg.Analysis.ReportExamples = DefaultReportExamples
	}
	if cfg.Corpus.LookupLimit <= 0 {
		cfg.Corpus.LookupLimit = DefaultLookupLimit
	}
	cfg.Analysis.MinSimilarity = ClampThreshold(cfg.Analysis.MinSimilarity)
}

// ClampThreshold limits a percentage threshold to [0, 100].
func ClampThreshold(v float64) float64 {
	return ranking.ClampThreshold(v)
}

// ParseThreshold reads a user-supplied threshold. Text that is not a number
// falls back to the default; numbers are clamped. The second result is false
// when the fallback was used.
func ParseThreshold(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return ranking.DefaultMinSimilarity, false
	}
	return ClampThreshold(v), true
}
