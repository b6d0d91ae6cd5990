package ranking

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hyperjump/huella/internal/corpus"
)

// Ranker scores an input text against every corpus entry.
type Ranker struct {
	config *RankingConfig
	scorer *Scorer
	logger *zap.Logger
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithScorer replaces the default scorer.
func WithScorer(s *Scorer) Option {
	return func(r *Ranker) {
		if s != nil {
			r.scorer = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Ranker) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRanker creates a new Ranker with the given configuration.
func NewRanker(config *RankingConfig, opts ...Option) *Ranker {
	if config == nil {
		config = DefaultRankingConfig()
	}
	config.ApplyDefaults()

	r := &Ranker{
		config: config,
		scorer: NewScorer(nil, nil),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the ranker configuration.
func (r *Ranker) Config() *RankingConfig { return r.config }

// Scorer returns the scorer used for pairwise comparisons.
func (r *Ranker) Scorer() *Scorer { return r.scorer }

// Rank compares input with every entry of c and returns the entries whose
// percentage is at least minPercent, best first. Entries with equal scores
// keep corpus order. An empty corpus or a threshold nothing reaches gives an
// empty slice. The only error is ctx.Err().
func (r *Ranker) Rank(ctx context.Context, input string, c *corpus.Corpus, minPercent float64) ([]*Match, error) {
	n := c.Len()
	if n == 0 {
		return []*Match{}, nil
	}

	in := r.scorer.features(input)
	slots := make([]*Match, n)

	score := func(i int) {
		e := c.At(i)
		s, d := r.scorer.compare(in, r.scorer.features(e.Text))
		slots[i] = &Match{
			EntryID:    e.ID,
			Author:     e.Author,
			Score:      s,
			Percentage: s * 100,
			Detail:     d,
		}
	}

	if r.config.Workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			score(i)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.config.Workers)
		for i := 0; i < n; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				score(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	matches := FilterByMinScore(slots, minPercent)
	SortByScore(matches)

	r.logger.Debug("ranked corpus",
		zap.Int("entries", n),
		zap.Int("matches", len(matches)),
		zap.Float64("min_similarity", minPercent),
		zap.Int("workers", r.config.Workers),
	)
	return matches, nil
}

// FilterByMinScore keeps matches whose percentage is at least minPercent,
// preserving order.
func FilterByMinScore(matches []*Match, minPercent float64) []*Match {
	out := make([]*Match, 0, len(matches))
	for _, m := range matches {
		if m != nil && m.Percentage >= minPercent {
			out = append(out, m)
		}
	}
	return out
}

// SortByScore orders matches by descending score. The sort is stable.
func SortByScore(matches []*Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
}

// TopN returns at most n matches. A non-positive n returns all of them.
func TopN(matches []*Match, n int) []*Match {
	if n <= 0 || n >= len(matches) {
		return matches
	}
	return matches[:n]
}
