// Package analyzer is the entry point shared by the CLI and the HTTP API:
// it validates requests, ranks the corpus, and renders reports.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/huella/internal/corpus"
	"github.com/hyperjump/huella/internal/keyword"
	"github.com/hyperjump/huella/internal/metrics"
	"github.com/hyperjump/huella/internal/models"
	"github.com/hyperjump/huella/internal/patterns"
	"github.com/hyperjump/huella/internal/ranking"
	"github.com/hyperjump/huella/internal/report"
	"github.com/hyperjump/huella/internal/textstats"
	"github.com/hyperjump/huella/pkg/utils"
)

// ErrLookupDisabled is returned by Lookup when no corpus index was configured.
var ErrLookupDisabled = errors.New("corpus lookup is not enabled")

// previewLength is the rune length of entry previews in corpus listings.
const previewLength = 80

// Service analyzes texts against one corpus.
type Service struct {
	corpus    *corpus.Corpus
	ranker    *ranking.Ranker
	formatter *report.Formatter
	lookup    *keyword.CorpusIndex
	metrics   *metrics.Metrics
	logger    *zap.Logger

	foldedMatching bool
	examples       int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records analyses on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLookup enables corpus searches through idx.
func WithLookup(idx *keyword.CorpusIndex) Option {
	return func(s *Service) { s.lookup = idx }
}

// WithReportExamples sets how many findings per category reports show.
func WithReportExamples(n int) Option {
	return func(s *Service) { s.examples = n }
}

// WithFoldedMatching makes the detector test rules on accent-folded tokens.
func WithFoldedMatching(enabled bool) Option {
	return func(s *Service) { s.foldedMatching = enabled }
}

// New creates a Service over c. A nil cfg selects the ranking defaults.
func New(c *corpus.Corpus, cfg *ranking.RankingConfig, opts ...Option) *Service {
	s := &Service{
		corpus: c,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var detectorOpts []patterns.DetectorOption
	if s.foldedMatching {
		detectorOpts = append(detectorOpts, patterns.WithFoldedMatching())
	}
	scorer := ranking.NewScorer(patterns.NewDetector(detectorOpts...), textstats.NewExtractor(textstats.SpanishStopwords()))
	s.ranker = ranking.NewRanker(cfg, ranking.WithScorer(scorer), ranking.WithLogger(s.logger))
	s.formatter = report.NewFormatter(s.examples)
	s.metrics.SetCorpusSize(c.Len())
	return s
}

// Corpus returns the corpus the service ranks against.
func (s *Service) Corpus() *corpus.Corpus { return s.corpus }

// MinSimilarity returns the default threshold, in percent.
func (s *Service) MinSimilarity() float64 { return s.ranker.Config().MinSimilarity }

// Analyze ranks the corpus by similarity to req.Text and renders the report.
func (s *Service) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	start := time.Now()
	if err := req.Validate(s.MinSimilarity()); err != nil {
		s.metrics.ObserveAnalysis(metrics.StatusInvalid, 0, 0)
		return nil, err
	}

	matches, err := s.ranker.Rank(ctx, req.Text, s.corpus, req.Threshold())
	if err != nil {
		s.metrics.ObserveAnalysis(metrics.StatusError, time.Since(start), 0)
		return nil, fmt.Errorf("rank corpus: %w", err)
	}
	matches = ranking.TopN(matches, req.Limit)

	elapsed := time.Since(start)
	resp := &models.AnalyzeResponse{
		ID:            uuid.NewString(),
		Matches:       matches,
		Total:         len(matches),
		CorpusSize:    s.corpus.Len(),
		MinSimilarity: req.Threshold(),
		Report:        s.formatter.Format(matches),
		Basic:         s.ranker.Scorer().Extractor().Basic(req.Text),
		ElapsedMS:     elapsed.Milliseconds(),
	}
	s.metrics.ObserveAnalysis(metrics.StatusOK, elapsed, len(matches))

	fields := []zap.Field{
		zap.String("id", resp.ID),
		zap.Int("matches", resp.Total),
		zap.Float64("min_similarity", resp.MinSimilarity),
		zap.Duration("elapsed", elapsed),
	}
	if len(matches) > 0 {
		fields = append(fields, zap.String("best_author", matches[0].Author), zap.Float64("best_similarity", matches[0].Percentage))
	}
	s.logger.Info("analysis complete", fields...)
	return resp, nil
}

// Compare scores two texts against each other.
func (s *Service) Compare(ctx context.Context, req *models.CompareRequest) (*models.CompareResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	score, detail := s.ranker.Scorer().Score(req.TextA, req.TextB)
	s.metrics.ObserveComparison()
	return &models.CompareResponse{Score: score, Percentage: score * 100, Detail: detail}, nil
}

// Profile describes req.Text on its own: counts, statistics and findings.
func (s *Service) Profile(ctx context.Context, req *models.ProfileRequest) (*models.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sc := s.ranker.Scorer()
	stats := sc.Extractor().Extract(req.Text)
	return &models.ProfileResponse{
		Basic:       sc.Extractor().Basic(req.Text),
		Stats:       stats,
		CommonWords: stats.Words.CommonWordList(),
		Patterns:    sc.Detector().Detect(req.Text),
	}, nil
}

// Entries lists the corpus with short previews.
func (s *Service) Entries() []*models.CorpusEntrySummary {
	entries := s.corpus.Entries()
	ex := s.ranker.Scorer().Extractor()
	out := make([]*models.CorpusEntrySummary, len(entries))
	for i, e := range entries {
		out[i] = &models.CorpusEntrySummary{
			ID:        e.ID,
			Author:    e.Author,
			WordCount: ex.Basic(e.Text).WordCount,
			Preview:   utils.Preview(e.Text, previewLength),
		}
	}
	return out
}

// Lookup searches the corpus vocabulary. When an exact search finds nothing,
// it retries with fuzzy matching and reports a corrected query.
func (s *Service) Lookup(ctx context.Context, q *models.CorpusSearchQuery) (*models.CorpusSearchResponse, error) {
	if s.lookup == nil {
		return nil, ErrLookupDisabled
	}
	start := time.Now()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	hits, err := s.lookup.Search(ctx, q.Query, q.Limit, &keyword.SearchOptions{Fuzzy: q.Fuzzy})
	if err != nil {
		return nil, fmt.Errorf("corpus search: %w", err)
	}
	resp := &models.CorpusSearchResponse{Query: q.Query}
	if corrected, ok := s.lookup.Suggest(q.Query); ok {
		resp.DidYouMean = corrected
	}
	if len(hits) == 0 && !q.Fuzzy {
		hits, err = s.lookup.Search(ctx, q.Query, q.Limit, &keyword.SearchOptions{Fuzzy: true})
		if err != nil {
			return nil, fmt.Errorf("corpus search: %w", err)
		}
		resp.AutoFuzzy = len(hits) > 0
	}

	resp.Hits = make([]*models.CorpusHit, len(hits))
	for i, h := range hits {
		resp.Hits[i] = &models.CorpusHit{ID: h.ID, Author: h.Author, Score: h.Score}
	}
	resp.Total = len(resp.Hits)
	resp.QueryTime = time.Since(start).Milliseconds()

	s.logger.Debug("corpus lookup",
		zap.String("query", q.Query),
		zap.Int("hits", resp.Total),
		zap.Bool("auto_fuzzy", resp.AutoFuzzy),
	)
	return resp, nil
}
