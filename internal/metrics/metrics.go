// Package metrics exposes Prometheus metrics for analyses.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "huella"

// Analysis outcomes, used as the status label.
const (
	StatusOK      = "ok"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	MatchesReturned  prometheus.Histogram
	ComparisonsTotal prometheus.Counter
	CorpusEntries    prometheus.Gauge
}

// Options configures New.
type Options struct {
	// Runtime adds the Go runtime and process collectors.
	Runtime bool
}

// New registers all collectors on a fresh registry.
func New(opts Options) *Metrics {
	reg := prometheus.NewRegistry()
	if opts.Runtime {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: Namespace}),
		)
	}

	m := &Metrics{
		registry: reg,
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "analyses_total",
			Help:      "Corpus analyses by outcome.",
		}, []string{"status"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Time spent ranking the corpus for one input.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		MatchesReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "matches_returned",
			Help:      "Matches above threshold per analysis.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		ComparisonsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "comparisons_total",
			Help:      "Pairwise text comparisons requested directly.",
		}),
		CorpusEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "corpus_entries",
			Help:      "Entries in the loaded reference corpus.",
		}),
	}
	reg.MustRegister(m.AnalysesTotal, m.AnalysisDuration, m.MatchesReturned, m.ComparisonsTotal, m.CorpusEntries)
	return m
}

// ObserveAnalysis records one analysis. Safe on a nil receiver.
func (m *Metrics) ObserveAnalysis(status string, elapsed time.Duration, matches int) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(status).Inc()
	if status == StatusOK {
		m.AnalysisDuration.Observe(elapsed.Seconds())
		m.MatchesReturned.Observe(float64(matches))
	}
}

// ObserveComparison counts one direct comparison. Safe on a nil receiver.
func (m *Metrics) ObserveComparison() {
	if m == nil {
		return
	}
	m.ComparisonsTotal.Inc()
}

// SetCorpusSize records the number of corpus entries. Safe on a nil receiver.
func (m *Metrics) SetCorpusSize(n int) {
	if m == nil {
		return
	}
	m.CorpusEntries.Set(float64(n))
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
