// Package metrics defines the Prometheus collectors recorded by docsearch.
// A run can expose them over HTTP or write them to a textfile on exit for
// the node-exporter textfile collector.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result types recorded by SearchQueriesTotal.
const (
	ResultMatched    = "matched"
	ResultZeroResult = "zero_result"
	ResultError      = "error"
)

type Metrics struct {
	SearchQueriesTotal *prometheus.CounterVec
	SearchLatency      *prometheus.HistogramVec
	SearchResultsCount prometheus.Histogram
	CacheHitsTotal     prometheus.Counter
	CacheMissesTotal   prometheus.Counter
	DocsIndexedTotal   prometheus.Counter
	IndexTerms         prometheus.Gauge
	EventsDroppedTotal prometheus.Counter

	registry *prometheus.Registry
}

// New creates all collectors on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docsearch_queries_total",
				Help: "Total queries by result type (matched, zero_result, error).",
			},
			[]string{"result_type"},
		),
		SearchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docsearch_query_latency_seconds",
				Help:    "Query latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"cache_status"},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "docsearch_query_results",
				Help:    "Number of relevant documents per query.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docsearch_cache_hits_total",
				Help: "Total result cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docsearch_cache_misses_total",
				Help: "Total result cache misses.",
			},
		),
		DocsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docsearch_docs_indexed_total",
				Help: "Total documents indexed.",
			},
		),
		IndexTerms: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "docsearch_index_terms",
				Help: "Distinct terms in the inverted index.",
			},
		),
		EventsDroppedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docsearch_analytics_events_dropped_total",
				Help: "Analytics events dropped because the buffer was full.",
			},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.DocsIndexedTotal,
		m.IndexTerms,
		m.EventsDroppedTotal,
	)
	return m
}

// Gatherer exposes the registry holding every docsearch collector.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// Handler returns the Prometheus scrape HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes the current metric values to path in the text
// exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}
