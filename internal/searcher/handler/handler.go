// Package handler runs a single query end to end: parse, consult the result
// cache, execute, and record metrics and analytics.
package handler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/tracing"
)

type SearchExecutor interface {
	Execute(ctx context.Context, plan *parser.QueryPlan) (*executor.SearchResult, error)
	Fingerprint() string
}

// Tracker receives one event per executed query.
type Tracker interface {
	Track(event analytics.SearchEvent)
}

type Handler struct {
	executor  SearchExecutor
	cache     *cache.QueryCache
	collector Tracker
	metrics   *metrics.Metrics
	now       func() time.Time
	runID     string
	seq       atomic.Int64
}

// New builds a Handler. queryCache, collector and m may be nil to disable
// the corresponding feature.
func New(exec SearchExecutor, queryCache *cache.QueryCache, collector Tracker, m *metrics.Metrics) *Handler {
	return &Handler{
		executor:  exec,
		cache:     queryCache,
		collector: collector,
		metrics:   m,
		now:       time.Now,
		runID:     uuid.NewString(),
	}
}

// RunID identifies this handler's queries in traces and analytics events.
func (h *Handler) RunID() string {
	return h.runID
}

func (h *Handler) Search(ctx context.Context, query string) (*executor.SearchResult, error) {
	start := h.now()
	log := logger.FromContext(ctx).With("component", "search-handler")
	ctx, span := tracing.StartSpan(ctx, "search", fmt.Sprintf("%s/%d", h.runID, h.seq.Add(1)))
	defer func() {
		span.End()
		span.Log(log)
	}()
	plan := parser.Parse(query)

	var result *executor.SearchResult
	var err error
	cacheHit := false
	if h.cache != nil && !plan.Empty() {
		result, cacheHit, err = h.cache.GetOrCompute(ctx, h.executor.Fingerprint(), plan, func() (*executor.SearchResult, error) {
			return h.executor.Execute(ctx, plan)
		})
	} else {
		result, err = h.executor.Execute(ctx, plan)
	}
	latency := h.now().Sub(start)
	span.SetAttr("cache_hit", cacheHit)

	if err != nil {
		h.observe(metrics.ResultError, cacheHit, latency, 0)
		log.Error("search execution failed", "query", query, "error", err)
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}

	resultType := metrics.ResultMatched
	eventType := analytics.EventSearch
	if !result.Found() {
		resultType = metrics.ResultZeroResult
		eventType = analytics.EventZeroResult
	}
	h.observe(resultType, cacheHit, latency, len(result.Relevant))

	log.Info("search completed",
		"query", query,
		"relevant", len(result.Relevant),
		"cache_hit", cacheHit,
		"latency", latency,
	)
	if h.collector != nil {
		event := analytics.SearchEvent{
			RunID:     h.runID,
			Type:      eventType,
			Query:     query,
			Terms:     plan.Distinct,
			Relevant:  len(result.Relevant),
			TopDocID:  -1,
			LatencyUs: latency.Microseconds(),
			CacheHit:  cacheHit,
			Corpus:    h.executor.Fingerprint(),
			Timestamp: start.UTC(),
		}
		if len(result.Results) > 0 {
			event.TopDocID = result.Results[0].DocID
			event.TopAngle = result.Results[0].Angle
		}
		h.collector.Track(event)
	}
	return result, nil
}

func (h *Handler) observe(resultType string, cacheHit bool, latency time.Duration, relevant int) {
	if h.metrics == nil {
		return
	}
	h.metrics.SearchQueriesTotal.WithLabelValues(resultType).Inc()
	cacheStatus := "disabled"
	if h.cache != nil {
		cacheStatus = "miss"
		if cacheHit {
			cacheStatus = "hit"
		}
		if cacheHit {
			h.metrics.CacheHitsTotal.Inc()
		} else {
			h.metrics.CacheMissesTotal.Inc()
		}
	}
	h.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(latency.Seconds())
	if resultType != metrics.ResultError {
		h.metrics.SearchResultsCount.Observe(float64(relevant))
	}
}
