// Package cache memoises search results in Redis. Keys combine the corpus
// fingerprint with the normalised query, so a cached entry is only reused
// for exactly the same documents. The index itself is never stored.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/resilience"
)

const keyPrefix = "search:"

// Store is the key/value backend; *redis.Client satisfies it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	FlushByPattern(ctx context.Context, pattern string) (int64, error)
	IsNilError(err error) bool
}

type QueryCache struct {
	store   Store
	ttl     time.Duration
	breaker *resilience.Breaker
	group   singleflight.Group
	logger  *slog.Logger
	hits    atomic.Int64
	misses  atomic.Int64
}

func New(store Store, ttl time.Duration) *QueryCache {
	return &QueryCache{
		store:   store,
		ttl:     ttl,
		breaker: resilience.NewBreaker("result-cache", 3, 30*time.Second),
		logger:  slog.Default().With("component", "query-cache"),
	}
}

func (c *QueryCache) Get(ctx context.Context, fingerprint string, plan *parser.QueryPlan) (*executor.SearchResult, bool) {
	key := BuildKey(fingerprint, plan)
	var data []byte
	err := c.breaker.Do(func() error {
		var getErr error
		data, getErr = c.store.Get(ctx, key)
		if getErr != nil && c.store.IsNilError(getErr) {
			return nil
		}
		return getErr
	})
	if err != nil {
		c.logger.Warn("cache get failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	if data == nil {
		c.misses.Add(1)
		return nil, false
	}
	var result executor.SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	result.Query = plan.RawQuery
	c.hits.Add(1)
	c.logger.Debug("cache hit", "query", plan.RawQuery, "key", key)
	return &result, true
}

func (c *QueryCache) Set(ctx context.Context, fingerprint string, plan *parser.QueryPlan, result *executor.SearchResult) {
	key := BuildKey(fingerprint, plan)
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	err = c.breaker.Do(func() error {
		return c.store.Set(ctx, key, data, c.ttl)
	})
	if err != nil {
		c.logger.Warn("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached result or runs computeFn, storing its
// result. Concurrent calls for the same key share one computation. The
// boolean reports a cache hit.
func (c *QueryCache) GetOrCompute(
	ctx context.Context,
	fingerprint string,
	plan *parser.QueryPlan,
	computeFn func() (*executor.SearchResult, error),
) (*executor.SearchResult, bool, error) {
	if result, ok := c.Get(ctx, fingerprint, plan); ok {
		return result, true, nil
	}
	key := BuildKey(fingerprint, plan)
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		result, err := computeFn()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, fingerprint, plan, result)
		return result, nil
	})
	if err != nil {
		return nil, false, err
	}
	// Callers sharing a computation may have spelled the query differently.
	result := *val.(*executor.SearchResult)
	result.Query = plan.RawQuery
	return &result, false, nil
}

func (c *QueryCache) Invalidate(ctx context.Context) (int64, error) {
	deleted, err := c.store.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return deleted, fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return deleted, nil
}

func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// BuildKey derives the cache key for plan against the corpus identified by
// fingerprint. Term order and repetition do not change the key.
func BuildKey(fingerprint string, plan *parser.QueryPlan) string {
	raw := fmt.Sprintf("%s|%s", fingerprint, normalizeQuery(plan))
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}

func normalizeQuery(plan *parser.QueryPlan) string {
	terms := make([]string, len(plan.Distinct))
	copy(terms, plan.Distinct)
	sort.Strings(terms)
	return strings.Join(terms, "\x1f")
}
