package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/ranker"
)

var errMissing = errors.New("missing")

type memoryStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (s *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.data[key]
	if !ok {
		return nil, errMissing
	}
	return v, nil
}

func (s *memoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	s.ttls[key] = ttl
	return nil
}

func (s *memoryStore) FlushByPattern(ctx context.Context, pattern string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	var n int64
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			delete(s.data, k)
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) IsNilError(err error) bool {
	return errors.Is(err, errMissing)
}

func sampleResult(query string) *executor.SearchResult {
	return &executor.SearchResult{
		Query:    query,
		Relevant: []int{2},
		Results:  []ranker.ScoredDoc{{DocID: 2, Angle: 45}},
	}
}

func TestGetOrCompute_MissThenHit(t *testing.T) {
	store := newMemoryStore()
	c := New(store, time.Minute)
	ctx := context.Background()
	calls := 0
	compute := func() (*executor.SearchResult, error) {
		calls++
		return sampleResult("cat dog"), nil
	}

	first, hit, err := c.GetOrCompute(ctx, "fp", parser.Parse("cat dog"), compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, sampleResult("cat dog"), first)

	second, hit, err := c.GetOrCompute(ctx, "fp", parser.Parse("dog cat dog"), compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "dog cat dog", second.Query)
	assert.Equal(t, first.Results, second.Results)

	assert.Equal(t, 1, calls)
	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
	for _, ttl := range store.ttls {
		assert.Equal(t, time.Minute, ttl)
	}
}

func TestGetOrCompute_DifferentCorpusMisses(t *testing.T) {
	c := New(newMemoryStore(), time.Minute)
	ctx := context.Background()
	calls := 0
	compute := func() (*executor.SearchResult, error) {
		calls++
		return sampleResult("cat"), nil
	}

	_, _, _ = c.GetOrCompute(ctx, "corpus-a", parser.Parse("cat"), compute)
	_, hit, _ := c.GetOrCompute(ctx, "corpus-b", parser.Parse("cat"), compute)

	assert.False(t, hit)
	assert.Equal(t, 2, calls)
}

func TestGetOrCompute_ComputeError(t *testing.T) {
	c := New(newMemoryStore(), time.Minute)
	boom := errors.New("boom")

	_, _, err := c.GetOrCompute(context.Background(), "fp", parser.Parse("cat"), func() (*executor.SearchResult, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestGetOrCompute_StoreFailureFallsBack(t *testing.T) {
	store := newMemoryStore()
	store.getErr = errors.New("connection refused")
	c := New(store, time.Minute)

	result, hit, err := c.GetOrCompute(context.Background(), "fp", parser.Parse("cat"), func() (*executor.SearchResult, error) {
		return sampleResult("cat"), nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, []int{2}, result.Relevant)
}

func TestGetOrCompute_ConcurrentCallersShareCompute(t *testing.T) {
	c := New(newMemoryStore(), time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})
	compute := func() (*executor.SearchResult, error) {
		calls.Add(1)
		<-release
		return sampleResult("cat"), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := c.GetOrCompute(context.Background(), "fp", parser.Parse("cat"), compute)
			assert.NoError(t, err)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestGetOrCompute_SharedComputeKeepsCallerQuery(t *testing.T) {
	c := New(newMemoryStore(), time.Minute)
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	compute := func() (*executor.SearchResult, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return sampleResult("cat dog"), nil
	}

	var first, second *executor.SearchResult
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		first, _, err = c.GetOrCompute(context.Background(), "fp", parser.Parse("cat dog"), compute)
		assert.NoError(t, err)
	}()
	<-started
	go func() {
		defer wg.Done()
		var err error
		second, _, err = c.GetOrCompute(context.Background(), "fp", parser.Parse("dog cat"), compute)
		assert.NoError(t, err)
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, "cat dog", first.Query)
	assert.Equal(t, "dog cat", second.Query)
	assert.Equal(t, first.Relevant, second.Relevant)
	assert.Equal(t, first.Results, second.Results)
}

func TestInvalidate(t *testing.T) {
	store := newMemoryStore()
	store.data["other"] = []byte("x")
	c := New(store, time.Minute)
	c.Set(context.Background(), "fp", parser.Parse("a"), sampleResult("a"))
	c.Set(context.Background(), "fp", parser.Parse("b"), sampleResult("b"))

	deleted, err := c.Invalidate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Contains(t, store.data, "other")
}

func TestBuildKey(t *testing.T) {
	a := BuildKey("fp", parser.Parse("cat dog"))
	b := BuildKey("fp", parser.Parse("dog  cat cat"))
	c := BuildKey("fp", parser.Parse("Cat dog"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, keyPrefix))
	assert.Len(t, a, len(keyPrefix)+32)
}
