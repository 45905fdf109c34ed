package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/ranker"
	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/tracing"
)

func newExecutor(docs ...string) *Executor {
	c := corpus.New(docs)
	return New(index.Build(c.Texts()), c)
}

func TestExecute_Match(t *testing.T) {
	exec := newExecutor("the cat sat", "the dog ran", "cat and dog played")

	result, err := exec.Execute(context.Background(), parser.Parse("cat dog"))
	require.NoError(t, err)

	assert.Equal(t, "cat dog", result.Query)
	assert.Equal(t, []int{2}, result.Relevant)
	assert.Equal(t, []ranker.ScoredDoc{{DocID: 2, Angle: 45}}, result.Results)
	assert.True(t, result.Found())
}

func TestExecute_UnknownTerm(t *testing.T) {
	exec := newExecutor("the cat sat", "the dog ran", "cat and dog played")

	result, err := exec.Execute(context.Background(), parser.Parse("cat zebra"))
	require.NoError(t, err)

	assert.False(t, result.Found())
	assert.Empty(t, result.Relevant)
	assert.Empty(t, result.Results)
}

func TestExecute_RankedAscending(t *testing.T) {
	exec := newExecutor("apple banana", "apple", "banana cherry apple apple", "cherry")

	result, err := exec.Execute(context.Background(), parser.Parse("apple"))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, result.Relevant)
	require.Len(t, result.Results, 3)
	assert.Equal(t, 1, result.Results[0].DocID)
	assert.Equal(t, 0.0, result.Results[0].Angle)
	for i := 1; i < len(result.Results); i++ {
		assert.LessOrEqual(t, result.Results[i-1].Angle, result.Results[i].Angle)
	}
}

func TestExecute_CancelledContext(t *testing.T) {
	exec := newExecutor("a b", "a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := exec.Execute(ctx, parser.Parse("a"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecute_SpansEndedOnSubsetError(t *testing.T) {
	idx := index.Build([]string{"a", "b", "a b"})
	exec := New(idx, corpus.New([]string{"a"}))
	ctx, root := tracing.StartSpan(context.Background(), "search", "run/1")

	_, err := exec.Execute(ctx, parser.Parse("b"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	require.Len(t, root.Children, 2)
	assert.Equal(t, "resolve", root.Children[0].Name)
	assert.Equal(t, "rank", root.Children[1].Name)
	for _, child := range root.Children {
		assert.True(t, child.Ended(), child.Name)
	}
}

func TestExecute_IndexReusedAcrossQueries(t *testing.T) {
	exec := newExecutor("x y", "y z", "x z")

	for i := 0; i < 3; i++ {
		first, err := exec.Execute(context.Background(), parser.Parse("z"))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, first.Relevant)
	}
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, newExecutor("a", "b").Fingerprint(), newExecutor("a", "b").Fingerprint())
	assert.NotEqual(t, newExecutor("a", "b").Fingerprint(), newExecutor("b", "a").Fingerprint())
}
