package executor

import (
	"context"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/resolver"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/termfreq"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/tracing"
)

type SearchResult struct {
	Query    string             `json:"query"`
	Relevant []int              `json:"relevant"`
	Results  []ranker.ScoredDoc `json:"results"`
}

// Found reports whether any document matched the query.
func (r *SearchResult) Found() bool {
	return len(r.Relevant) > 0
}

// Executor runs queries against one corpus and its inverted index. Both are
// read-only, so an Executor may serve any number of queries.
type Executor struct {
	idx    *index.InvertedIndex
	corpus *corpus.Corpus
}

func New(idx *index.InvertedIndex, c *corpus.Corpus) *Executor {
	return &Executor{
		idx:    idx,
		corpus: c,
	}
}

// Fingerprint identifies the corpus this executor searches.
func (e *Executor) Fingerprint() string {
	return e.corpus.Fingerprint()
}

func (e *Executor) Execute(ctx context.Context, plan *parser.QueryPlan) (*SearchResult, error) {
	_, resolveSpan := tracing.StartChildSpan(ctx, "resolve")
	result := &SearchResult{
		Query:    plan.RawQuery,
		Relevant: resolver.Resolve(e.idx, plan),
		Results:  []ranker.ScoredDoc{},
	}
	resolveSpan.SetAttr("candidates", len(result.Relevant))
	resolveSpan.End()
	log := logger.FromContext(ctx).With("component", "query-executor")
	if !result.Found() {
		log.Debug("no relevant documents", "query", plan.RawQuery, "terms", plan.Distinct)
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("executing query %q: %w", plan.RawQuery, err)
	}

	_, rankSpan := tracing.StartChildSpan(ctx, "rank")
	defer rankSpan.End()
	docs, err := e.corpus.Subset(result.Relevant)
	if err != nil {
		return nil, fmt.Errorf("collecting relevant documents: %w", err)
	}
	freqs, vocab := termfreq.Build(docs)
	result.Results = ranker.Rank(freqs, plan, vocab)
	rankSpan.SetAttr("vocabulary", vocab.Len())

	log.Debug("query executed",
		"query", plan.RawQuery,
		"terms", plan.Distinct,
		"candidates", len(result.Relevant),
		"vocabulary", vocab.Len(),
	)
	return result, nil
}
