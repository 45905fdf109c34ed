// Package parser turns a raw query line into a QueryPlan. Every query is a
// conjunction of its terms; repeated terms collapse for retrieval.
package parser

import (
	"strings"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/tokenizer"
)

type QueryPlan struct {
	RawQuery string
	// Terms holds every query term in order, duplicates included.
	Terms []string
	// Distinct holds each term once, in first-seen order.
	Distinct []string
}

func Parse(query string) *QueryPlan {
	plan := &QueryPlan{
		RawQuery: query,
		Terms:    make([]string, 0),
		Distinct: make([]string, 0),
	}
	if strings.TrimSpace(query) == "" {
		return plan
	}
	seen := make(map[string]struct{})
	for _, term := range tokenizer.Terms(query) {
		plan.Terms = append(plan.Terms, term)
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		plan.Distinct = append(plan.Distinct, term)
	}
	return plan
}

// Empty reports whether the query has no terms.
func (p *QueryPlan) Empty() bool {
	return len(p.Distinct) == 0
}
