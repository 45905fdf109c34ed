// Package resolver finds the documents that contain every distinct term of
// a query.
package resolver

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/parser"
)

// Resolve returns the IDs of documents containing all distinct query terms,
// in ascending order. A term missing from the index and an empty
// intersection both yield an empty result.
func Resolve(idx *index.InvertedIndex, plan *parser.QueryPlan) []int {
	if plan.Empty() {
		return []int{}
	}
	sets := make([]*roaring.Bitmap, 0, len(plan.Distinct))
	for _, term := range plan.Distinct {
		set := idx.Bitmap(term)
		if set == nil {
			return []int{}
		}
		sets = append(sets, set)
	}
	var matched *roaring.Bitmap
	if len(sets) == 1 {
		matched = sets[0]
	} else {
		matched = roaring.FastAnd(sets...)
	}
	ids := make([]int, 0, matched.GetCardinality())
	it := matched.Iterator()
	for it.HasNext() {
		ids = append(ids, int(it.Next()))
	}
	return ids
}
