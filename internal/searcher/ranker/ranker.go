// Package ranker orders relevant documents by the angle between their
// term-frequency vector and the query vector. Smaller angles rank first.
package ranker

import (
	"math"
	"sort"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/termfreq"
)

type ScoredDoc struct {
	DocID int     `json:"doc_id"`
	Angle float64 `json:"angle"`
}

// Rank scores every document in freqs against the query and returns them by
// ascending angle, ties broken by ascending document ID.
//
// Vectors are aligned on vocab. The query contributes weight 1 for each
// distinct term, and the numerator is the sum of the document's counts at
// those terms.
func Rank(freqs map[int]termfreq.Frequencies, plan *parser.QueryPlan, vocab termfreq.Vocabulary) []ScoredDoc {
	terms := vocab.Terms()
	queryNorm := norm(queryVector(terms, plan.Distinct))

	docIDs := make([]int, 0, len(freqs))
	for docID := range freqs {
		docIDs = append(docIDs, docID)
	}
	sort.Ints(docIDs)

	result := make([]ScoredDoc, 0, len(docIDs))
	for _, docID := range docIDs {
		counts := freqs[docID]
		var numerator float64
		for _, term := range plan.Distinct {
			numerator += float64(counts.Count(term))
		}
		docNorm := norm(documentVector(terms, counts))
		result = append(result, ScoredDoc{
			DocID: docID,
			Angle: Angle(Cosine(numerator, queryNorm, docNorm)),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Angle < result[j].Angle
	})
	return result
}

// Cosine divides the numerator by the product of the two norms. A zero norm
// yields 0 and the result is clamped to [-1, 1].
func Cosine(numerator, normA, normB float64) float64 {
	denominator := normA * normB
	if denominator == 0 {
		return 0
	}
	return clamp(numerator/denominator, -1, 1)
}

// Angle converts a cosine into degrees rounded to two decimals.
func Angle(cosine float64) float64 {
	theta := math.Acos(clamp(cosine, -1, 1)) * 180 / math.Pi
	return math.Round(theta*100) / 100
}

// documentVector lays out counts along terms, zero where absent.
func documentVector(terms []string, counts termfreq.Frequencies) []float64 {
	vec := make([]float64, len(terms))
	for i, term := range terms {
		vec[i] = float64(counts.Count(term))
	}
	return vec
}

// queryVector has weight 1 at every distinct query term. Query terms outside
// the vocabulary are appended so they still count towards the query norm.
func queryVector(terms []string, distinct []string) []float64 {
	present := make(map[string]struct{}, len(distinct))
	for _, term := range distinct {
		present[term] = struct{}{}
	}
	vec := make([]float64, len(terms), len(terms)+len(distinct))
	for i, term := range terms {
		if _, ok := present[term]; ok {
			vec[i] = 1
			delete(present, term)
		}
	}
	for _, term := range distinct {
		if _, ok := present[term]; ok {
			vec = append(vec, 1)
		}
	}
	return vec
}

func norm(vec []float64) float64 {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
