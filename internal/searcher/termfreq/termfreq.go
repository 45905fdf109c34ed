// Package termfreq counts term occurrences for the documents relevant to a
// query and collects the vocabulary those documents share.
package termfreq

import (
	"sort"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/tokenizer"
)

// Frequencies maps a term to its number of occurrences in one document.
type Frequencies map[string]int

// Count returns the occurrences of term, zero when absent.
func (f Frequencies) Count(term string) int {
	return f[term]
}

// Vocabulary is the set of distinct terms across a group of documents. Its
// canonical iteration order is lexicographic, so vectors built from the same
// Vocabulary always line up component by component.
type Vocabulary struct {
	terms map[string]struct{}
}

func NewVocabulary(terms ...string) Vocabulary {
	v := Vocabulary{terms: make(map[string]struct{}, len(terms))}
	for _, term := range terms {
		v.terms[term] = struct{}{}
	}
	return v
}

func (v Vocabulary) Contains(term string) bool {
	_, ok := v.terms[term]
	return ok
}

func (v Vocabulary) Len() int {
	return len(v.terms)
}

// Terms returns the vocabulary in canonical order.
func (v Vocabulary) Terms() []string {
	out := make([]string, 0, len(v.terms))
	for term := range v.terms {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}

// Build counts the terms of every document in docs (keyed by document ID)
// and returns the per-document counts together with their union vocabulary.
func Build(docs map[int]string) (map[int]Frequencies, Vocabulary) {
	vocab := NewVocabulary()
	freqs := make(map[int]Frequencies, len(docs))
	for docID, text := range docs {
		counts := make(Frequencies)
		for _, term := range tokenizer.Terms(text) {
			counts[term]++
			vocab.terms[term] = struct{}{}
		}
		freqs[docID] = counts
	}
	return freqs, vocab
}
