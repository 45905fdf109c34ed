// Package index builds the inverted index: a mapping from each term to the
// documents containing it. The index is built once per corpus and is
// read-only afterwards, so it may be shared between sequential or concurrent
// queries without copying.
package index

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/tokenizer"
)

type InvertedIndex struct {
	terms    map[string]*postings
	order    []string
	docCount int
}

// Build indexes docs, using each document's position in the slice as its ID.
func Build(docs []string) *InvertedIndex {
	idx := &InvertedIndex{
		terms: make(map[string]*postings),
	}
	for docID, text := range docs {
		idx.addDocument(docID, text)
	}
	return idx
}

func (idx *InvertedIndex) addDocument(docID int, text string) {
	for _, token := range tokenizer.Tokenize(text) {
		p, exists := idx.terms[token.Term]
		if !exists {
			p = newPostings()
			idx.terms[token.Term] = p
			idx.order = append(idx.order, token.Term)
		}
		p.add(docID)
	}
	idx.docCount++
}

// Postings returns a copy of the posting list for term, and false when the
// term does not occur in any document.
func (idx *InvertedIndex) Postings(term string) (PostingList, bool) {
	p, exists := idx.terms[term]
	if !exists {
		return nil, false
	}
	out := make(PostingList, len(p.ordered))
	copy(out, p.ordered)
	return out, true
}

// Bitmap returns a clone of the document set for term, or nil when the term
// is unknown.
func (idx *InvertedIndex) Bitmap(term string) *roaring.Bitmap {
	p, exists := idx.terms[term]
	if !exists {
		return nil
	}
	return p.set.Clone()
}

// Contains reports whether document docID contains term.
func (idx *InvertedIndex) Contains(term string, docID int) bool {
	p, exists := idx.terms[term]
	if !exists || docID < 0 {
		return false
	}
	return p.set.Contains(uint32(docID))
}

// Terms returns every indexed term in first-seen order.
func (idx *InvertedIndex) Terms() []string {
	out := make([]string, len(idx.order))
	copy(out, idx.order)
	return out
}

// Len is the number of distinct terms in the dictionary.
func (idx *InvertedIndex) Len() int {
	return len(idx.terms)
}

func (idx *InvertedIndex) DocCount() int {
	return idx.docCount
}

// Snapshot returns all term entries sorted by term.
func (idx *InvertedIndex) Snapshot() []TermEntry {
	entries := make([]TermEntry, 0, len(idx.terms))
	for _, term := range idx.order {
		postings, _ := idx.Postings(term)
		entries = append(entries, TermEntry{
			Term:     term,
			Postings: postings,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Term < entries[j].Term
	})
	return entries
}
