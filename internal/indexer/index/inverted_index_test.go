package index

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/tokenizer"
)

var sampleCorpus = []string{
	"the cat sat",
	"the dog ran",
	"cat and dog played",
}

func TestBuild_PostingsInInsertionOrder(t *testing.T) {
	idx := Build(sampleCorpus)

	tests := map[string]PostingList{
		"the":    {0, 1},
		"cat":    {0, 2},
		"dog":    {1, 2},
		"played": {2},
	}
	for term, want := range tests {
		got, ok := idx.Postings(term)
		require.True(t, ok, term)
		assert.Equal(t, want, got, term)
	}
	assert.Equal(t, 3, idx.DocCount())
	assert.Equal(t, 7, idx.Len())
	assert.Equal(t, []string{"the", "cat", "sat", "dog", "ran", "and", "played"}, idx.Terms())
}

func TestBuild_NoDuplicateIDs(t *testing.T) {
	idx := Build([]string{"go go go", "stop go"})

	got, ok := idx.Postings("go")
	require.True(t, ok)
	assert.Equal(t, PostingList{0, 1}, got)
}

func TestBuild_CaseSensitive(t *testing.T) {
	idx := Build([]string{"Cat", "cat"})

	upper, _ := idx.Postings("Cat")
	lower, _ := idx.Postings("cat")
	assert.Equal(t, PostingList{0}, upper)
	assert.Equal(t, PostingList{1}, lower)
}

func TestBuild_EmptyCorpus(t *testing.T) {
	idx := Build(nil)

	assert.Equal(t, 0, idx.Len())
	assert.Equal(t, 0, idx.DocCount())
	_, ok := idx.Postings("anything")
	assert.False(t, ok)
	assert.Nil(t, idx.Bitmap("anything"))
}

func TestPostings_ReturnsCopy(t *testing.T) {
	idx := Build(sampleCorpus)

	got, _ := idx.Postings("cat")
	got[0] = 99

	again, _ := idx.Postings("cat")
	assert.Equal(t, PostingList{0, 2}, again)
}

func TestSnapshot_SortedByTerm(t *testing.T) {
	idx := Build(sampleCorpus)
	snap := idx.Snapshot()

	require.Len(t, snap, idx.Len())
	for i := 1; i < len(snap); i++ {
		assert.Less(t, snap[i-1].Term, snap[i].Term)
	}
	assert.Equal(t, TermEntry{Term: "and", Postings: PostingList{2}}, snap[0])
}

// Every posting must point at a document containing the term, and every
// occurrence of a term must be reflected in its posting list.
func TestBuild_RoundTripProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	vocab := []string{"a", "b", "c", "d", "e", "f", "G", "g"}
	docs := make([]string, 40)
	for i := range docs {
		n := rng.Intn(6)
		line := ""
		for j := 0; j < n; j++ {
			line += vocab[rng.Intn(len(vocab))] + " "
		}
		docs[i] = line
	}

	idx := Build(docs)

	for _, entry := range idx.Snapshot() {
		for _, docID := range entry.Postings {
			assert.Contains(t, tokenizer.Terms(docs[docID]), entry.Term)
		}
	}
	for docID, text := range docs {
		for _, term := range tokenizer.Terms(text) {
			assert.True(t, idx.Contains(term, docID), fmt.Sprintf("%s in %d", term, docID))
		}
	}
}

func BenchmarkBuild(b *testing.B) {
	terms := []string{"distributed", "search", "analytics", "platform", "indexing", "query", "engine", "ranking"}
	docs := make([]string, 5000)
	for i := range docs {
		docs[i] = fmt.Sprintf("document about %s and %s covering %s",
			terms[i%len(terms)], terms[(i+1)%len(terms)], terms[(i+3)%len(terms)])
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Build(docs)
	}
}
