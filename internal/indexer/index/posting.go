package index

import "github.com/RoaringBitmap/roaring/v2"

// PostingList is the ordered list of document IDs that contain a term,
// in the order the documents were first seen.
type PostingList []int

// TermEntry pairs a term with its posting list.
type TermEntry struct {
	Term     string
	Postings PostingList
}

// postings keeps a term's documents twice: a bitmap for membership and set
// algebra, and a slice preserving insertion order.
type postings struct {
	set     *roaring.Bitmap
	ordered PostingList
}

func newPostings() *postings {
	return &postings{set: roaring.New()}
}

// add records docID and reports whether it was new for this term.
func (p *postings) add(docID int) bool {
	if !p.set.CheckedAdd(uint32(docID)) {
		return false
	}
	p.ordered = append(p.ordered, docID)
	return true
}
