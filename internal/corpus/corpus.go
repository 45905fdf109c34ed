// Package corpus holds the loaded document collection and the sources it is
// read from. Documents are identified by their 0-based position in the
// source and never change after loading.
package corpus

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
)

type Document struct {
	ID   int
	Text string
}

type Corpus struct {
	docs        []string
	fingerprint string
}

func New(lines []string) *Corpus {
	docs := make([]string, len(lines))
	copy(docs, lines)

	h := sha256.New()
	var size [8]byte
	for _, doc := range docs {
		binary.BigEndian.PutUint64(size[:], uint64(len(doc)))
		h.Write(size[:])
		h.Write([]byte(doc))
	}
	return &Corpus{
		docs:        docs,
		fingerprint: hex.EncodeToString(h.Sum(nil)),
	}
}

func (c *Corpus) Len() int {
	return len(c.docs)
}

// Texts returns the document texts in ID order.
func (c *Corpus) Texts() []string {
	out := make([]string, len(c.docs))
	copy(out, c.docs)
	return out
}

func (c *Corpus) Document(id int) (Document, error) {
	if id < 0 || id >= len(c.docs) {
		return Document{}, apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitFailure,
			"document %d out of range [0,%d)", id, len(c.docs))
	}
	return Document{ID: id, Text: c.docs[id]}, nil
}

// Subset maps each requested ID to its text.
func (c *Corpus) Subset(ids []int) (map[int]string, error) {
	out := make(map[int]string, len(ids))
	for _, id := range ids {
		doc, err := c.Document(id)
		if err != nil {
			return nil, fmt.Errorf("building subset: %w", err)
		}
		out[id] = doc.Text
	}
	return out, nil
}

// Fingerprint identifies the exact content of the corpus.
func (c *Corpus) Fingerprint() string {
	return c.fingerprint
}
