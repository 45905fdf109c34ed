// Package report renders search results for the terminal. Document IDs are
// printed 1-based; everything inside the engine is 0-based.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/executor"
	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

const noResults = "No relevant documents found!"

// Writer prints a run's report in one format. Text mode prints a
// dictionary-size header, one block per query and an elapsed-time footer.
// JSON mode prints one object per query and nothing else.
type Writer struct {
	out    io.Writer
	format string
	enc    *json.Encoder
}

type jsonResult struct {
	Query    string       `json:"query"`
	Relevant []int        `json:"relevant"`
	Ranked   []jsonRanked `json:"ranked"`
}

type jsonRanked struct {
	DocID int     `json:"doc_id"`
	Angle float64 `json:"angle"`
}

func NewWriter(out io.Writer, format string) (*Writer, error) {
	switch format {
	case FormatText, FormatJSON:
	default:
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitUsage,
			"unknown report format %q", format)
	}
	return &Writer{out: out, format: format, enc: json.NewEncoder(out)}, nil
}

func (w *Writer) WriteHeader(dictionarySize int) error {
	if w.format != FormatText {
		return nil
	}
	_, err := fmt.Fprintf(w.out, "Words in the dictionary:\t%d\n\n", dictionarySize)
	return err
}

func (w *Writer) WriteResult(result *executor.SearchResult) error {
	if w.format == FormatJSON {
		return w.writeJSON(result)
	}
	return w.writeText(result)
}

func (w *Writer) WriteFooter(elapsed time.Duration) error {
	if w.format != FormatText {
		return nil
	}
	_, err := fmt.Fprintf(w.out, "--- %s seconds ---\n", strconv.FormatFloat(elapsed.Seconds(), 'f', -1, 64))
	return err
}

func (w *Writer) writeText(result *executor.SearchResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Query:\t%s\n", result.Query)
	b.WriteString("Relevant Documents:\t")
	for i, id := range result.Relevant {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(id + 1))
	}
	b.WriteByte('\n')
	if !result.Found() {
		b.WriteString(noResults + "\n")
	}
	for _, doc := range result.Results {
		fmt.Fprintf(&b, "%d \t %.2f\n", doc.DocID+1, doc.Angle)
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w.out, b.String())
	return err
}

func (w *Writer) writeJSON(result *executor.SearchResult) error {
	out := jsonResult{
		Query:    result.Query,
		Relevant: make([]int, len(result.Relevant)),
		Ranked:   make([]jsonRanked, len(result.Results)),
	}
	for i, id := range result.Relevant {
		out.Relevant[i] = id + 1
	}
	for i, doc := range result.Results {
		out.Ranked[i] = jsonRanked{DocID: doc.DocID + 1, Angle: doc.Angle}
	}
	if err := w.enc.Encode(out); err != nil {
		return fmt.Errorf("encoding result for %q: %w", result.Query, err)
	}
	return nil
}

// WriteIndex prints every term with the 1-based IDs of the documents that
// contain it, terms in lexicographic order.
func WriteIndex(out io.Writer, entries []index.TermEntry) error {
	for _, entry := range entries {
		ids := make([]string, len(entry.Postings))
		for i, id := range entry.Postings {
			ids[i] = strconv.Itoa(id + 1)
		}
		if _, err := fmt.Fprintf(out, "%s | %s\n", entry.Term, strings.Join(ids, " ")); err != nil {
			return err
		}
	}
	return nil
}
