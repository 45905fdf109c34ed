package corpus

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
)

// Source yields entries one per line: documents or queries.
type Source interface {
	Lines(ctx context.Context) ([]string, error)
	Name() string
}

// FileSource reads a text file, one entry per line.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string {
	return "file:" + s.Path
}

func (s *FileSource) Lines(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrSourceUnavailable, apperrors.ExitSourceError,
			"opening %s: %v", s.Path, err)
	}
	defer f.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.Newf(apperrors.ErrSourceUnavailable, apperrors.ExitSourceError,
			"reading %s: %v", s.Path, err)
	}
	slog.Default().With("component", "corpus").Debug("source loaded",
		"source", s.Name(),
		"lines", len(lines),
	)
	return lines, nil
}

// Load reads src and builds a Corpus from its lines.
func Load(ctx context.Context, src Source) (*Corpus, error) {
	lines, err := src.Lines(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading corpus from %s: %w", src.Name(), err)
	}
	return New(lines), nil
}
