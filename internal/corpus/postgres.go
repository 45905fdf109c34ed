package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/lib/pq"

	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Querier is the subset of *sql.DB used by PostgresSource.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// PostgresSource reads documents from a table, one row per document,
// ordered by cfg.OrderColumn.
//
//	CREATE TABLE documents (
//	    id   BIGSERIAL PRIMARY KEY,
//	    body TEXT NOT NULL
//	);
type PostgresSource struct {
	db     Querier
	cfg    config.PostgresConfig
	logger *slog.Logger
}

func NewPostgresSource(db Querier, cfg config.PostgresConfig) (*PostgresSource, error) {
	for _, ident := range []string{cfg.Table, cfg.TextColumn, cfg.OrderColumn} {
		if !identifierRe.MatchString(ident) {
			return nil, apperrors.Newf(apperrors.ErrInvalidConfig, apperrors.ExitUsage,
				"invalid postgres identifier %q", ident)
		}
	}
	return &PostgresSource{
		db:     db,
		cfg:    cfg,
		logger: slog.Default().With("component", "postgres-source"),
	}, nil
}

func (s *PostgresSource) Name() string {
	return "postgres:" + s.cfg.Table
}

func (s *PostgresSource) statement() string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		pq.QuoteIdentifier(s.cfg.TextColumn),
		pq.QuoteIdentifier(s.cfg.Table),
		pq.QuoteIdentifier(s.cfg.OrderColumn),
	)
}

func (s *PostgresSource) Lines(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.statement())
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrSourceUnavailable, apperrors.ExitSourceError,
			"querying %s: %v", s.cfg.Table, err)
	}
	defer rows.Close()

	lines := make([]string, 0)
	for rows.Next() {
		var text sql.NullString
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		lines = append(lines, text.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating document rows: %w", err)
	}
	s.logger.Info("documents loaded", "table", s.cfg.Table, "count", len(lines))
	return lines, nil
}
