package corpus

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
)

type failingQuerier struct {
	query string
}

func (q *failingQuerier) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	q.query = query
	return nil, errors.New("connection refused")
}

func pgConfig() config.PostgresConfig {
	return config.PostgresConfig{Table: "documents", TextColumn: "body", OrderColumn: "id"}
}

func TestPostgresSource_Statement(t *testing.T) {
	src, err := NewPostgresSource(&failingQuerier{}, pgConfig())
	require.NoError(t, err)

	assert.Equal(t, `SELECT "body" FROM "documents" ORDER BY "id"`, src.statement())
	assert.Equal(t, "postgres:documents", src.Name())
}

func TestPostgresSource_RejectsBadIdentifiers(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*config.PostgresConfig)
	}{
		{"table", func(c *config.PostgresConfig) { c.Table = "documents; DROP TABLE x" }},
		{"text column", func(c *config.PostgresConfig) { c.TextColumn = "" }},
		{"order column", func(c *config.PostgresConfig) { c.OrderColumn = "1id" }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := pgConfig()
			tc.mutate(&cfg)

			_, err := NewPostgresSource(&failingQuerier{}, cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
			assert.Equal(t, apperrors.ExitUsage, apperrors.ExitCode(err))
		})
	}
}

func TestPostgresSource_QueryError(t *testing.T) {
	q := &failingQuerier{}
	src, err := NewPostgresSource(q, pgConfig())
	require.NoError(t, err)

	_, err = src.Lines(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
	assert.Equal(t, apperrors.ExitSourceError, apperrors.ExitCode(err))
	assert.Equal(t, src.statement(), q.query)
}
