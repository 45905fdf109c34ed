package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Search.Format)
	assert.Equal(t, "docs.txt", cfg.Sources.Docs)
	assert.Equal(t, "queries.txt", cfg.Sources.Queries)
	assert.Equal(t, "file", cfg.Sources.DocsSource)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Analytics.Enabled)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Redis.CacheTTL)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsearch.yaml")
	yamlDoc := `
search:
  format: json
sources:
  docs: corpus/docs.txt
redis:
  enabled: true
  cacheTTL: 30s
postgres:
  table: articles
`
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Search.Format)
	assert.Equal(t, "corpus/docs.txt", cfg.Sources.Docs)
	assert.Equal(t, "queries.txt", cfg.Sources.Queries)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, "articles", cfg.Postgres.Table)
	assert.Equal(t, "body", cfg.Postgres.TextColumn)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DS_SOURCES_QUERIES", "q.txt")
	t.Setenv("DS_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("DS_METRICS_PORT", "9191")
	t.Setenv("DS_REDIS_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "q.txt", cfg.Sources.Queries)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 9191, cfg.Metrics.Port)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_InvalidFormat(t *testing.T) {
	t.Setenv("DS_SEARCH_FORMAT", "xml")

	_, err := Load("")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	assert.Equal(t, apperrors.ExitUsage, apperrors.ExitCode(err))
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "d", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=d sslmode=disable", p.DSN())
}
