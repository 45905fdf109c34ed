package cli

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/handler"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/postgres"
	pkgredis "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/redis"
)

func noop() {}

// openDocsSource returns the configured document source and a function
// releasing whatever it holds open.
func openDocsSource(ctx context.Context, cfg *config.Config) (corpus.Source, func(), error) {
	if cfg.Sources.DocsSource != "postgres" {
		return corpus.NewFileSource(cfg.Sources.Docs), noop, nil
	}
	client, err := postgres.New(ctx, cfg.Postgres)
	if err != nil {
		return nil, noop, apperrors.Newf(apperrors.ErrSourceUnavailable, apperrors.ExitSourceError,
			"connecting to postgres: %v", err)
	}
	src, err := corpus.NewPostgresSource(client.DB, cfg.Postgres)
	if err != nil {
		client.Close()
		return nil, noop, err
	}
	return src, func() { client.Close() }, nil
}

// openCache connects the result cache. A nil cache means caching is off,
// either by configuration or because Redis could not be reached.
func openCache(ctx context.Context, cfg *config.Config) (*cache.QueryCache, func()) {
	if !cfg.Redis.Enabled {
		return nil, noop
	}
	client, err := pkgredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		slog.Warn("redis unavailable, search caching disabled", "error", err)
		return nil, noop
	}
	slog.Info("search cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
	return cache.New(client, cfg.Redis.CacheTTL), func() { client.Close() }
}

// openCollector starts the analytics collector. The returned tracker is nil
// when analytics is off. The close function may be called more than once.
func openCollector(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (handler.Tracker, func()) {
	if !cfg.Analytics.Enabled {
		return nil, noop
	}
	if err := kafka.Ping(ctx, cfg.Kafka.Brokers); err != nil {
		slog.Warn("kafka unavailable, analytics disabled", "error", err)
		return nil, noop
	}
	topic := cfg.Kafka.Topics.AnalyticsEvents
	producer := kafka.NewProducer(cfg.Kafka, topic)
	collector := analytics.NewCollector(producer, cfg.Analytics.BufferSize,
		analytics.WithOnDrop(m.EventsDroppedTotal.Inc),
	)
	collector.Start(ctx)
	var once sync.Once
	return collector, func() {
		once.Do(func() {
			collector.Close()
			if err := producer.Close(); err != nil {
				slog.Warn("closing kafka producer", "error", err)
			}
		})
	}
}
