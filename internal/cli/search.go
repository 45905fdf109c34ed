package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/report"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/handler"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/metrics"
)

type searchOptions struct {
	docs       string
	queries    string
	format     string
	docsSource string
}

func newSearchCommand(root *rootOptions) *cobra.Command {
	opts := &searchOptions{}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run every query against the corpus and print ranked results",
		Long: `Indexes the documents, then for each query lists the documents containing
all of its terms, ranked by ascending angle to the query (smaller is more
relevant).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, root, opts.apply(cmd))
			if err != nil {
				return err
			}
			return runSearch(cmd, cfg)
		},
	}
	cmd.Flags().StringVar(&opts.docs, "docs", "", "documents file, one document per line")
	cmd.Flags().StringVar(&opts.queries, "queries", "", "queries file, one query per line")
	cmd.Flags().StringVar(&opts.format, "format", "", "report format: text or json")
	cmd.Flags().StringVar(&opts.docsSource, "docs-source", "", "where documents are read from: file or postgres")
	return cmd
}

func (o *searchOptions) apply(cmd *cobra.Command) func(*config.Config) {
	return func(cfg *config.Config) {
		flags := cmd.Flags()
		if flags.Changed("docs") {
			cfg.Sources.Docs = o.docs
		}
		if flags.Changed("queries") {
			cfg.Sources.Queries = o.queries
		}
		if flags.Changed("format") {
			cfg.Search.Format = o.format
		}
		if flags.Changed("docs-source") {
			cfg.Sources.DocsSource = o.docsSource
		}
	}
}

func runSearch(cmd *cobra.Command, cfg *config.Config) error {
	start := time.Now()
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := slog.Default().With("component", "search-cli")

	docsSrc, closeSrc, err := openDocsSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	var docs *corpus.Corpus
	var queries []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		docs, err = corpus.Load(gctx, docsSrc)
		return err
	})
	g.Go(func() error {
		var err error
		queries, err = corpus.NewFileSource(cfg.Sources.Queries).Lines(gctx)
		if err != nil {
			return fmt.Errorf("loading queries: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	idx := index.Build(docs.Texts())
	m := metrics.New()
	m.DocsIndexedTotal.Add(float64(idx.DocCount()))
	m.IndexTerms.Set(float64(idx.Len()))
	log.Info("index built", "documents", idx.DocCount(), "terms", idx.Len(), "queries", len(queries))

	if cfg.Metrics.Enabled {
		shutdown := m.StartServer(cfg.Metrics.Port)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Error("metrics server shutdown error", "error", err)
			}
		}()
	}

	queryCache, closeCache := openCache(ctx, cfg)
	defer closeCache()
	tracker, closeCollector := openCollector(ctx, cfg, m)
	defer closeCollector()

	h := handler.New(executor.New(idx, docs), queryCache, tracker, m)
	w, err := report.NewWriter(cmd.OutOrStdout(), cfg.Search.Format)
	if err != nil {
		return err
	}

	if err := w.WriteHeader(idx.Len()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	failed := 0
	for i, query := range queries {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("search interrupted after %d queries: %w", i, err)
		}
		qctx := logger.WithQueryID(ctx, i+1)
		result, err := h.Search(qctx, query)
		if err != nil {
			failed++
			logger.FromContext(qctx).Error("query failed, continuing", "query", query, "error", err)
			continue
		}
		if err := w.WriteResult(result); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	closeCollector()

	if cfg.Metrics.Textfile != "" {
		if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Warn("metrics textfile not written", "error", err)
		}
	}
	log.Info("search run finished", "queries", len(queries), "failed", failed, "elapsed", time.Since(start))
	if err := w.WriteFooter(time.Since(start)); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
