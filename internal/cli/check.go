package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/postgres"
	pkgredis "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/redis"
)

func newCheckCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that the configured sources and integrations are reachable",
		Long: `Probes the document and query sources and every enabled integration
(Redis, Kafka) concurrently and prints a JSON report. Missing sources make
the check fail; unreachable integrations only degrade it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, root, nil)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			report := newChecker(cfg).Run(ctx)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return fmt.Errorf("writing health report: %w", err)
			}
			if report.Status == health.StatusDown {
				return apperrors.New(apperrors.ErrSourceUnavailable, apperrors.ExitSourceError,
					"one or more sources are unavailable")
			}
			return nil
		},
	}
}

func newChecker(cfg *config.Config) *health.Checker {
	checker := health.NewChecker()
	if cfg.Sources.DocsSource == "postgres" {
		checker.Register("docs", func(ctx context.Context) health.ComponentHealth {
			client, err := postgres.New(ctx, cfg.Postgres)
			if err != nil {
				return health.FromError(err, health.StatusDown)
			}
			defer client.Close()
			return health.ComponentHealth{Status: health.StatusUp, Message: "postgres:" + cfg.Postgres.Table}
		})
	} else {
		checker.Register("docs", fileCheck(cfg.Sources.Docs))
	}
	checker.Register("queries", fileCheck(cfg.Sources.Queries))

	if cfg.Redis.Enabled {
		checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
			client, err := pkgredis.NewClient(ctx, cfg.Redis)
			if err != nil {
				return health.FromError(err, health.StatusDegraded)
			}
			defer client.Close()
			return health.FromError(client.Ping(ctx), health.StatusDegraded)
		})
	}
	if cfg.Analytics.Enabled {
		checker.Register("kafka", func(ctx context.Context) health.ComponentHealth {
			return health.FromError(kafka.Ping(ctx, cfg.Kafka.Brokers), health.StatusDegraded)
		})
	}
	return checker
}

func fileCheck(path string) health.Check {
	return func(ctx context.Context) health.ComponentHealth {
		info, err := os.Stat(path)
		if err != nil {
			return health.FromError(err, health.StatusDown)
		}
		if info.IsDir() {
			return health.ComponentHealth{Status: health.StatusDown, Message: path + " is a directory"}
		}
		return health.ComponentHealth{Status: health.StatusUp, Message: path}
	}
}
