package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/cache"
	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
	pkgredis "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/redis"
)

func newCacheCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the Redis result cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "flush",
		Short: "Delete every cached search result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, root, nil)
			if err != nil {
				return err
			}
			client, err := pkgredis.NewClient(cmd.Context(), cfg.Redis)
			if err != nil {
				return apperrors.Newf(apperrors.ErrSourceUnavailable, apperrors.ExitSourceError,
					"connecting to redis at %s: %v", cfg.Redis.Addr, err)
			}
			defer client.Close()

			deleted, err := cache.New(client, cfg.Redis.CacheTTL).Invalidate(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d cached results\n", deleted)
			return err
		},
	})
	return cmd
}
