package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/report"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/config"
)

type indexOptions struct {
	docs       string
	docsSource string
}

func newIndexCommand(root *rootOptions) *cobra.Command {
	opts := &indexOptions{}
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Print the inverted index: each term with the documents containing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, root, func(cfg *config.Config) {
				if cmd.Flags().Changed("docs") {
					cfg.Sources.Docs = opts.docs
				}
				if cmd.Flags().Changed("docs-source") {
					cfg.Sources.DocsSource = opts.docsSource
				}
			})
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			src, closeSrc, err := openDocsSource(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeSrc()
			docs, err := corpus.Load(ctx, src)
			if err != nil {
				return err
			}

			idx := index.Build(docs.Texts())
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "Words in the dictionary:\t%d\n\n", idx.Len()); err != nil {
				return err
			}
			return report.WriteIndex(out, idx.Snapshot())
		},
	}
	cmd.Flags().StringVar(&opts.docs, "docs", "", "documents file, one document per line")
	cmd.Flags().StringVar(&opts.docsSource, "docs-source", "", "where documents are read from: file or postgres")
	return cmd
}
