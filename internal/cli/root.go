// Package cli implements the docsearch command line.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/logger"
)

type rootOptions struct {
	configPath string
}

// NewRootCommand assembles the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "docsearch",
		Short: "Search a line-per-document corpus",
		Long: `docsearch builds an inverted index over a corpus with one document per
line, finds the documents that contain every term of each query, and ranks
them by the angle between the document and query term-count vectors.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config file")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperrors.New(apperrors.ErrInvalidInput, apperrors.ExitUsage, err.Error())
	})

	root.AddCommand(
		newSearchCommand(opts),
		newIndexCommand(opts),
		newCheckCommand(opts),
		newCacheCommand(opts),
	)
	return root
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	root := NewRootCommand()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return apperrors.ExitCode(err)
	}
	return apperrors.ExitOK
}

// loadConfig reads the config file, applies flag overrides through apply,
// and installs the logger on the command's error stream.
func loadConfig(cmd *cobra.Command, opts *rootOptions, apply func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		if apperrors.ExitCode(err) == apperrors.ExitFailure {
			return nil, apperrors.Newf(apperrors.ErrInvalidConfig, apperrors.ExitUsage, "%v", err)
		}
		return nil, err
	}
	if apply != nil {
		apply(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	logger.SetupWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}
