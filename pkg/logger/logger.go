// Package logger configures the process-wide slog handler. Logs go to
// stderr so that stdout stays reserved for search reports.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type contextKey struct{}

// Setup installs the default slog logger on stderr.
func Setup(level string, format string) {
	SetupWriter(os.Stderr, level, format)
}

// SetupWriter installs the default slog logger on w.
func SetupWriter(w io.Writer, level string, format string) {
	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// WithQueryID tags ctx with the ordinal of the query being processed.
func WithQueryID(ctx context.Context, queryID int) context.Context {
	return context.WithValue(ctx, contextKey{}, queryID)
}

func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()
	if queryID, ok := ctx.Value(contextKey{}).(int); ok {
		logger = logger.With("query_id", queryID)
	}
	return logger
}

func WithComponent(component string) *slog.Logger {
	return slog.Default().With("component", component)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
