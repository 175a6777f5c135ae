package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type contextKey struct{}

// FromContext returns the logger attached to ctx, or the default logger.
// Commands attach one carrying the command name; the runner and the
// configuration loader log through it.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(contextKey{}).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// With returns a context whose logger adds keyvals to every entry.
func With(ctx context.Context, keyvals ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(keyvals...))
}
