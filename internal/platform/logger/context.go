package logger

import (
	"context"
	"log/slog"
)

// loggerContextKey is an unexported type for the context key to avoid
// collisions with keys defined in other packages.
type loggerContextKey struct{}

// WithLogger returns a new context carrying the provided logger.
// Panics if logger is nil: storing a nil logger would turn every
// downstream FromContext call into a latent nil dereference.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// FromContext retrieves the logger stored in the context, or nil if the
// context carries none.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	if logger, ok := ctx.Value(loggerContextKey{}).(*slog.Logger); ok {
		return logger
	}
	return nil
}

// FromContextOrDefault retrieves the logger from the context, falling back
// to the provided default when the context carries none. Handlers use this
// so request-scoped attributes (trace IDs) follow the request while code
// without a request still logs through the component logger.
func FromContextOrDefault(ctx context.Context, defaultLogger *slog.Logger) *slog.Logger {
	if logger := FromContext(ctx); logger != nil {
		return logger
	}
	if defaultLogger != nil {
		return defaultLogger
	}
	return slog.Default()
}
