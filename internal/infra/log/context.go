package logs

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	keyLogger        contextKey = "logger"
	keyCorrelationID contextKey = "correlation_id"
)

// WithLogger returns a new context carrying a request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// FromContext returns the request-scoped logger, or fallback when none is set.
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(keyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

// WithCorrelationID attaches an identifier to the context and to the context's logger.
func WithCorrelationID(ctx context.Context, base *slog.Logger, id string) context.Context {
	ctx = context.WithValue(ctx, keyCorrelationID, id)

	return WithLogger(ctx, FromContext(ctx, base).With(slog.String("correlation_id", id)))
}

// CorrelationID returns the identifier set by WithCorrelationID, or "".
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(keyCorrelationID).(string)

	return id
}
