package logs

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	traceKey
)

// WithLogger returns a context carrying the given logger.
func WithLogger(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext returns the logger stored in ctx, or NopLogger when none is set.
func FromContext(ctx context.Context) Logger {
	if log, ok := ctx.Value(loggerKey).(Logger); ok {
		return log
	}
	return NopLogger{}
}

// WithTraceID attaches a new trace id to the context unless one is already
// present.
func WithTraceID(ctx context.Context) context.Context {
	if TraceID(ctx) != "" {
		return ctx
	}
	return context.WithValue(ctx, traceKey, uuid.NewString())
}

// TraceID returns the trace id stored in ctx, or the empty string.
func TraceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceKey).(string); ok {
		return id
	}
	return ""
}
