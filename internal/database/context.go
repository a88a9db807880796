package database

import (
	"context"
	"time"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

// ContextKeyQueryTimeout allows a caller to override the store's default
// query timeout for a single call.
const ContextKeyQueryTimeout ContextKey = "db_query_timeout"

// WithQueryTimeout returns a context that carries a per-call query timeout.
func WithQueryTimeout(ctx context.Context, timeout time.Duration) context.Context {
	return context.WithValue(ctx, ContextKeyQueryTimeout, timeout)
}

// getTimeoutFromContext retrieves a timeout duration from the context or
// falls back to defaultTimeout, and returns a derived context bounded by it.
func getTimeoutFromContext(ctx context.Context, defaultTimeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := defaultTimeout
	if v, ok := ctx.Value(ContextKeyQueryTimeout).(time.Duration); ok && v > 0 {
		timeout = v
	}
	return context.WithTimeout(ctx, timeout)
}
