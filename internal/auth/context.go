package auth

import (
	"context"

	"github.com/google/uuid"
)

// Context is the verified identity of the caller, threaded explicitly
// through service calls rather than read from ambient state.
type Context struct {
	UserID  uuid.UUID
	Name    string
	Email   string
	IsAdmin bool
}

type contextKey struct{}

// WithContext attaches the caller identity to a request context.
func WithContext(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

// FromContext extracts the caller identity. The second return is false for
// unauthenticated requests.
func FromContext(ctx context.Context) (Context, bool) {
	ac, ok := ctx.Value(contextKey{}).(Context)
	return ac, ok
}
