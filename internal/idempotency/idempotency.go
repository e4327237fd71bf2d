package idempotency

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// WithKey attaches the caller-supplied idempotency key to the
// context. The guest booking saga uses it to resume a previous
// attempt instead of re-running completed steps.
func WithKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, ctxKey{}, key)
}

// GetKey returns the key from the context, or a fresh one when the
// caller supplied none. A fresh key means retries are NOT linked to
// this attempt.
func GetKey(ctx context.Context) string {
	key, ok := ctx.Value(ctxKey{}).(string)
	if !ok || key == "" {
		return uuid.NewString()
	}
	return key
}
