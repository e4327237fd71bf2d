package eventstore

import (
	"context"
	"errors"
)

// WithConflictRetry retries fn while it fails with a stream revision
// conflict. fn must re-load the aggregate on every attempt so each
// retry validates against the winning writer's state. Any other error
// stops immediately; after attempts exhaust, the conflict reaches the
// caller.
func WithConflictRetry(ctx context.Context, attempts int, fn func(context.Context) error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn(ctx)
		if err == nil || !errors.Is(err, ErrConflict) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}
