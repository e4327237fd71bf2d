package idempotency

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyRoundTrip(t *testing.T) {
	ctx := WithKey(context.Background(), "order-42")
	assert.Equal(t, "order-42", GetKey(ctx))
}

func TestMissingKeyGetsFreshOne(t *testing.T) {
	ctx := context.Background()

	first := GetKey(ctx)
	second := GetKey(ctx)
	require.NotEmpty(t, first)

	// Without a caller-supplied key every read is a new attempt.
	assert.NotEqual(t, first, second)
}

func TestEmptyKeyIsTreatedAsMissing(t *testing.T) {
	ctx := WithKey(context.Background(), "")
	assert.NotEmpty(t, GetKey(ctx))
}
