package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessorsDefaults(t *testing.T) {
	ctx := context.Background()
	assert.Zero(t, UserID(ctx))
	assert.Empty(t, RequestID(ctx))
	assert.Empty(t, Actor(ctx))
	assert.WithinDuration(t, time.Now(), Now(ctx), time.Second)
}

func TestAccessorsRoundTrip(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ctx := WithUserID(context.Background(), 42)
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithActor(ctx, "moderator@beta.gouv.fr")
	ctx = WithTime(ctx, fixed)

	assert.Equal(t, int64(42), UserID(ctx))
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, "moderator@beta.gouv.fr", Actor(ctx))
	assert.Equal(t, fixed, Now(ctx))
}
