package viewstate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func newKeeper() (*ScrollKeeper, *fixedClock) {
	clock := &fixedClock{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewScrollKeeper(cache.NewMemoryCacheService(clock), time.Hour, clock), clock
}

func TestRestoreOncePerPageLoad(t *testing.T) {
	ctx := context.Background()
	keeper, _ := newKeeper()

	require.NoError(t, keeper.Sample(ctx, "s1", 420, SampleInterval))
	require.NoError(t, keeper.Sample(ctx, "s1", 640, SampleBlur))

	pos, ok := keeper.Restore(ctx, "s1", "load-1", 1280)
	require.True(t, ok)
	assert.Equal(t, 640.0, pos.Y)
	assert.Equal(t, SampleBlur, pos.Reason)

	_, ok = keeper.Restore(ctx, "s1", "load-1", 1280)
	assert.False(t, ok)

	_, ok = keeper.Restore(ctx, "s1", "load-2", 1280)
	assert.True(t, ok)
}

func TestRestoreSkipsNarrowViewports(t *testing.T) {
	ctx := context.Background()
	keeper, _ := newKeeper()
	require.NoError(t, keeper.Sample(ctx, "s1", 300, SampleVisibility))

	_, ok := keeper.Restore(ctx, "s1", "load-1", 767)
	assert.False(t, ok)

	// the narrow attempt did not use up the page load
	_, ok = keeper.Restore(ctx, "s1", "load-1", 768)
	assert.True(t, ok)
}

func TestRestoreAfterExpiry(t *testing.T) {
	ctx := context.Background()
	keeper, clock := newKeeper()
	require.NoError(t, keeper.Sample(ctx, "s1", 100, SampleInterval))

	clock.now = clock.now.Add(2 * time.Hour)
	_, ok := keeper.Restore(ctx, "s1", "load-1", 1024)
	assert.False(t, ok)
}

func TestSampleValidation(t *testing.T) {
	keeper, _ := newKeeper()
	ctx := context.Background()
	assert.ErrorIs(t, keeper.Sample(ctx, "", 1, SampleInterval), ErrSessionRequired)
	assert.ErrorIs(t, keeper.Sample(ctx, "s1", -1, SampleInterval), ErrInvalidPosition)
	assert.ErrorIs(t, keeper.Sample(ctx, "s1", 1, "scroll"), ErrUnknownReason)
}
