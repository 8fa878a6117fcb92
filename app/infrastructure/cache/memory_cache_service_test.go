package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type task struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func newTestCache() (*MemoryCacheService, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewMemoryCacheService(clock), clock
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestCache()
	svc.Set(ctx, "tasks_W1", []task{{ID: "t1", Title: "Book venue"}}, 3000*time.Millisecond)

	clock.Advance(2999 * time.Millisecond)
	var got []task
	require.True(t, svc.Get(ctx, "tasks_W1", &got))
	assert.Equal(t, []task{{ID: "t1", Title: "Book venue"}}, got)

	clock.Advance(2 * time.Millisecond)
	got = nil
	assert.False(t, svc.Get(ctx, "tasks_W1", &got))
	assert.Nil(t, got)
	assert.Equal(t, 0, svc.Len(), "expired entry is evicted on read")
}

func TestMemoryCacheExpiresAtBoundary(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestCache()
	svc.Set(ctx, "k", "v", time.Second)
	clock.Advance(time.Second)

	var got string
	assert.False(t, svc.Get(ctx, "k", &got))
}

func TestMemoryCacheSetOverwrites(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestCache()
	svc.Set(ctx, "k", "first", time.Second)
	clock.Advance(900 * time.Millisecond)
	svc.Set(ctx, "k", "second", time.Second)
	clock.Advance(900 * time.Millisecond)

	var got string
	require.True(t, svc.Get(ctx, "k", &got))
	assert.Equal(t, "second", got)
}

func TestMemoryCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCache()
	svc.Set(ctx, "a", 1, time.Hour)
	svc.Set(ctx, "b", 2, time.Hour)

	svc.Invalidate(ctx, "a")
	var got int
	assert.False(t, svc.Get(ctx, "a", &got))

	t.Run("twice is a no-op", func(t *testing.T) {
		svc.Invalidate(ctx, "a")
		svc.Invalidate(ctx, "never-set")
		var b int
		require.True(t, svc.Get(ctx, "b", &b))
		assert.Equal(t, 2, b)
		assert.Equal(t, 1, svc.Len())
	})
}

func TestMemoryCacheInvalidatePrefix(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCache()
	svc.Set(ctx, "wedding_c1", 1, time.Hour)
	svc.Set(ctx, "wedding_id_w1", 2, time.Hour)
	svc.Set(ctx, "tasks_w1", 3, time.Hour)

	svc.InvalidatePrefix(ctx, "wedding_")
	assert.Equal(t, 1, svc.Len())
	var got int
	assert.True(t, svc.Get(ctx, "tasks_w1", &got))
}

func TestMemoryCacheReturnsSnapshots(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCache()
	original := []task{{ID: "t1", Title: "Cake tasting"}}
	svc.Set(ctx, "tasks_w1", original, time.Hour)
	original[0].Title = "mutated"

	var got []task
	require.True(t, svc.Get(ctx, "tasks_w1", &got))
	got[0].Title = "mutated again"

	var again []task
	require.True(t, svc.Get(ctx, "tasks_w1", &again))
	assert.Equal(t, "Cake tasting", again[0].Title)
}

func TestMemoryCachePurgeExpired(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestCache()
	svc.Set(ctx, "short", 1, time.Minute)
	svc.Set(ctx, "long", 2, time.Hour)
	clock.Advance(2 * time.Minute)

	assert.Equal(t, 1, svc.PurgeExpired(ctx))
	assert.Equal(t, 1, svc.Len())
}

func TestMemoryCacheGetWithFallback(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCache()
	calls := 0
	fallback := func() (any, error) {
		calls++
		return []task{{ID: "t9"}}, nil
	}

	var first, second []task
	require.NoError(t, svc.GetWithFallback(ctx, "tasks_w9", &first, fallback, time.Minute))
	require.NoError(t, svc.GetWithFallback(ctx, "tasks_w9", &second, fallback, time.Minute))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	var failed []task
	err := svc.GetWithFallback(ctx, "tasks_w10", &failed, func() (any, error) {
		return nil, errors.New("remote down")
	}, time.Minute)
	assert.Error(t, err)
	assert.False(t, svc.Get(ctx, "tasks_w10", &failed))
}

func TestNoOpCacheAlwaysMisses(t *testing.T) {
	ctx := context.Background()
	svc := &NoOpCacheService{}
	svc.Set(ctx, "k", "v", time.Hour)
	var got string
	assert.False(t, svc.Get(ctx, "k", &got))
	svc.Invalidate(ctx, "k")
	assert.Zero(t, svc.PurgeExpired(ctx))
}
