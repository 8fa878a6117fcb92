// Package viewstate restores a viewer's dashboard scroll position across
// page loads of the same browser session.
package viewstate

import (
	"context"
	"errors"
	"time"

	"vowboard.io/planner-gateway/app/infrastructure/cache"
)

// NarrowViewportWidth is the width below which positions are never restored.
const NarrowViewportWidth = 768

type SampleReason string

const (
	SampleInterval   SampleReason = "interval"
	SampleVisibility SampleReason = "visibility"
	SampleBlur       SampleReason = "blur"
)

var (
	ErrSessionRequired = errors.New("session id is required")
	ErrInvalidPosition = errors.New("scroll position cannot be negative")
	ErrUnknownReason   = errors.New("unknown sample reason")
)

type Position struct {
	Y         float64      `json:"y"`
	Reason    SampleReason `json:"reason"`
	SampledAt time.Time    `json:"sampled_at"`
}

type ScrollKeeper struct {
	cache cache.CacheService
	ttl   time.Duration
	clock cache.Clock
}

func NewScrollKeeper(cacheService cache.CacheService, ttl time.Duration, clock cache.Clock) *ScrollKeeper {
	if clock == nil {
		clock = cache.SystemClock{}
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &ScrollKeeper{cache: cacheService, ttl: ttl, clock: clock}
}

// Sample stores the latest position of the session.
func (k *ScrollKeeper) Sample(ctx context.Context, sessionID string, y float64, reason SampleReason) error {
	if sessionID == "" {
		return ErrSessionRequired
	}
	if y < 0 {
		return ErrInvalidPosition
	}
	switch reason {
	case SampleInterval, SampleVisibility, SampleBlur:
	default:
		return ErrUnknownReason
	}
	k.cache.Set(ctx, cache.ScrollPositionKey(sessionID), Position{Y: y, Reason: reason, SampledAt: k.clock.Now()}, k.ttl)
	return nil
}

// Restore answers at most once per page load, and never for narrow
// viewports.
func (k *ScrollKeeper) Restore(ctx context.Context, sessionID string, pageLoadID string, viewportWidth int) (Position, bool) {
	if sessionID == "" || pageLoadID == "" || viewportWidth < NarrowViewportWidth {
		return Position{}, false
	}
	restoredKey := cache.ScrollRestoredKey(sessionID, pageLoadID)
	var restored bool
	if k.cache.Get(ctx, restoredKey, &restored) {
		return Position{}, false
	}
	k.cache.Set(ctx, restoredKey, true, k.ttl)

	var pos Position
	if !k.cache.Get(ctx, cache.ScrollPositionKey(sessionID), &pos) {
		return Position{}, false
	}
	return pos, true
}
