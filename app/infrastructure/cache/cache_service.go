package cache

import (
	"context"
	"time"
)

// CacheService defines the interface for cache operations.
//
// Lookups never fail: a missing key, an expired entry and a backend error all
// read as "absent".
type CacheService interface {
	// Get decodes the cached value into dest and reports whether it was present
	Get(ctx context.Context, key string, dest any) bool

	// Set stores value under key for ttl, overwriting any existing entry
	Set(ctx context.Context, key string, value any, ttl time.Duration)

	// GetWithFallback reads key, or runs fallback and caches its result on a miss
	GetWithFallback(ctx context.Context, key string, dest any, fallback func() (any, error), ttl time.Duration) error

	// Invalidate removes keys regardless of their expiry state
	Invalidate(ctx context.Context, keys ...string)

	// InvalidatePrefix removes every key starting with prefix
	InvalidatePrefix(ctx context.Context, prefix string)

	// PurgeExpired drops expired entries and returns how many were dropped
	PurgeExpired(ctx context.Context) int

	// HealthCheck verifies cache connectivity
	HealthCheck(ctx context.Context) error

	// Close closes the cache connection
	Close() error
}

// Clock abstracts time for expiry decisions.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
