package cache

import (
	"context"
	"fmt"
	"time"
)

// NoOpCacheService provides a no-operation cache service for graceful degradation
type NoOpCacheService struct{}

// Get always reports a miss
func (n *NoOpCacheService) Get(ctx context.Context, key string, dest any) bool {
	return false
}

// Set is a no-op implementation
func (n *NoOpCacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) {}

// GetWithFallback always executes the fallback function
func (n *NoOpCacheService) GetWithFallback(ctx context.Context, key string, dest any, fallback func() (any, error), ttl time.Duration) error {
	value, err := fallback()
	if err != nil {
		return fmt.Errorf("fallback function failed: %w", err)
	}
	return copyInto(value, dest)
}

// Invalidate is a no-op implementation
func (n *NoOpCacheService) Invalidate(ctx context.Context, keys ...string) {}

// InvalidatePrefix is a no-op implementation
func (n *NoOpCacheService) InvalidatePrefix(ctx context.Context, prefix string) {}

// PurgeExpired is a no-op implementation
func (n *NoOpCacheService) PurgeExpired(ctx context.Context) int {
	return 0
}

// HealthCheck always returns nil (healthy)
func (n *NoOpCacheService) HealthCheck(ctx context.Context) error {
	return nil
}

// Close is a no-op implementation
func (n *NoOpCacheService) Close() error {
	return nil
}
