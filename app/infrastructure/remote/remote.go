// Package remote holds the repositories backed by the remote
// backend-as-a-service. Reads go through the cache; writes invalidate every
// key that may hold the written row.
//
// Cache keys are scoped by wedding or client, not by caller. A list is
// filled with the token and row-level security of whoever missed first and
// then served to every caller of the same scope, so access is enforced per
// wedding by the HTTP layer and never per row.
package remote

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"vowboard.io/planner-gateway/app/domain/ordering"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
	"vowboard.io/planner-gateway/app/infrastructure/supabase"
	"vowboard.io/planner-gateway/app/utils/logger"
)

// ReadThrough returns the cached value of key, or fetches, caches and
// returns it. Failed fetches are logged and never cached.
func ReadThrough[T any](ctx context.Context, c cache.CacheService, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var cached T
	if c.Get(ctx, key, &cached) {
		return cached, nil
	}
	value, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, LogError(ctx, "read "+key, err)
	}
	c.Set(ctx, key, value, ttl)
	return value, nil
}

// LogError logs a failed remote call and returns err unchanged.
func LogError(ctx context.Context, operation string, err error) error {
	if err == nil {
		return nil
	}
	entry := logger.GetLogger().WithField("operation", operation).WithError(err)
	var remoteErr *supabase.Error
	if errors.As(err, &remoteErr) {
		entry = entry.WithField("status", remoteErr.Status).WithField("code", remoteErr.Code)
	}
	entry.Error("remote call failed")
	return err
}

// OrderingError maps a missing ordering column to ordering.ErrOrderingUnsupported.
func OrderingError(err error) error {
	if supabase.IsMissingColumn(err) {
		return ordering.ErrOrderingUnsupported
	}
	return err
}
