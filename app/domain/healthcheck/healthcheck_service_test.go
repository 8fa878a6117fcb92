package healthcheck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
)

type stubChecker struct{ err error }

func (s stubChecker) HasColumn(context.Context, string, string) (bool, error) {
	return s.err == nil, s.err
}

func TestCheckRecordsStatus(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCacheService(cache.SystemClock{})

	hs := NewService(mem, stubChecker{})
	assert.True(t, hs.Check(ctx).Healthy())
	assert.True(t, hs.Status().Healthy())

	hs = NewService(mem, stubChecker{err: errors.New("dial tcp: refused")})
	status := hs.Check(ctx)
	assert.True(t, status.Cache)
	assert.False(t, status.Remote)
	assert.False(t, hs.Status().Healthy())
}
