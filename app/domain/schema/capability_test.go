package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
)

type fakeChecker struct {
	columns map[string]bool
	errs    map[string]error
	calls   int
}

func (f *fakeChecker) HasColumn(ctx context.Context, table string, column string) (bool, error) {
	f.calls++
	if err := f.errs[table]; err != nil {
		return false, err
	}
	return f.columns[table], nil
}

func TestCapabilityRefresh(t *testing.T) {
	checker := &fakeChecker{
		columns: map[string]bool{TasksCollection: true, DocumentsCollection: false},
		errs:    map[string]error{TaskGroupsCollection: errors.New("timeout")},
	}
	svc := NewCapabilityService(checker, cache.NewMemoryCacheService(nil))

	assert.True(t, svc.OrderingSupported(DocumentsCollection), "unknown before the first check")

	svc.Refresh(context.Background())
	assert.True(t, svc.OrderingSupported(TasksCollection))
	assert.False(t, svc.OrderingSupported(DocumentsCollection))
	assert.True(t, svc.OrderingSupported(TaskGroupsCollection), "failed check assumes support")
	assert.Equal(t, map[string]bool{
		TasksCollection:      true,
		DocumentsCollection:  false,
		TaskGroupsCollection: true,
	}, svc.Snapshot())
}

func TestCapabilityLoadReusesCachedFlags(t *testing.T) {
	shared := cache.NewMemoryCacheService(nil)
	first := &fakeChecker{columns: map[string]bool{TasksCollection: true}}
	NewCapabilityService(first, shared).Load(context.Background())
	assert.Equal(t, 3, first.calls)

	second := &fakeChecker{}
	svc := NewCapabilityService(second, shared)
	svc.Load(context.Background())
	assert.Zero(t, second.calls)
	assert.False(t, svc.OrderingSupported(DocumentsCollection))
}

func TestMarkUnsupported(t *testing.T) {
	svc := NewCapabilityService(&fakeChecker{}, &cache.NoOpCacheService{})
	svc.MarkUnsupported(TasksCollection)
	assert.False(t, svc.OrderingSupported(TasksCollection))
}
