package ordering

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id        string
	group     string
	order     *int
	createdAt time.Time
}

var itemAccessor = Accessor[*item]{
	ID:           func(i *item) string { return i.id },
	Partition:    func(i *item) string { return i.group },
	Order:        func(i *item) *int { return i.order },
	CreatedAt:    func(i *item) time.Time { return i.createdAt },
	SetOrder:     func(i *item, o int) { i.order = &o },
	SetPartition: func(i *item, p string) { i.group = p },
}

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func ordered(group string, ids ...string) []*item {
	items := make([]*item, len(ids))
	for i, id := range ids {
		o := i
		items[i] = &item{id: id, group: group, order: &o, createdAt: epoch.Add(time.Duration(i) * time.Hour)}
	}
	return items
}

func ids(items []*item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

func TestSortPutsUnorderedLastNewestFirst(t *testing.T) {
	o0, o1 := 0, 1
	items := []*item{
		{id: "old", createdAt: epoch},
		{id: "second", order: &o1},
		{id: "new", createdAt: epoch.Add(time.Hour)},
		{id: "first", order: &o0},
	}
	Sort(items, itemAccessor)
	assert.Equal(t, []string{"first", "second", "new", "old"}, ids(items))
}

func TestSortHandlesExtremeOrders(t *testing.T) {
	lo, hi, mid := math.MinInt, math.MaxInt, 0
	items := []*item{
		{id: "hi", order: &hi},
		{id: "lo", order: &lo},
		{id: "mid", order: &mid},
	}
	Sort(items, itemAccessor)
	assert.Equal(t, []string{"lo", "mid", "hi"}, ids(items))
}

func TestMoveWithinPartitionRenumbersDensely(t *testing.T) {
	const n = 5
	for from := 0; from < n; from++ {
		for to := 0; to < n; to++ {
			if from == to {
				continue
			}
			t.Run(fmt.Sprintf("%d->%d", from, to), func(t *testing.T) {
				group := ordered("g1", "a", "b", "c", "d", "e")
				other := ordered("g2", "x", "y")
				// sparse orders must still renumber densely
				for i, it := range group {
					o := i * 10
					it.order = &o
				}
				all := append(append([]*item{}, group...), other...)
				dragged, target := group[from].id, group[to].id

				plan, ok := Move(all, itemAccessor, dragged, target, "g1")
				require.True(t, ok)

				var moved []*item
				for _, it := range plan.Items {
					if it.group == "g1" {
						moved = append(moved, it)
					}
				}
				require.Len(t, moved, n)
				assert.Equal(t, dragged, moved[to].id)
				for i, it := range moved {
					assert.Equal(t, i, *it.order)
				}
				assert.Len(t, plan.Changes, n)
				for _, c := range plan.Changes {
					assert.Equal(t, "g1", c.Partition)
					assert.False(t, c.PartitionChanged)
				}
				assert.Equal(t, 0, *other[0].order)
				assert.Equal(t, 1, *other[1].order)
			})
		}
	}
}

func TestMoveAcrossPartitions(t *testing.T) {
	all := append(ordered("", "a", "b", "c"), ordered("g1", "x", "y")...)

	plan, ok := Move(all, itemAccessor, "b", "y", "g1")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "c", "x", "b", "y"}, ids(plan.Items))
	assert.Equal(t, "g1", all[1].group)

	byID := map[string]Change{}
	for _, c := range plan.Changes {
		byID[c.ID] = c
	}
	assert.Len(t, byID, 5)
	assert.Equal(t, Change{ID: "b", Order: 1, Partition: "g1", PartitionChanged: true}, byID["b"])
	assert.Equal(t, Change{ID: "c", Order: 1, Partition: ""}, byID["c"])
	assert.Equal(t, Change{ID: "y", Order: 2, Partition: "g1"}, byID["y"])
}

func TestMoveToEndOfEmptyPartition(t *testing.T) {
	all := ordered("", "a", "b")
	plan, ok := Move(all, itemAccessor, "a", "", "g9")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, ids(plan.Items))
	assert.Equal(t, "g9", all[0].group)
	assert.Equal(t, 0, *all[0].order)
}

func TestMoveNoOps(t *testing.T) {
	all := ordered("", "a", "b", "c")

	_, ok := Move(all, itemAccessor, "b", "b", "")
	assert.False(t, ok, "same identity")

	_, ok = Move(all, itemAccessor, "c", "", "")
	assert.False(t, ok, "last item dropped at the end of its own partition")

	_, ok = Move(all, itemAccessor, "missing", "a", "")
	assert.False(t, ok)

	_, ok = Move(all, itemAccessor, "a", "missing", "")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b", "c"}, ids(all))
	for i, it := range all {
		assert.Equal(t, i, *it.order)
	}
}

func TestPersistOutcomes(t *testing.T) {
	ctx := context.Background()
	changes := []Change{{ID: "a", Order: 0}, {ID: "b", Order: 1}, {ID: "c", Order: 2}}

	t.Run("applied", func(t *testing.T) {
		var calls atomic.Int32
		outcome, err := Persist(ctx, changes, func(context.Context, Change) error {
			calls.Add(1)
			return nil
		}, PersistOptions{Collection: "tasks", Supported: true})
		require.NoError(t, err)
		assert.Equal(t, OutcomeApplied, outcome)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("capability says unsupported", func(t *testing.T) {
		outcome, err := Persist(ctx, changes, func(context.Context, Change) error {
			t.Fatal("no remote call expected")
			return nil
		}, PersistOptions{Collection: "documents", Supported: false})
		require.NoError(t, err)
		assert.Equal(t, OutcomeDegraded, outcome)
	})

	t.Run("missing column at write time", func(t *testing.T) {
		schemaErr := errors.New("undefined column")
		outcome, err := Persist(ctx, changes, func(context.Context, Change) error {
			return schemaErr
		}, PersistOptions{Supported: true, Unsupported: func(err error) bool { return err == schemaErr }})
		require.NoError(t, err)
		assert.Equal(t, OutcomeDegraded, outcome)
	})

	t.Run("partial failure waits for all", func(t *testing.T) {
		var calls atomic.Int32
		boom := errors.New("boom")
		outcome, err := Persist(ctx, changes, func(_ context.Context, c Change) error {
			calls.Add(1)
			if c.ID == "b" {
				return boom
			}
			return nil
		}, PersistOptions{Supported: true})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, OutcomeFailed, outcome)
		assert.Equal(t, int32(3), calls.Load())
	})
}
