package ordering

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDragControllerLifecycle(t *testing.T) {
	ctx := context.Background()
	d := NewDragController()
	assert.Equal(t, Idle, d.State())

	require.NoError(t, d.Start("t1", "g1"))
	assert.Equal(t, Dragging, d.State())
	id, partition, ok := d.Source()
	assert.True(t, ok)
	assert.Equal(t, "t1", id)
	assert.Equal(t, "g1", partition)

	assert.ErrorIs(t, d.Start("t2", "g1"), ErrAlreadyDragging)

	var got DropEvent
	require.NoError(t, d.Drop(ctx, "t3", "g2", func(_ context.Context, e DropEvent) error {
		got = e
		return nil
	}))
	assert.Equal(t, DropEvent{SourceID: "t1", SourcePartition: "g1", TargetID: "t3", TargetPartition: "g2"}, got)
	assert.Equal(t, Idle, d.State())
}

func TestDragControllerReturnsToIdleOnError(t *testing.T) {
	d := NewDragController()
	require.NoError(t, d.Start("t1", ""))
	boom := errors.New("boom")
	err := d.Drop(context.Background(), "t2", "", func(context.Context, DropEvent) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Idle, d.State())
	_, _, ok := d.Source()
	assert.False(t, ok)
}

func TestDragControllerReturnsToIdleOnPanic(t *testing.T) {
	d := NewDragController()
	require.NoError(t, d.Start("t1", ""))
	assert.Panics(t, func() {
		_ = d.Drop(context.Background(), "t2", "", func(context.Context, DropEvent) error { panic("bad handler") })
	})
	assert.Equal(t, Idle, d.State())
}

func TestDragControllerCancel(t *testing.T) {
	d := NewDragController()
	d.Cancel()
	assert.Equal(t, Idle, d.State())

	require.NoError(t, d.Start("t1", ""))
	d.Cancel()
	assert.Equal(t, Idle, d.State())

	err := d.Drop(context.Background(), "t2", "", func(context.Context, DropEvent) error {
		t.Fatal("drop after cancel must not reorder")
		return nil
	})
	assert.ErrorIs(t, err, ErrNotDragging)
}

func TestDragControllerRejectsEmptySource(t *testing.T) {
	d := NewDragController()
	assert.ErrorIs(t, d.Start("", "g1"), ErrInvalidDrop)
	assert.Equal(t, Idle, d.State())
}
