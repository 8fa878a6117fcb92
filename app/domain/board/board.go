// Package board keeps the local, optimistically updated copy of an ordered
// collection (the state a dashboard renders) and reconciles it with the
// remote source of truth.
package board

import (
	"context"
	"fmt"
	"sync"

	"vowboard.io/planner-gateway/app/domain/optimistic"
	"vowboard.io/planner-gateway/app/domain/ordering"
	"vowboard.io/planner-gateway/app/utils/logger"
)

// Source is the remote side of a board. scope identifies the collection
// instance, e.g. a wedding id.
type Source[T any] interface {
	Load(ctx context.Context, scope string) ([]T, error)
	UpdateOrder(ctx context.Context, scope string, change ordering.Change) error
	UpdatePartition(ctx context.Context, scope string, id string, partition string) (T, error)
}

type Capabilities interface {
	OrderingSupported(collection string) bool
	MarkUnsupported(collection string)
}

type Config[T any] struct {
	Collection   string
	Accessor     ordering.Accessor[T]
	Clone        func(T) T
	Empty        func(T) bool
	Source       Source[T]
	Capabilities Capabilities
}

type Result struct {
	Changed bool
	Outcome ordering.Outcome
}

// Board is shared by everyone looking at the same scope. Items are common;
// each viewer has a drag controller of its own.
type Board[T any] struct {
	cfg   *Config[T]
	scope string

	mu     sync.Mutex
	items  []T
	loaded bool
	drags  map[string]*ordering.DragController
}

func newBoard[T any](cfg *Config[T], scope string) *Board[T] {
	return &Board[T]{
		cfg:   cfg,
		scope: scope,
		drags: make(map[string]*ordering.DragController),
	}
}

func (b *Board[T]) Scope() string {
	return b.scope
}

func (b *Board[T]) drag(viewer string) *ordering.DragController {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.drags[viewer]
	if !ok {
		d = ordering.NewDragController()
		b.drags[viewer] = d
	}
	return d
}

func (b *Board[T]) DragState(viewer string) ordering.DragState {
	return b.drag(viewer).State()
}

// Items returns copies of the board's items in display order, loading them
// on first use.
func (b *Board[T]) Items(ctx context.Context) ([]T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return b.cloneAll(b.items), nil
}

// Reload discards local state and reads the collection again.
func (b *Board[T]) Reload(ctx context.Context) error {
	items, err := b.cfg.Source.Load(ctx, b.scope)
	if err != nil {
		logger.GetLogger().
			WithField("collection", b.cfg.Collection).
			WithField("scope", b.scope).
			WithError(err).
			Error("board reload failed")
		return err
	}
	ordering.Sort(items, b.cfg.Accessor)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = items
	b.loaded = true
	return nil
}

// Invalidate marks local state stale; the next read reloads it.
func (b *Board[T]) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loaded = false
}

func (b *Board[T]) ensureLoadedLocked(ctx context.Context) error {
	if b.loaded {
		return nil
	}
	items, err := b.cfg.Source.Load(ctx, b.scope)
	if err != nil {
		return err
	}
	ordering.Sort(items, b.cfg.Accessor)
	b.items = items
	b.loaded = true
	return nil
}

// StartDrag enters Dragging for viewer with id as the source.
func (b *Board[T]) StartDrag(ctx context.Context, viewer string, id string) error {
	b.mu.Lock()
	if err := b.ensureLoadedLocked(ctx); err != nil {
		b.mu.Unlock()
		return err
	}
	i := b.indexLocked(id)
	if i < 0 {
		b.mu.Unlock()
		return ordering.ErrInvalidDrop
	}
	partition := b.cfg.Accessor.Partition(b.items[i])
	b.mu.Unlock()
	return b.drag(viewer).Start(id, partition)
}

// Drop completes viewer's drag onto targetID in targetPartition. The
// viewer is back in Idle when Drop returns.
func (b *Board[T]) Drop(ctx context.Context, viewer string, targetID string, targetPartition string) (Result, error) {
	var result Result
	err := b.drag(viewer).Drop(ctx, targetID, targetPartition, func(ctx context.Context, e ordering.DropEvent) error {
		var err error
		result, err = b.move(ctx, e.SourceID, e.TargetID, e.TargetPartition)
		return err
	})
	return result, err
}

func (b *Board[T]) CancelDrag(viewer string) {
	b.drag(viewer).Cancel()
}

// Reorder is a complete drag by viewer: start on draggedID, drop on the
// target.
func (b *Board[T]) Reorder(ctx context.Context, viewer string, draggedID string, targetID string, targetPartition string) (Result, error) {
	if err := b.StartDrag(ctx, viewer, draggedID); err != nil {
		return Result{}, err
	}
	return b.Drop(ctx, viewer, targetID, targetPartition)
}

// MoveTo changes the partition of id, appending it to the end of
// partition. Moving an item to the partition it is already in changes
// nothing.
func (b *Board[T]) MoveTo(ctx context.Context, id string, partition string) (Result, error) {
	b.mu.Lock()
	if err := b.ensureLoadedLocked(ctx); err != nil {
		b.mu.Unlock()
		return Result{}, err
	}
	i := b.indexLocked(id)
	if i < 0 {
		b.mu.Unlock()
		return Result{}, fmt.Errorf("move: %w", ErrItemNotFound)
	}
	current := b.cfg.Accessor.Partition(b.items[i])
	b.mu.Unlock()
	if current == partition {
		return Result{}, nil
	}
	return b.move(ctx, id, "", partition)
}

func (b *Board[T]) move(ctx context.Context, draggedID string, targetID string, targetPartition string) (Result, error) {
	b.mu.Lock()
	plan, ok := ordering.Move(b.cloneAll(b.items), b.cfg.Accessor, draggedID, targetID, targetPartition)
	b.mu.Unlock()
	if !ok {
		if targetID != "" && targetID != draggedID {
			if p, found := b.partitionOf(targetID); !found || p != targetPartition {
				return Result{}, ordering.ErrInvalidDrop
			}
		}
		return Result{Outcome: ordering.OutcomeApplied}, nil
	}

	outcome, err := optimistic.Run(ctx, optimistic.Mutation[[]T, ordering.Outcome]{
		Name: b.cfg.Collection + ".reorder",
		Snapshot: func() []T {
			b.mu.Lock()
			defer b.mu.Unlock()
			return b.items
		},
		Apply: func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.items = plan.Items
		},
		Commit: func(ctx context.Context) (ordering.Outcome, error) {
			return b.persist(ctx, plan.Changes)
		},
		Restore: func(previous []T) {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.items = previous
		},
	})
	if err != nil {
		// the optimistic order is discarded in favour of the remote one
		_ = b.Reload(ctx)
		return Result{Changed: true, Outcome: ordering.OutcomeFailed}, err
	}
	return Result{Changed: true, Outcome: outcome}, nil
}

func (b *Board[T]) persist(ctx context.Context, changes []ordering.Change) (ordering.Outcome, error) {
	for _, change := range changes {
		if !change.PartitionChanged {
			continue
		}
		canonical, err := b.cfg.Source.UpdatePartition(ctx, b.scope, change.ID, change.Partition)
		if err != nil {
			return ordering.OutcomeFailed, err
		}
		if b.cfg.Empty != nil && b.cfg.Empty(canonical) {
			return ordering.OutcomeFailed, optimistic.ErrEmptyResult
		}
	}

	outcome, err := ordering.Persist(ctx, changes, func(ctx context.Context, change ordering.Change) error {
		return b.cfg.Source.UpdateOrder(ctx, b.scope, change)
	}, ordering.PersistOptions{
		Collection: b.cfg.Collection,
		Supported:  b.cfg.Capabilities.OrderingSupported(b.cfg.Collection),
	})
	if outcome == ordering.OutcomeDegraded {
		b.cfg.Capabilities.MarkUnsupported(b.cfg.Collection)
	}
	return outcome, err
}

// Update applies mutate to a copy of item id locally, commits it, and
// replaces the local item with the canonical remote one.
func (b *Board[T]) Update(ctx context.Context, name string, id string, mutate func(T), commit func(context.Context, T) (T, error)) (T, error) {
	var zero T
	b.mu.Lock()
	if err := b.ensureLoadedLocked(ctx); err != nil {
		b.mu.Unlock()
		return zero, err
	}
	i := b.indexLocked(id)
	if i < 0 {
		b.mu.Unlock()
		return zero, fmt.Errorf("%s: %w", name, ErrItemNotFound)
	}
	updated := b.cfg.Clone(b.items[i])
	b.mu.Unlock()
	mutate(updated)

	return optimistic.Run(ctx, optimistic.Mutation[T, T]{
		Name: b.cfg.Collection + "." + name,
		Snapshot: func() T {
			b.mu.Lock()
			defer b.mu.Unlock()
			if i := b.indexLocked(id); i >= 0 {
				return b.items[i]
			}
			return zero
		},
		Apply: func() {
			b.replace(id, b.cfg.Clone(updated))
		},
		Commit: func(ctx context.Context) (T, error) {
			return commit(ctx, b.cfg.Clone(updated))
		},
		Empty:     b.cfg.Empty,
		Reconcile: func(canonical T) { b.replace(id, canonical) },
		Restore: func(previous T) {
			if b.cfg.Empty == nil || !b.cfg.Empty(previous) {
				b.replace(id, previous)
			}
		},
	})
}

func (b *Board[T]) replace(id string, item T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.indexLocked(id); i >= 0 {
		items := make([]T, len(b.items))
		copy(items, b.items)
		items[i] = item
		b.items = items
	}
}

func (b *Board[T]) partitionOf(id string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexLocked(id)
	if i < 0 {
		return "", false
	}
	return b.cfg.Accessor.Partition(b.items[i]), true
}

func (b *Board[T]) indexLocked(id string) int {
	for i, item := range b.items {
		if b.cfg.Accessor.ID(item) == id {
			return i
		}
	}
	return -1
}

func (b *Board[T]) cloneAll(items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = b.cfg.Clone(item)
	}
	return out
}
