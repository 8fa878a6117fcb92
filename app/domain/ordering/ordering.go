// Package ordering implements manual positioning of items that are split into
// independently orderable partitions (task groups, pinned/unpinned documents).
package ordering

import (
	"cmp"
	"slices"
	"time"
)

// Accessor exposes the ordering fields of T.
type Accessor[T any] struct {
	ID        func(T) string
	Partition func(T) string
	Order     func(T) *int
	CreatedAt func(T) time.Time

	SetOrder     func(T, int)
	SetPartition func(T, string)
}

// Change is one row whose position must be persisted.
type Change struct {
	ID               string
	Order            int
	Partition        string
	PartitionChanged bool
}

// Plan is the outcome of a move: the whole collection in its new display
// order and the rows to persist.
type Plan[T any] struct {
	Items   []T
	Changes []Change
}

// Compare sorts ordered items by ascending order, then unordered items by
// creation time, newest first.
func Compare[T any](acc Accessor[T]) func(a, b T) int {
	return func(a, b T) int {
		oa, ob := acc.Order(a), acc.Order(b)
		switch {
		case oa != nil && ob != nil:
			return cmp.Compare(*oa, *ob)
		case oa != nil:
			return -1
		case ob != nil:
			return 1
		}
		return acc.CreatedAt(b).Compare(acc.CreatedAt(a))
	}
}

// Sort orders items in place for display.
func Sort[T any](items []T, acc Accessor[T]) {
	slices.SortStableFunc(items, Compare(acc))
}

// Partitions groups items by partition, each partition in display order.
// keys lists partitions in first-seen order.
func Partitions[T any](items []T, acc Accessor[T]) (map[string][]T, []string) {
	sorted := slices.Clone(items)
	Sort(sorted, acc)
	parts := make(map[string][]T)
	var keys []string
	for _, item := range sorted {
		p := acc.Partition(item)
		if _, ok := parts[p]; !ok {
			keys = append(keys, p)
		}
		parts[p] = append(parts[p], item)
	}
	return parts, keys
}

func indexOf[T any](items []T, acc Accessor[T], id string) int {
	return slices.IndexFunc(items, func(item T) bool { return acc.ID(item) == id })
}

// Move drops draggedID onto targetID inside targetPartition. An empty
// targetID appends to the end of targetPartition. It reports false when the
// drop is a no-op or names an unknown item; items are then left untouched.
//
// Every item of the source and destination partitions is renumbered densely
// from 0 in its new sequence; other partitions are not touched.
func Move[T any](items []T, acc Accessor[T], draggedID string, targetID string, targetPartition string) (Plan[T], bool) {
	if draggedID == "" || draggedID == targetID {
		return Plan[T]{}, false
	}
	parts, keys := Partitions(items, acc)

	var dragged T
	sourcePartition := ""
	sourceIndex := -1
	for _, key := range keys {
		if i := indexOf(parts[key], acc, draggedID); i >= 0 {
			dragged = parts[key][i]
			sourcePartition = key
			sourceIndex = i
			break
		}
	}
	if sourceIndex < 0 {
		return Plan[T]{}, false
	}

	targetIndex := len(parts[targetPartition])
	if targetID != "" {
		targetIndex = indexOf(parts[targetPartition], acc, targetID)
		if targetIndex < 0 {
			return Plan[T]{}, false
		}
	}
	samePartition := sourcePartition == targetPartition
	if samePartition && targetID == "" && sourceIndex == len(parts[sourcePartition])-1 {
		return Plan[T]{}, false
	}

	source := slices.Delete(slices.Clone(parts[sourcePartition]), sourceIndex, sourceIndex+1)
	if samePartition {
		if targetIndex > len(source) {
			targetIndex = len(source)
		}
		parts[sourcePartition] = slices.Insert(source, targetIndex, dragged)
	} else {
		parts[sourcePartition] = source
		parts[targetPartition] = slices.Insert(slices.Clone(parts[targetPartition]), targetIndex, dragged)
		if !slices.Contains(keys, targetPartition) {
			keys = append(keys, targetPartition)
		}
		acc.SetPartition(dragged, targetPartition)
	}

	affected := []string{sourcePartition}
	if !samePartition {
		affected = append(affected, targetPartition)
	}
	var changes []Change
	for _, key := range affected {
		for i, item := range parts[key] {
			acc.SetOrder(item, i)
			changes = append(changes, Change{
				ID:               acc.ID(item),
				Order:            i,
				Partition:        key,
				PartitionChanged: !samePartition && acc.ID(item) == draggedID,
			})
		}
	}

	result := make([]T, 0, len(items))
	for _, key := range keys {
		result = append(result, parts[key]...)
	}
	return Plan[T]{Items: result, Changes: changes}, true
}
