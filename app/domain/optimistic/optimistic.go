// Package optimistic applies a change locally before its remote write lands,
// and restores the previous local state when the write fails.
package optimistic

import (
	"context"
	"errors"
	"fmt"

	"vowboard.io/planner-gateway/app/utils/logger"
)

var ErrEmptyResult = errors.New("remote write returned an empty result")

// Mutation describes one optimistic change over a local state of type S
// committed remotely with a result of type R.
type Mutation[S any, R any] struct {
	Name string

	// Snapshot captures the state about to change.
	Snapshot func() S
	// Apply mutates local state. It must not block.
	Apply func()
	// Commit issues the remote write.
	Commit func(ctx context.Context) (R, error)
	// Empty reports a falsy result that must count as a failure. Optional.
	Empty func(R) bool
	// Reconcile replaces local state with the canonical remote result. Optional.
	Reconcile func(R)
	// Restore puts the snapshot back.
	Restore func(S)
}

// Run executes m. On failure the snapshot is restored, the error is logged
// and returned for the caller to surface.
func Run[S any, R any](ctx context.Context, m Mutation[S, R]) (R, error) {
	previous := m.Snapshot()
	m.Apply()

	result, err := m.Commit(ctx)
	if err == nil && m.Empty != nil && m.Empty(result) {
		err = ErrEmptyResult
	}
	if err != nil {
		m.Restore(previous)
		logger.GetLogger().
			WithField("mutation", m.Name).
			WithError(err).
			Error("optimistic update rolled back")
		var zero R
		return zero, fmt.Errorf("%s: %w", m.Name, err)
	}

	if m.Reconcile != nil {
		m.Reconcile(result)
	}
	return result, nil
}
