package ordering

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"vowboard.io/planner-gateway/app/utils/logger"
)

type Outcome int

const (
	// OutcomeApplied means every order update was accepted.
	OutcomeApplied Outcome = iota
	// OutcomeDegraded means the remote schema cannot store order; the local
	// order stands for this session only.
	OutcomeDegraded
	// OutcomeFailed means at least one update failed; the caller must reload
	// the collection from the remote source of truth.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeDegraded:
		return "degraded"
	default:
		return "failed"
	}
}

// ErrOrderingUnsupported is returned by update functions when the remote
// schema has no ordering column.
var ErrOrderingUnsupported = errors.New("ordering column not available")

type PersistOptions struct {
	// Collection names the collection in logs.
	Collection string
	// Supported is consulted before any remote call is issued.
	Supported bool
	// Unsupported classifies an update error as a missing-schema error.
	Unsupported func(error) bool
}

// Persist issues one update per change concurrently and waits for all of
// them to settle. Partial failure is not rolled back row by row: any
// non-schema error yields OutcomeFailed.
func Persist(ctx context.Context, changes []Change, update func(context.Context, Change) error, opts PersistOptions) (Outcome, error) {
	log := logger.GetLogger().WithField("collection", opts.Collection)
	if !opts.Supported {
		log.Warn("ordering column unavailable, keeping order locally")
		return OutcomeDegraded, nil
	}
	if len(changes) == 0 {
		return OutcomeApplied, nil
	}

	errs := make([]error, len(changes))
	var group errgroup.Group
	for i, change := range changes {
		group.Go(func() error {
			errs[i] = update(ctx, change)
			return nil
		})
	}
	_ = group.Wait()

	var failure error
	degraded := false
	for _, err := range errs {
		if err == nil {
			continue
		}
		if errors.Is(err, ErrOrderingUnsupported) || (opts.Unsupported != nil && opts.Unsupported(err)) {
			degraded = true
			continue
		}
		if failure == nil {
			failure = err
		}
	}
	if failure != nil {
		log.WithError(failure).Error("order update failed")
		return OutcomeFailed, failure
	}
	if degraded {
		log.Warn("ordering column missing on remote schema, keeping order locally")
		return OutcomeDegraded, nil
	}
	return OutcomeApplied, nil
}
