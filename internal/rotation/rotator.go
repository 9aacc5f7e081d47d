// Package rotation keeps the live feed looking fresh by recycling
// archived records back into the active set.
package rotation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/globeview/globeview/internal/model"
	"github.com/globeview/globeview/internal/store"
)

// Rotator runs an unbounded loop: each iteration archives the oldest
// active record and promotes the oldest archived record to active with
// a fresh timestamp, keeping the active-set size constant. Iterations
// are spaced by a random delay in [minDelay, maxDelay]. Single-process,
// single-writer; a second rotator racing on the same store would
// corrupt ordering.
type Rotator struct {
	store    *store.Store
	minDelay time.Duration
	maxDelay time.Duration
	rng      *rand.Rand
	logger   *slog.Logger
}

// New returns a Rotator over s with the given delay bounds.
func New(s *store.Store, minDelay, maxDelay time.Duration, rng *rand.Rand, logger *slog.Logger) *Rotator {
	return &Rotator{
		store:    s,
		minDelay: minDelay,
		maxDelay: maxDelay,
		rng:      rng,
		logger:   logger,
	}
}

// Start runs the rotation loop until ctx is cancelled. A failed
// iteration is logged and the loop continues; there is no retry beyond
// the next randomized delay.
func (r *Rotator) Start(ctx context.Context) {
	r.logger.Info("rotation started", "min_delay", r.minDelay, "max_delay", r.maxDelay)

	for {
		if err := r.RotateOnce(time.Now()); err != nil {
			r.logger.Error("rotation iteration failed", "error", err)
		}

		delay := r.minDelay + time.Duration(r.rng.Int63n(int64(r.maxDelay-r.minDelay)+1))
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Info("rotation stopped")
			return
		case <-timer.C:
		}
	}
}

// RotateOnce performs one rotation: retire the oldest active record,
// then promote the oldest archived record with timestamp = now. Either
// half is skipped when no candidate exists, so the operation conserves
// per-status counts whenever both sides have supply.
func (r *Rotator) RotateOnce(now time.Time) error {
	oldest, err := r.store.OldestByStatus(model.StatusActive)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// Nothing active; promotion below may still seed the feed.
	case err != nil:
		return fmt.Errorf("find oldest active: %w", err)
	default:
		if err := r.store.SetStatus(oldest.ID, model.StatusArchived); err != nil {
			return fmt.Errorf("archive update %d: %w", oldest.ID, err)
		}
		r.logger.Info("archived update", "id", oldest.ID, "title", oldest.Title, "timestamp", oldest.Timestamp)
	}

	candidate, err := r.store.OldestByStatus(model.StatusArchived)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("find oldest archived: %w", err)
	}

	if err := r.store.Activate(candidate.ID, now); err != nil {
		return fmt.Errorf("activate update %d: %w", candidate.ID, err)
	}
	r.logger.Info("activated update", "id", candidate.ID, "title", candidate.Title, "timestamp", now)
	return nil
}
