// Package dashboard models the browser side of the live feed: a
// polling loop that re-fetches a balanced sample on a randomized
// interval, stamps it with synthetic recency, and relabels it every
// second. It exists server-side so the whole pipeline can be exercised
// and tested as one unit.
package dashboard

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/globeview/globeview/internal/feed"
	"github.com/globeview/globeview/internal/model"
)

// FetchFunc supplies a fresh batch, typically the sampler over the
// store or an HTTP call to the live-updates endpoint.
type FetchFunc func(ctx context.Context, limit int) ([]model.IntelligenceUpdate, error)

// LiveFeed owns the simulated client state. The poll is chained: the
// next fetch is scheduled only after the current one settles, with a
// fresh randomized delay in [minPoll, maxPoll]. The relabel tick is an
// independent 1-second ticker. Both stop when the Start context is
// cancelled; there are no orphaned timers after teardown.
type LiveFeed struct {
	mu     sync.Mutex
	events []model.IntelligenceUpdate

	fetch   FetchFunc
	limit   int
	minPoll time.Duration
	maxPoll time.Duration
	rng     *rand.Rand
	logger  *slog.Logger
}

// New returns a stopped LiveFeed.
func New(fetch FetchFunc, limit int, minPoll, maxPoll time.Duration, rng *rand.Rand, logger *slog.Logger) *LiveFeed {
	return &LiveFeed{
		fetch:   fetch,
		limit:   limit,
		minPoll: minPoll,
		maxPoll: maxPoll,
		rng:     rng,
		logger:  logger,
	}
}

// Start runs the poll loop and the relabel tick until ctx is
// cancelled. It fetches once immediately so the feed is populated
// before the first delay.
func (f *LiveFeed) Start(ctx context.Context) {
	f.logger.Info("live feed started", "limit", f.limit, "min_poll", f.minPoll, "max_poll", f.maxPoll)

	go f.relabelLoop(ctx)

	for {
		f.Poll(ctx)

		delay := f.minPoll + time.Duration(f.rng.Int63n(int64(f.maxPoll-f.minPoll)+1))
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			f.logger.Info("live feed stopped")
			return
		case <-timer.C:
		}
	}
}

// Poll fetches one batch and replaces the event list with the stamped
// result. On failure the last-known-good state is retained and the
// error is only logged; the next scheduled poll still runs.
func (f *LiveFeed) Poll(ctx context.Context) {
	batch, err := f.fetch(ctx, f.limit)
	if err != nil {
		f.logger.Error("live feed fetch failed", "error", err)
		return
	}
	if len(batch) == 0 {
		return
	}

	stamped := feed.Stamp(batch, time.Now())

	f.mu.Lock()
	f.events = stamped
	f.mu.Unlock()

	f.logger.Info("live feed refreshed", "events", len(stamped))
}

func (f *LiveFeed) relabelLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			f.mu.Lock()
			f.events = feed.Relabel(f.events, now)
			f.mu.Unlock()
		}
	}
}

// Prepend pushes a freshly generated record to the top of the list as
// the new index-0 "LIVE" item.
func (f *LiveFeed) Prepend(u model.IntelligenceUpdate) {
	now := time.Now()
	u.Timestamp = now
	u.Time = "LIVE"

	f.mu.Lock()
	f.events = append([]model.IntelligenceUpdate{u}, f.events...)
	f.mu.Unlock()
}

// Events returns a copy of the current event list.
func (f *LiveFeed) Events() []model.IntelligenceUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.IntelligenceUpdate(nil), f.events...)
}

// Counts tallies the current events per lower-cased category.
func (f *LiveFeed) Counts() map[string]int {
	f.mu.Lock()
	defer f.mu.Unlock()

	counts := make(map[string]int)
	for _, u := range f.events {
		counts[strings.ToLower(u.Category)]++
	}
	return counts
}
