package dashboard_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/globeview/globeview/internal/dashboard"
	"github.com/globeview/globeview/internal/model"
)

func newFeed(fetch dashboard.FetchFunc) *dashboard.LiveFeed {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rng := rand.New(rand.NewSource(1))
	return dashboard.New(fetch, 10, 5*time.Millisecond, 17*time.Millisecond, rng, logger)
}

func batch(categories ...string) []model.IntelligenceUpdate {
	out := make([]model.IntelligenceUpdate, len(categories))
	for i, c := range categories {
		out[i] = model.IntelligenceUpdate{ID: i + 1, Category: c}
	}
	return out
}

func TestPollStampsBatch(t *testing.T) {
	f := newFeed(func(context.Context, int) ([]model.IntelligenceUpdate, error) {
		return batch("conflict", "economy", "security"), nil
	})

	f.Poll(context.Background())

	events := f.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Time != "LIVE" {
		t.Fatalf("expected index 0 LIVE, got %q", events[0].Time)
	}
	if events[1].Time != "8m ago" || events[2].Time != "16m ago" {
		t.Fatalf("expected 8-minute stride, got %q / %q", events[1].Time, events[2].Time)
	}
	if !events[0].Timestamp.After(events[1].Timestamp) {
		t.Fatal("expected strictly decreasing recency")
	}
}

func TestPollErrorRetainsLastKnownGood(t *testing.T) {
	var fail atomic.Bool
	f := newFeed(func(context.Context, int) ([]model.IntelligenceUpdate, error) {
		if fail.Load() {
			return nil, errors.New("network down")
		}
		return batch("conflict"), nil
	})

	f.Poll(context.Background())
	if len(f.Events()) != 1 {
		t.Fatal("expected initial poll to populate events")
	}

	fail.Store(true)
	f.Poll(context.Background())
	if len(f.Events()) != 1 {
		t.Fatal("failed poll must retain last-known-good state")
	}
}

func TestPrependBecomesLiveItem(t *testing.T) {
	f := newFeed(func(context.Context, int) ([]model.IntelligenceUpdate, error) {
		return batch("conflict", "economy"), nil
	})
	f.Poll(context.Background())

	f.Prepend(model.IntelligenceUpdate{ID: 99, Category: "security"})

	events := f.Events()
	if events[0].ID != 99 {
		t.Fatalf("expected prepended item at index 0, got id %d", events[0].ID)
	}
	if events[0].Time != "LIVE" {
		t.Fatalf("expected prepended item LIVE, got %q", events[0].Time)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	var calls atomic.Int64
	f := newFeed(func(context.Context, int) ([]model.IntelligenceUpdate, error) {
		calls.Add(1)
		return batch("conflict"), nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.Start(ctx)
		close(done)
	}()

	// Let a few chained polls run, then tear down.
	time.Sleep(60 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancellation")
	}

	if calls.Load() < 2 {
		t.Fatalf("expected chained polls before cancel, got %d", calls.Load())
	}

	// No timers keep firing after teardown.
	settled := calls.Load()
	time.Sleep(60 * time.Millisecond)
	if calls.Load() != settled {
		t.Fatal("poll fired after cancellation")
	}
}

func TestCounts(t *testing.T) {
	f := newFeed(func(context.Context, int) ([]model.IntelligenceUpdate, error) {
		return batch("Conflict", "conflict", "economy"), nil
	})
	f.Poll(context.Background())

	counts := f.Counts()
	if counts["conflict"] != 2 || counts["economy"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}
