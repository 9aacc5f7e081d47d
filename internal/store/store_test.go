package store_test

import (
	"errors"
	"testing"
	"time"

	"github.com/globeview/globeview/internal/model"
	"github.com/globeview/globeview/internal/store"
)

func open(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestCreateUpdateAssignsSequentialIDs(t *testing.T) {
	s := open(t)

	first, err := s.CreateUpdate(model.IntelligenceUpdate{Title: "First"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := s.CreateUpdate(model.IntelligenceUpdate{Title: "Second"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
	if first.Status != model.StatusActive {
		t.Fatalf("expected default status active, got %q", first.Status)
	}
	if first.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be assigned")
	}
}

func TestSoftDeleteRetainsRecordAndID(t *testing.T) {
	s := open(t)

	u, _ := s.CreateUpdate(model.IntelligenceUpdate{Title: "Doomed"})
	if err := s.SoftDelete(u.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	deleted, err := s.GetUpdate(u.ID)
	if err != nil {
		t.Fatalf("expected deleted record to be retained: %v", err)
	}
	if deleted.Status != model.StatusDeleted {
		t.Fatalf("expected status deleted, got %q", deleted.Status)
	}

	// The id is not reused.
	next, _ := s.CreateUpdate(model.IntelligenceUpdate{Title: "Next"})
	if next.ID != u.ID+1 {
		t.Fatalf("expected id %d, got %d", u.ID+1, next.ID)
	}
}

func TestListUpdatesFilters(t *testing.T) {
	s := open(t)

	s.CreateUpdate(model.IntelligenceUpdate{Title: "A", Category: "Conflict", SourceType: "osint"})
	s.CreateUpdate(model.IntelligenceUpdate{Title: "B", Category: "economy", SourceType: "verified"})
	s.CreateUpdate(model.IntelligenceUpdate{Title: "C", Category: "conflict", SourceType: "verified", Status: model.StatusArchived})

	// Category matches case-insensitively and combines with status.
	active, err := s.ListUpdates(store.Filter{Status: model.StatusActive, Category: "CONFLICT"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 1 || active[0].Title != "A" {
		t.Fatalf("expected only A, got %v", active)
	}

	verified, _ := s.ListUpdates(store.Filter{SourceType: "Verified"})
	if len(verified) != 2 {
		t.Fatalf("expected 2 verified records, got %d", len(verified))
	}
}

func TestOldestByStatusAndActivate(t *testing.T) {
	s := open(t)

	old := time.Now().Add(-3 * time.Hour)
	mid := time.Now().Add(-2 * time.Hour)

	a, _ := s.CreateUpdate(model.IntelligenceUpdate{Title: "Old", Timestamp: old, Status: model.StatusArchived})
	s.CreateUpdate(model.IntelligenceUpdate{Title: "Mid", Timestamp: mid, Status: model.StatusArchived})

	oldest, err := s.OldestByStatus(model.StatusArchived)
	if err != nil {
		t.Fatalf("oldest: %v", err)
	}
	if oldest.ID != a.ID {
		t.Fatalf("expected oldest to be %d, got %d", a.ID, oldest.ID)
	}

	now := time.Now()
	if err := s.Activate(a.ID, now); err != nil {
		t.Fatalf("activate: %v", err)
	}
	promoted, _ := s.GetUpdate(a.ID)
	if promoted.Status != model.StatusActive {
		t.Fatalf("expected active, got %q", promoted.Status)
	}
	if !promoted.Timestamp.Equal(now) {
		t.Fatal("expected timestamp to be refreshed on activation")
	}

	if _, err := s.OldestByStatus(model.StatusDeleted); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty status, got %v", err)
	}
}

func TestUpsertTagReusesByName(t *testing.T) {
	s := open(t)

	first, err := s.UpsertTag("sanctions")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	again, _ := s.UpsertTag("sanctions")
	other, _ := s.UpsertTag("energy")

	if first.ID != again.ID {
		t.Fatalf("expected tag reuse, got ids %d and %d", first.ID, again.ID)
	}
	if other.ID == first.ID {
		t.Fatal("distinct tags should get distinct ids")
	}

	tags, _ := s.ListTags()
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(tags))
	}
}

func TestAddTagToUpdateIsIdempotent(t *testing.T) {
	s := open(t)

	u, _ := s.CreateUpdate(model.IntelligenceUpdate{Title: "Tagged"})
	tag, _ := s.UpsertTag("grain")

	s.AddTagToUpdate(u.ID, tag)
	s.AddTagToUpdate(u.ID, tag)

	got, _ := s.GetUpdate(u.ID)
	if len(got.Tags) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(got.Tags))
	}
}

func TestWebhookLifecycle(t *testing.T) {
	s := open(t)

	hook, err := s.CreateWebhook("feed", "https://example.com/hook", "secret")
	if err != nil {
		t.Fatalf("create webhook: %v", err)
	}
	if !hook.IsActive {
		t.Fatal("expected webhook active by default")
	}

	active, _ := s.ActiveWebhooks()
	if len(active) != 1 {
		t.Fatalf("expected 1 active webhook, got %d", len(active))
	}

	trigger := time.Now()
	if err := s.TouchWebhook(hook.ID, trigger); err != nil {
		t.Fatalf("touch: %v", err)
	}
	active, _ = s.ActiveWebhooks()
	if active[0].LastTrigger == nil || !active[0].LastTrigger.Equal(trigger) {
		t.Fatal("expected lastTrigger to be recorded")
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := store.Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	created, _ := s.CreateUpdate(model.IntelligenceUpdate{Title: "Durable"})

	reopened, err := store.Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.GetUpdate(created.ID)
	if err != nil {
		t.Fatalf("expected record after reopen: %v", err)
	}
	if got.Title != "Durable" {
		t.Fatalf("expected title Durable, got %q", got.Title)
	}
}
