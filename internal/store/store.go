package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/globeview/globeview/internal/model"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("store: not found")

const (
	updatesFile  = "intelligence-updates.json"
	tagsFile     = "tags.json"
	webhooksFile = "webhooks.json"
)

// Store persists updates, tags and webhooks as JSON array files in a
// data directory. Every mutation is a read-entire-file, mutate,
// write-entire-file unit under one mutex, making this process the single
// writer. Running a second writing process against the same directory is
// not coordinated; writers can clobber each other.
type Store struct {
	mu  sync.Mutex
	dir string
}

// Open prepares the data directory, creating it and empty JSON files as
// needed, and returns a Store bound to it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{dir: dir}
	for _, name := range []string{updatesFile, tagsFile, webhooksFile} {
		if err := s.initFile(name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Dir returns the data directory the store is bound to.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) initFile(name string) error {
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", name, err)
	}
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		return fmt.Errorf("init %s: %w", name, err)
	}
	return nil
}

func readData[T any](path string) ([]T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return out, nil
}

func writeData[T any](path string, data []T) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// nextID simulates auto-increment: max existing id + 1. Ids are never
// reused after a soft delete because deleted records stay in the file.
func nextID[T any](items []T, id func(T) int) int {
	max := 0
	for _, it := range items {
		if v := id(it); v > max {
			max = v
		}
	}
	return max + 1
}

// ---------- Updates ----------

// Filter narrows ListUpdates. Empty fields match everything; category
// and source type compare case-insensitively.
type Filter struct {
	Status     string
	Category   string
	SourceType string
}

func (f Filter) matches(u model.IntelligenceUpdate) bool {
	if f.Status != "" && u.Status != f.Status {
		return false
	}
	if f.Category != "" && !strings.EqualFold(u.Category, f.Category) {
		return false
	}
	if f.SourceType != "" && !strings.EqualFold(u.SourceType, f.SourceType) {
		return false
	}
	return true
}

// CreateUpdate assigns an id and bookkeeping timestamps to u and appends
// it. An empty Status defaults to active, a zero Timestamp becomes now.
// The stored record is returned.
func (s *Store) CreateUpdate(u model.IntelligenceUpdate) (model.IntelligenceUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, updatesFile)
	updates, err := readData[model.IntelligenceUpdate](path)
	if err != nil {
		return model.IntelligenceUpdate{}, err
	}

	now := time.Now()
	u.ID = nextID(updates, func(u model.IntelligenceUpdate) int { return u.ID })
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Timestamp.IsZero() {
		u.Timestamp = now
	}
	if u.Status == "" {
		u.Status = model.StatusActive
	}
	if u.Tags == nil {
		u.Tags = []model.Tag{}
	}

	updates = append(updates, u)
	if err := writeData(path, updates); err != nil {
		return model.IntelligenceUpdate{}, err
	}
	return u, nil
}

// ListUpdates returns every update matching the filter, in file order.
func (s *Store) ListUpdates(f Filter) ([]model.IntelligenceUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updates, err := readData[model.IntelligenceUpdate](filepath.Join(s.dir, updatesFile))
	if err != nil {
		return nil, err
	}

	out := make([]model.IntelligenceUpdate, 0, len(updates))
	for _, u := range updates {
		if f.matches(u) {
			out = append(out, u)
		}
	}
	return out, nil
}

// GetUpdate returns the update with the given id.
func (s *Store) GetUpdate(id int) (model.IntelligenceUpdate, error) {
	updates, err := s.ListUpdates(Filter{})
	if err != nil {
		return model.IntelligenceUpdate{}, err
	}
	for _, u := range updates {
		if u.ID == id {
			return u, nil
		}
	}
	return model.IntelligenceUpdate{}, ErrNotFound
}

// OldestByStatus returns the record with the given status that has the
// smallest timestamp, or ErrNotFound if no record has that status.
func (s *Store) OldestByStatus(status string) (model.IntelligenceUpdate, error) {
	updates, err := s.ListUpdates(Filter{Status: status})
	if err != nil {
		return model.IntelligenceUpdate{}, err
	}
	if len(updates) == 0 {
		return model.IntelligenceUpdate{}, ErrNotFound
	}
	oldest := updates[0]
	for _, u := range updates[1:] {
		if u.Timestamp.Before(oldest.Timestamp) {
			oldest = u
		}
	}
	return oldest, nil
}

// SetStatus changes a record's status without touching its timestamp.
func (s *Store) SetStatus(id int, status string) error {
	return s.mutateUpdate(id, func(u *model.IntelligenceUpdate) {
		u.Status = status
	})
}

// Activate marks a record active and rewrites its timestamp, making it
// appear newly live. Used by rotation promotion.
func (s *Store) Activate(id int, ts time.Time) error {
	return s.mutateUpdate(id, func(u *model.IntelligenceUpdate) {
		u.Status = model.StatusActive
		u.Timestamp = ts
	})
}

// SoftDelete flags a record deleted. The record stays in the file so its
// id is never reused.
func (s *Store) SoftDelete(id int) error {
	return s.mutateUpdate(id, func(u *model.IntelligenceUpdate) {
		u.Status = model.StatusDeleted
	})
}

func (s *Store) mutateUpdate(id int, fn func(*model.IntelligenceUpdate)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, updatesFile)
	updates, err := readData[model.IntelligenceUpdate](path)
	if err != nil {
		return err
	}
	for i := range updates {
		if updates[i].ID == id {
			fn(&updates[i])
			updates[i].UpdatedAt = time.Now()
			return writeData(path, updates)
		}
	}
	return ErrNotFound
}

// ---------- Tags ----------

// UpsertTag returns the tag with the given name, creating it on first
// use.
func (s *Store) UpsertTag(name string) (model.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, tagsFile)
	tags, err := readData[model.Tag](path)
	if err != nil {
		return model.Tag{}, err
	}
	for _, t := range tags {
		if t.Name == name {
			return t, nil
		}
	}

	now := time.Now()
	tag := model.Tag{
		ID:        nextID(tags, func(t model.Tag) int { return t.ID }),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	tags = append(tags, tag)
	if err := writeData(path, tags); err != nil {
		return model.Tag{}, err
	}
	return tag, nil
}

// ListTags returns every tag.
func (s *Store) ListTags() ([]model.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readData[model.Tag](filepath.Join(s.dir, tagsFile))
}

// AddTagToUpdate associates a tag with an update, once.
func (s *Store) AddTagToUpdate(updateID int, tag model.Tag) error {
	return s.mutateUpdate(updateID, func(u *model.IntelligenceUpdate) {
		for _, t := range u.Tags {
			if t.ID == tag.ID {
				return
			}
		}
		u.Tags = append(u.Tags, tag)
	})
}

// ---------- Webhooks ----------

// CreateWebhook registers a webhook, active by default.
func (s *Store) CreateWebhook(name, url, secret string) (model.Webhook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, webhooksFile)
	hooks, err := readData[model.Webhook](path)
	if err != nil {
		return model.Webhook{}, err
	}

	now := time.Now()
	hook := model.Webhook{
		ID:        nextID(hooks, func(w model.Webhook) int { return w.ID }),
		Name:      name,
		URL:       url,
		Secret:    secret,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	hooks = append(hooks, hook)
	if err := writeData(path, hooks); err != nil {
		return model.Webhook{}, err
	}
	return hook, nil
}

// ActiveWebhooks returns every webhook with isActive set.
func (s *Store) ActiveWebhooks() ([]model.Webhook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hooks, err := readData[model.Webhook](filepath.Join(s.dir, webhooksFile))
	if err != nil {
		return nil, err
	}
	out := make([]model.Webhook, 0, len(hooks))
	for _, h := range hooks {
		if h.IsActive {
			out = append(out, h)
		}
	}
	return out, nil
}

// TouchWebhook records when a webhook last authenticated a request.
func (s *Store) TouchWebhook(id int, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, webhooksFile)
	hooks, err := readData[model.Webhook](path)
	if err != nil {
		return err
	}
	for i := range hooks {
		if hooks[i].ID == id {
			hooks[i].LastTrigger = &t
			hooks[i].UpdatedAt = t
			return writeData(path, hooks)
		}
	}
	return ErrNotFound
}
