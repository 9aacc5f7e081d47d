package reply

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/globeview/globeview/internal/model"
)

// ErrEmptyFields is returned when a comment is posted without a name or
// without content.
var ErrEmptyFields = errors.New("reply: name and comment are required")

const aiAuthorName = "GlobeView AI Analyst"

// Threads holds the per-article comment lists in process memory. Ids
// are max+1 within one thread and nothing is persisted; everything is
// lost on restart, matching the client-local lists this replaces.
// Pending reply timers are explicit handles so Close can stop them all
// instead of leaving them to fire into a torn-down component.
type Threads struct {
	mu     sync.Mutex
	bySlug map[string][]model.Comment
	timers map[*time.Timer]struct{}
	synth  *Synthesizer
	logger *slog.Logger
	closed bool
}

// NewThreads returns an empty thread set backed by synth.
func NewThreads(synth *Synthesizer, logger *slog.Logger) *Threads {
	return &Threads{
		bySlug: make(map[string][]model.Comment),
		timers: make(map[*time.Timer]struct{}),
		synth:  synth,
		logger: logger,
	}
}

// Seed installs a report's initial comment list, replacing any
// existing thread for the slug.
func (t *Threads) Seed(slug string, comments []model.Comment) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bySlug[slug] = append([]model.Comment(nil), comments...)
}

// List returns a copy of the thread for slug, oldest first.
func (t *Threads) List(slug string) []model.Comment {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]model.Comment(nil), t.bySlug[slug]...)
}

// Post validates and appends a user comment, then schedules the AI
// reply after the synthesizer's thinking delay. The posted comment is
// returned; the reply lands in the thread asynchronously.
func (t *Threads) Post(slug, authorName, content string) (model.Comment, error) {
	if authorName == "" || content == "" {
		return model.Comment{}, ErrEmptyFields
	}

	t.mu.Lock()
	comment := model.Comment{
		ID:         nextCommentID(t.bySlug[slug]),
		AuthorName: authorName,
		Content:    content,
		Date:       time.Now(),
	}
	t.bySlug[slug] = append(t.bySlug[slug], comment)

	if !t.closed {
		var timer *time.Timer
		timer = time.AfterFunc(t.synth.Delay(), func() {
			t.appendReply(slug, content)
			t.mu.Lock()
			delete(t.timers, timer)
			t.mu.Unlock()
		})
		t.timers[timer] = struct{}{}
	}
	t.mu.Unlock()

	return comment, nil
}

func (t *Threads) appendReply(slug, comment string) {
	text := t.synth.Synthesize(comment)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	ai := model.Comment{
		ID:         nextCommentID(t.bySlug[slug]),
		AuthorName: aiAuthorName,
		Content:    text,
		Date:       time.Now(),
		IsAI:       true,
	}
	t.bySlug[slug] = append(t.bySlug[slug], ai)
	t.logger.Info("ai reply posted", "slug", slug, "comment_id", ai.ID)
}

// Close stops every pending reply timer. Posts after Close still land
// but no replies are scheduled for them.
func (t *Threads) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	for timer := range t.timers {
		timer.Stop()
	}
	t.timers = make(map[*time.Timer]struct{})
}

// nextCommentID is max existing id + 1 within one thread. There is no
// cross-thread uniqueness.
func nextCommentID(comments []model.Comment) int {
	max := 0
	for _, c := range comments {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}
