// Package ingest pulls configured RSS/Atom sources and files their
// items as archived intelligence updates, keeping the rotation loop
// supplied with fresh material without injecting anything straight
// into the live set.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/globeview/globeview/internal/config"
	"github.com/globeview/globeview/internal/model"
	"github.com/globeview/globeview/internal/store"
)

const maxExcerpt = 100

// Result carries the outcome of a single source fetch through a
// channel.
type Result struct {
	Source  config.FeedSource
	Updates []model.IntelligenceUpdate
	Err     error
}

// Ingestor periodically pulls every configured source using concurrent
// workers and files new items in the store.
type Ingestor struct {
	store    *store.Store
	parser   *gofeed.Parser
	sources  []config.FeedSource
	interval time.Duration
	logger   *slog.Logger
}

// New returns an Ingestor that polls sources every interval.
func New(s *store.Store, sources []config.FeedSource, interval time.Duration, logger *slog.Logger) *Ingestor {
	return &Ingestor{
		store:    s,
		parser:   gofeed.NewParser(),
		sources:  sources,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the background polling loop. It blocks until ctx is
// cancelled.
func (in *Ingestor) Start(ctx context.Context) {
	in.logger.Info("ingestor started", "sources", len(in.sources), "interval", in.interval)

	in.ingestAll(ctx)

	ticker := time.NewTicker(in.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			in.logger.Info("ingestor stopped")
			return
		case <-ticker.C:
			in.ingestAll(ctx)
		}
	}
}

// ingestAll fans-out one goroutine per source, collects results through
// a channel, and persists items whose source URL is not already in the
// store.
func (in *Ingestor) ingestAll(ctx context.Context) {
	if len(in.sources) == 0 {
		return
	}

	seen, err := in.knownSourceURLs()
	if err != nil {
		in.logger.Error("ingest cycle aborted", "error", err)
		return
	}

	results := make(chan Result, len(in.sources))
	for _, src := range in.sources {
		go func(src config.FeedSource) {
			updates, err := in.fetchSource(ctx, src)
			results <- Result{Source: src, Updates: updates, Err: err}
		}(src)
	}

	var filed int
	for range in.sources {
		res := <-results
		if res.Err != nil {
			in.logger.Error("source fetch failed", "source", res.Source.Name, "error", res.Err)
			continue
		}
		for _, u := range res.Updates {
			if u.SourceURL != "" && seen[u.SourceURL] {
				continue
			}
			stored, err := in.store.CreateUpdate(u)
			if err != nil {
				in.logger.Error("file update failed", "source", res.Source.Name, "error", err)
				continue
			}
			seen[stored.SourceURL] = true
			filed++
		}
	}

	in.logger.Info("ingest cycle complete", "new_updates", filed)
}

// fetchSource downloads and parses one source, mapping items to
// archived update records.
func (in *Ingestor) fetchSource(ctx context.Context, src config.FeedSource) ([]model.IntelligenceUpdate, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	parsed, err := in.parser.ParseURLWithContext(src.URL, fetchCtx)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.URL, err)
	}

	updates := make([]model.IntelligenceUpdate, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		updates = append(updates, MapItem(item, src))
	}
	return updates, nil
}

// MapItem converts one feed item into an archived update record.
func MapItem(item *gofeed.Item, src config.FeedSource) model.IntelligenceUpdate {
	ts := time.Now()
	if item.PublishedParsed != nil {
		ts = *item.PublishedParsed
	}

	category := src.Category
	if category == "" {
		category = "politics"
	}
	sourceType := src.SourceType
	if sourceType == "" {
		sourceType = "media"
	}

	excerpt := strings.TrimSpace(item.Description)
	// Truncate on rune boundaries so a multi-byte character is never
	// split mid-sequence.
	if runes := []rune(excerpt); len(runes) > maxExcerpt {
		excerpt = string(runes[:maxExcerpt]) + "..."
	}

	return model.IntelligenceUpdate{
		Title:      item.Title,
		Category:   category,
		Source:     src.Name,
		SourceType: sourceType,
		Excerpt:    excerpt,
		Content:    item.Description,
		SourceURL:  item.Link,
		Timestamp:  ts,
		Status:     model.StatusArchived,
	}
}

func (in *Ingestor) knownSourceURLs() (map[string]bool, error) {
	updates, err := in.store.ListUpdates(store.Filter{})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(updates))
	for _, u := range updates {
		if u.SourceURL != "" {
			seen[u.SourceURL] = true
		}
	}
	return seen, nil
}
