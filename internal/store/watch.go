package store

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reports rewrites of the store files made by another process
// (a separate rotate or import run against a live server). Reads always
// go to disk, so no cache needs invalidating; the watch surfaces
// foreign-writer activity through onChange and the log. It blocks until
// ctx is cancelled.
func (s *Store) Watch(ctx context.Context, logger *slog.Logger, onChange func(file string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return err
	}

	logger.Info("store watch started", "dir", s.dir)

	for {
		select {
		case <-ctx.Done():
			logger.Info("store watch stopped")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Base(event.Name)
			switch name {
			case updatesFile, tagsFile, webhooksFile:
				logger.Info("store file changed on disk", "file", name)
				if onChange != nil {
					onChange(name)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("store watch error", "error", err)
		}
	}
}
