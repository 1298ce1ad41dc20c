package seed

import (
	"context"
	"fmt"
	"path/filepath"

	"infinium/internal/model"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher reloads a seed file whenever it changes on disk.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  zerolog.Logger
}

// NewWatcher watches the directory of path and filters events by file name.
func NewWatcher(path string, logger zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve seed path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:    abs,
		watcher: w,
		logger:  logger.With().Str("component", "seed_watcher").Str("path", abs).Logger(),
	}, nil
}

// Watch calls apply with every successfully parsed version of the file until
// ctx is done or the watcher is closed. Invalid versions are logged and skipped.
func (w *Watcher) Watch(ctx context.Context, apply func(model.Dataset)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			ds, err := Load(w.path)
			if err != nil {
				w.logger.Warn().Err(err).Msg("seed change ignored")
				continue
			}
			w.logger.Info().Msg("seed reloaded")
			apply(ds)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("watch error")
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
