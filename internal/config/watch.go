package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// WatchCredentials invokes onChange whenever the credential store is
// created, replaced, or removed, until ctx is cancelled. Claude Code
// rewrites the file atomically on login, so the parent directory is
// watched rather than the file itself.
//
// Events are debounced: editors and atomic renames produce bursts, and
// one refresh per burst is enough.
func WatchCredentials(ctx context.Context, path string, logger zerolog.Logger, onChange func()) error {
	if path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	target := filepath.Clean(path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			logger.Debug().Str("op", event.Op.String()).Msg("credential store changed")
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(500*time.Millisecond, onChange)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("credential watcher error")
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
