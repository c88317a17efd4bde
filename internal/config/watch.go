package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the burst of events editors emit on save.
const reloadDebounce = 100 * time.Millisecond

// Watch reloads the config at path whenever it is written and calls fn with
// each version that loads and validates. Invalid edits are logged and
// skipped. Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, fn func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so atomic rename-on-save is seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("config: watch directory: %w", err)
	}

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() {
				reload(ctx, path, fn)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("[CONFIG] watch error", "error", err)
		}
	}
}

func reload(ctx context.Context, path string, fn func(*Config)) {
	if ctx.Err() != nil {
		return
	}
	cfg, err := Load(path)
	if err != nil {
		slog.Warn("[CONFIG] reload failed, keeping previous settings", "error", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		slog.Warn("[CONFIG] reloaded config invalid, keeping previous settings", "error", err)
		return
	}
	slog.Info("[CONFIG] reloaded", "path", path)
	fn(cfg)
}
