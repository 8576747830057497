package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watch reloads the config file whenever it changes and passes the new value
// to onChange. Invalid edits are logged and skipped. The watch stops when ctx
// is cancelled.
//
// The parent directory is watched rather than the file so that editors that
// replace the file through a rename are still observed.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func(Config)) error {
	if path == "" {
		return fmt.Errorf("no config file to watch")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer watcher.Close()

		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					pending = time.After(reloadDebounce)
				}

			case <-pending:
				pending = nil
				c, err := Load(abs)
				if err != nil {
					logger.Warn("config reload rejected", "path", abs, "error", err)
					continue
				}
				logger.Info("config reloaded", "path", abs)
				onChange(c)

			case wErr, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Error("fsnotify error", "error", wErr)
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		logger.Error("config watcher stopped", "error", err)
	}))

	return nil
}
