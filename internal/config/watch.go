package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/oshokin/briefcase-alarm/internal/logger"
)

// Watch reloads the file at path whenever it changes and passes every valid
// revision to onChange. It blocks until ctx is done.
//
// The parent directory is watched so that editors replacing the file by
// rename are noticed too. Invalid revisions are logged and skipped.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	if path == "" {
		path = DefaultConfigFilename
	}

	path = filepath.Clean(path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}

	defer func() {
		_ = w.Close()
	}()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("config watcher add %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}

			cfg, err := Load(path)
			if err != nil {
				logger.Warnf(ctx, "Config reload skipped: %v", err)

				continue
			}

			onChange(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			logger.Warnf(ctx, "Config watcher error: %v", err)
		}
	}
}
