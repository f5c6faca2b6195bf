package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the manifest must stay quiet before a re-run.
const DefaultDebounce = 200 * time.Millisecond

// Watch runs the manifest at path once, then again after every change,
// passing each report (or load/validation error) to fn. The parent directory
// is watched so editors that replace the file are followed. Watch returns
// when ctx is done. It observes the OS filesystem regardless of WithFs.
func (r *Runner) Watch(ctx context.Context, path string, debounce time.Duration, fn func(*Report, error)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("batch: create watcher: %w", err)
	}
	defer fw.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("batch: watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("batch: watch %s: %w", path, err)
	}

	fn(r.RunFile(ctx, path))

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(debounce)
			}

		case <-timer.C:
			log.Debug("manifest changed", "path", path)
			fn(r.RunFile(ctx, path))

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			// Watch errors are non-fatal.
			log.PrintErr("watch error", "err", err)
		}
	}
}
