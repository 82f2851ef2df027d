package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 200 * time.Millisecond

// ReloadCallback is called after every watcher-driven reload attempt.
// err is non-nil when the reload failed and the previous snapshot was kept.
type ReloadCallback func(snap *Snapshot, err error)

// Watch reloads the store whenever its source file changes, until ctx is
// cancelled. Editors often replace files by rename, so the parent directory
// is watched and events are filtered by name. Bursts of events collapse
// into one reload.
func Watch(ctx context.Context, store *Store, logger *slog.Logger, cb ReloadCallback) error {
	src := store.Source()
	if !src.IsFile() {
		return errors.New("catalog: watch requires a file source")
	}
	target, err := filepath.Abs(src.Path)
	if err != nil {
		return fmt.Errorf("catalog: resolve %s: %w", src.Path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: new watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("catalog: watch %s: %w", filepath.Dir(target), err)
	}

	logger.Info("watcher: started", slog.String("path", target))

	var timer *time.Timer
	var timerCh <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(reloadDebounce)
			timerCh = timer.C
		} else {
			timer.Reset(reloadDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			snap, loadErr := store.Load(ctx)
			if cb != nil {
				cb(snap, loadErr)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("watcher: change", slog.String("op", ev.Op.String()))
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
