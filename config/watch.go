package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// OverrideWatcher hot-reloads a coin-overrides YAML file for long-running
// driver processes using an fsnotify.Watcher.
//
// The engine never mutates state mid-minute; the watcher only ever
// stages a new override set, and the driver applies it at the next
// minute boundary via Take.
type OverrideWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	pending map[string]Override
	err     error
}

// NewOverrideWatcher starts watching the directory containing path.
func NewOverrideWatcher(path string) (*OverrideWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch dir: %w", err)
	}
	return &OverrideWatcher{path: path, watcher: w}, nil
}

// Run drains fsnotify events until ctx is canceled, staging any override
// set that parses successfully. It never applies mid-flight; callers must
// call Take between minutes.
func (w *OverrideWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			_, overrides, err := Load(w.path)
			if err != nil {
				w.err = err
				continue
			}
			w.pending = overrides
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.err = err
		}
	}
}

// Take returns and clears any staged override set. Called by the driver
// between minutes, at the step 7/step 1 boundary.
func (w *OverrideWatcher) Take() (map[string]Override, bool) {
	if w.pending == nil {
		return nil, false
	}
	p := w.pending
	w.pending = nil
	return p, true
}

// LastError returns the most recent watch/parse error, if any.
func (w *OverrideWatcher) LastError() error { return w.err }

// Close stops the underlying fsnotify watcher.
func (w *OverrideWatcher) Close() error { return w.watcher.Close() }
