package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher reports changes to a single document. It watches the parent directory so that
// editors that save by renaming a temp file are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// NewWatcher starts watching the directory of path.
func NewWatcher(path string) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	return &Watcher{
		path:     absPath,
		debounce: defaultDebounce,
		watcher:  watcher,
	}, nil
}

// Run calls onChange once per burst of writes to the document and returns when ctx is
// done. Watcher errors go to onError, which may be nil.
func (w *Watcher) Run(ctx context.Context, onChange func(), onError func(error)) error {
	defer w.watcher.Close()

	ticker := time.NewTicker(w.debounce / 4)
	defer ticker.Stop()

	var pending bool
	var lastEvent time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			pending = true
			lastEvent = time.Now()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}

		case <-ticker.C:
			if pending && time.Since(lastEvent) >= w.debounce {
				pending = false
				onChange()
			}
		}
	}
}
