// Package watcher monitors a source tree for markdown and image changes.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"mdinliner/imageencoder"
	"mdinliner/logging"
	"mdinliner/scanner"
)

// Watcher watches a source tree and reports debounced change bursts
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// New creates a watcher with the given debounce interval
func New(debounce time.Duration) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	return &Watcher{watcher: w, debounce: debounce}, nil
}

// Watch registers root and all of its subdirectories and returns a channel
// that delivers the last changed path once per debounced burst of markdown
// or image changes. Directories created while watching are registered as
// they appear. The channel closes when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, root string) (<-chan string, error) {
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}
		return w.watcher.Add(path)
	})
	if err != nil {
		return nil, err
	}

	changes := make(chan string, 1)

	go func() {
		defer close(changes)

		var timer *time.Timer
		var timerC <-chan time.Time
		lastPath := ""

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}

				// New subdirectories join the watch; their files produce
				// their own events.
				if event.Op&fsnotify.Create != 0 {
					if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
						if addErr := w.watcher.Add(event.Name); addErr != nil {
							logging.LogWarning("cannot watch %s: %v", event.Name, addErr)
						}
						continue
					}
				}

				if !isWatchedFile(event.Name) {
					continue
				}

				lastPath = event.Name
				if timer == nil {
					timer = time.NewTimer(w.debounce)
					timerC = timer.C
				} else {
					timer.Reset(w.debounce)
				}

			case <-timerC:
				timer = nil
				timerC = nil
				select {
				case changes <- lastPath:
				case <-ctx.Done():
					return
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				logging.LogWarning("watch error: %v", err)
			}
		}
	}()

	return changes, nil
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// isWatchedFile checks if a change to this file can affect conversion output
func isWatchedFile(path string) bool {
	return scanner.IsMarkdownFile(path) || imageencoder.IsSupportedImage(path)
}
