// Package watcher implements file system watching for continuous incremental builds.
package watcher

import (
	"context"
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/mason/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

// shouldSkipDirectories are directories that should not be watched.
var shouldSkipDirectories = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

const eventChannelBuffer = 100

// Watcher implements file system watching using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	events    chan ports.WatchEvent
}

// NewWatcher creates a new file system watcher.
func NewWatcher() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}, nil
}

// Start begins watching the given root directory recursively.
func (w *Watcher) Start(ctx context.Context, root string) error {
	for dir := range w.watchRecursively(root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return err
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// watchRecursively walks the directory tree and yields all directories.
func (w *Watcher) watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Skip directories we cannot access and keep walking.
				return nil //nolint:nilerr // intentional
			}
			if d.IsDir() {
				if shouldSkipDirectories[d.Name()] {
					return fs.SkipDir
				}
				if !yield(path) {
					return filepath.SkipAll
				}
			}
			return nil
		})
	}
}

// processEvents converts raw fsnotify events into ports.WatchEvent values.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			// New directories need to be added to the watch set so that
			// files created inside them are seen.
			if event.Op.Has(fsnotify.Create) {
				for dir := range w.watchRecursively(event.Name) {
					_ = w.fsWatcher.Add(dir)
				}
			}

			if op, relevant := translateOp(event.Op); relevant {
				select {
				case w.events <- ports.WatchEvent{Path: event.Name, Operation: op}:
				case <-ctx.Done():
					return
				}
			}
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// translateOp maps an fsnotify op onto the port's operation set. Chmod-only
// events are dropped; they do not change content.
func translateOp(op fsnotify.Op) (ports.WatchOp, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return ports.OpCreate, true
	case op.Has(fsnotify.Write):
		return ports.OpWrite, true
	case op.Has(fsnotify.Remove):
		return ports.OpRemove, true
	case op.Has(fsnotify.Rename):
		return ports.OpRename, true
	default:
		return 0, false
	}
}
