package watcher

import (
	"sync"
	"time"
	"unique"
)

// Debouncer coalesces rapid file system events into batched change sets, so
// one editor save burst triggers one incremental build.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(paths []string)
}

// NewDebouncer creates a new debouncer with the given time window and callback.
func NewDebouncer(window time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add adds a file path to the pending change set and restarts the window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Interned handles deduplicate repeated events for the same path.
	d.pending[unique.Make(path)] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// Flush delivers any pending paths immediately.
func (d *Debouncer) Flush() {
	d.fire()
}

// fire is called when the debounce window expires.
func (d *Debouncer) fire() {
	d.mu.Lock()

	if len(d.pending) == 0 {
		d.timer = nil
		d.mu.Unlock()
		return
	}

	paths := make([]string, 0, len(d.pending))
	for handle := range d.pending {
		paths = append(paths, handle.Value())
	}
	d.pending = make(map[unique.Handle[string]]struct{})
	d.timer = nil
	d.mu.Unlock()

	d.callback(paths)
}
