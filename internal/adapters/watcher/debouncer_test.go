package watcher_test

import (
	"slices"
	"sync"
	"testing"
	"time"

	"go.trai.ch/mason/internal/adapters/watcher"
)

type capture struct {
	mu      sync.Mutex
	batches [][]string
	fired   chan struct{}
}

func newCapture() *capture {
	return &capture{fired: make(chan struct{}, 16)}
}

func (c *capture) callback(paths []string) {
	c.mu.Lock()
	c.batches = append(c.batches, paths)
	c.mu.Unlock()
	c.fired <- struct{}{}
}

func (c *capture) wait(t *testing.T) []string {
	t.Helper()

	select {
	case <-c.fired:
	case <-time.After(5 * time.Second):
		t.Fatal("debouncer never fired")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.batches[len(c.batches)-1]
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	c := newCapture()
	d := watcher.NewDebouncer(20*time.Millisecond, c.callback)

	d.Add("a.go")
	d.Add("b.go")
	d.Add("a.go") // duplicate within the window

	batch := c.wait(t)
	slices.Sort(batch)
	if !slices.Equal(batch, []string{"a.go", "b.go"}) {
		t.Errorf("expected deduplicated batch [a.go b.go], got %v", batch)
	}

	c.mu.Lock()
	n := len(c.batches)
	c.mu.Unlock()
	if n != 1 {
		t.Errorf("expected one batch, got %d", n)
	}
}

func TestDebouncer_Flush(t *testing.T) {
	c := newCapture()
	d := watcher.NewDebouncer(time.Hour, c.callback)

	d.Add("a.go")
	d.Flush()

	batch := c.wait(t)
	if !slices.Equal(batch, []string{"a.go"}) {
		t.Errorf("expected [a.go], got %v", batch)
	}
}

func TestDebouncer_FlushWithoutPendingIsNoOp(t *testing.T) {
	c := newCapture()
	d := watcher.NewDebouncer(time.Hour, c.callback)

	d.Flush()

	select {
	case <-c.fired:
		t.Error("callback fired with no pending paths")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncer_SeparateWindows(t *testing.T) {
	c := newCapture()
	d := watcher.NewDebouncer(20*time.Millisecond, c.callback)

	d.Add("a.go")
	first := c.wait(t)

	d.Add("b.go")
	second := c.wait(t)

	if !slices.Equal(first, []string{"a.go"}) || !slices.Equal(second, []string{"b.go"}) {
		t.Errorf("expected separate batches, got %v then %v", first, second)
	}
}
