// Package source loads a sheet from a file and watches that file for
// changes.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tableflip.dev/gridsheet/pkg/sheet"
)

// Load reads path into a sheet named after the file.
func Load(path string, opts sheet.Options) (*sheet.Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open: %w", err)
	}
	defer f.Close()
	return sheet.Read(filepath.Base(path), f, opts)
}

// Event reports that the watched file changed or the watcher failed.
type Event struct {
	Path string
	Err  error
}

// Watch streams change events for path until ctx is cancelled. The parent
// directory is watched so editors that replace the file are seen too. Bursts
// of writes are coalesced into one event per delay window. The channel is
// closed once ctx is done or the watcher stops.
func Watch(ctx context.Context, path string, delay time.Duration) (<-chan Event, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("source: resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("source: create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		return nil, errors.Join(fmt.Errorf("source: watch %s: %w", dir, err), watcher.Close())
	}

	events := make(chan Event, 8)

	go func() {
		throttle := newEventThrottle(delay)
		var sendMu sync.Mutex
		done := false
		send := func(ev Event) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if done {
				return
			}
			select {
			case events <- ev:
			default:
				// The consumer reloads from disk, so a dropped event is
				// covered by the one still queued.
			}
		}
		defer func() {
			throttle.Stop()
			if err := watcher.Close(); err != nil {
				send(Event{Path: abs, Err: fmt.Errorf("source: watcher close: %w", err)})
			}
			sendMu.Lock()
			done = true
			close(events)
			sendMu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Path: abs, Err: err}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				throttle.Enqueue(Event{Path: abs}, send)
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid change notifications so the grid reloads
// once per burst of filesystem activity instead of on every single write.
// An error seen during the window wins over plain change events.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending *Event
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	if delay <= 0 {
		delay = time.Millisecond
	}
	return &eventThrottle{delay: delay}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if t.pending == nil || (t.pending.Err == nil && ev.Err != nil) {
		t.pending = &ev
	}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = nil
	t.timer = nil
	t.mu.Unlock()

	if pending != nil {
		send(*pending)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending = nil
	t.mu.Unlock()
}
