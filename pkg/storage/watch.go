package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is emitted by Persistence.Watch when a stored key changes on
// disk outside the running process.
type Event struct {
	Key string
}

// Watch streams change events until ctx is cancelled. Callers should
// drain the returned channel; events are dropped rather than blocking
// the watcher when the consumer falls behind.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("storage: base path unknown")
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("storage: create watcher: %w", err)
	}
	if err := watcher.Add(p.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("storage: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "storage: watcher close: %v\n", err)
			}
		}()

		throttle := newKeyThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop when the consumer is not ready; the next change
				// notification resynchronises it.
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				key := filepath.Base(evt.Name)
				if key == "" || key == "." {
					continue
				}
				throttle.Enqueue(Event{Key: key}, send)
			}
		}
	}()

	return events, nil
}

// keyThrottle coalesces rapid per-key notifications so a burst of writes
// produces a single event per key.
type keyThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	delay   time.Duration
}

func newKeyThrottle(delay time.Duration) *keyThrottle {
	return &keyThrottle{
		pending: make(map[string]struct{}),
		delay:   delay,
	}
}

func (t *keyThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[ev.Key] = struct{}{}
	if t.timer != nil {
		return
	}
	t.timer = time.AfterFunc(t.delay, func() {
		t.mu.Lock()
		keys := t.pending
		t.pending = make(map[string]struct{})
		t.timer = nil
		t.mu.Unlock()
		for key := range keys {
			send(Event{Key: key})
		}
	})
}

func (t *keyThrottle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
