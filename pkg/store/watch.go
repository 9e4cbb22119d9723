package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event reports that the journal file for Key changed on disk.
type Event struct {
	Key string
}

// Watch streams change events for journal files until ctx is cancelled.
// Bursts of writes to one file are coalesced into a single event. The
// channel is closed once ctx is done or the watcher fails.
func (d *Documents) Watch(ctx context.Context, delay time.Duration) (<-chan Event, error) {
	if err := os.MkdirAll(d.dir, dirPerms); err != nil {
		return nil, &Error{Op: "create dir", Path: d.dir, Err: err}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(d.dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", d.dir, err)
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer func() {
			if err := watcher.Close(); err != nil {
				slog.Warn("watcher close", "err", err)
			}
		}()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Consumer is busy; the next write to the file re-triggers.
				slog.Debug("dropped change event", "key", ev.Key)
			}
		}

		throttle := newEventThrottle(delay)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("watch error", "dir", d.dir, "err", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				key := d.keyForPath(evt.Name)
				if key == "" {
					continue
				}
				throttle.Enqueue(key, send)
			}
		}
	}()

	return events, nil
}

// keyForPath returns the journal key for a file in the store directory, or
// "" for anything else, including atomic's temp files.
func (d *Documents) keyForPath(path string) string {
	if filepath.Dir(filepath.Clean(path)) != filepath.Clean(d.dir) {
		return ""
	}
	name := filepath.Base(path)
	if !strings.HasSuffix(name, Ext) {
		return ""
	}
	key := strings.TrimSuffix(name, Ext)
	if _, ok := ParseKey(key); !ok {
		return ""
	}
	return key
}

// eventThrottle coalesces rapid change notifications so each burst of
// writes to a file is handled once.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(key string, send func(Event)) {
	t.mu.Lock()
	t.pending[key] = struct{}{}
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
	t.pending = make(map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	keys := make([]string, 0, len(pending))
	for key := range pending {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		send(Event{Key: key})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
