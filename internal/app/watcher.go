package app

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/justyntemme/ddtabs/internal/debug"
)

// RootWatcher reports, debounced, when directories appear in or vanish
// from the watched roots.
type RootWatcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	watching map[string]bool
	notify   chan string
	done     chan struct{}
	debounce time.Duration
}

// NewRootWatcher starts a watcher. A non-positive debounce means 200ms.
func NewRootWatcher(debounce time.Duration) (*RootWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	rw := &RootWatcher{
		watcher:  w,
		watching: make(map[string]bool),
		notify:   make(chan string, 10),
		done:     make(chan struct{}),
		debounce: debounce,
	}
	go rw.run()
	return rw, nil
}

func (rw *RootWatcher) run() {
	lastEvent := make(map[string]time.Time)
	ticker := time.NewTicker(rw.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-rw.done:
			return

		case ev, ok := <-rw.watcher.Events:
			if !ok {
				return
			}
			// Writes never add or remove a subdirectory
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			parent := filepath.Dir(ev.Name)
			rw.mu.Lock()
			if rw.watching[parent] {
				lastEvent[parent] = time.Now()
				debug.Log(debug.FS, "fsnotify: %s on %s", ev.Op, ev.Name)
			}
			rw.mu.Unlock()

		case err, ok := <-rw.watcher.Errors:
			if !ok {
				return
			}
			debug.Log(debug.FS, "fsnotify error: %v", err)

		case <-ticker.C:
			now := time.Now()
			for dir, at := range lastEvent {
				if now.Sub(at) < rw.debounce {
					continue
				}
				select {
				case rw.notify <- dir:
					debug.Log(debug.FS, "change notification: %s", dir)
				default:
					// A notification for the root is already queued
				}
				delete(lastEvent, dir)
			}
		}
	}
}

// Watch adds dir to the watch list.
func (rw *RootWatcher) Watch(dir string) error {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	if rw.watching[dir] {
		return nil
	}
	if err := rw.watcher.Add(dir); err != nil {
		return err
	}
	rw.watching[dir] = true
	debug.Log(debug.FS, "watching %s", dir)
	return nil
}

// Notify returns the channel receiving changed roots.
func (rw *RootWatcher) Notify() <-chan string {
	return rw.notify
}

// Close stops the watcher.
func (rw *RootWatcher) Close() error {
	close(rw.done)
	return rw.watcher.Close()
}
