// Package reload invalidates compiled template caches when files under
// watched template directories change.
package reload

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Invalidator is the cache side of the engine the watcher drives.
// *render.Engine satisfies it.
type Invalidator interface {
	Invalidate()
}

// Option configures a Watcher before Start.
type Option func(*Watcher)

// WithDebounce overrides the interval used to coalesce rapid save bursts.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounceDur = d
		}
	}
}

// Watcher monitors template directories and drops the engine's compiled
// template cache whenever a file is created, written, removed, or renamed.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	target      Invalidator
	dirs        []string
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	stopped     bool
}

// NewWatcher constructs a watcher over the provided template directories.
func NewWatcher(target Invalidator, dirs []string, options ...Option) (*Watcher, error) {
	if target == nil {
		return nil, fmt.Errorf("reload: invalidator is required")
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("reload: at least one directory is required")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("reload: create watcher: %w", err)
	}

	w := &Watcher{
		watcher:     fsWatcher,
		target:      target,
		dirs:        append([]string{}, dirs...),
		debounceDur: 500 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w, nil
}

// Start begins watching. It is non-blocking; the event loop runs in a
// goroutine until Stop is called or ctx is cancelled. A watcher is one-shot:
// once stopped it cannot be started again.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return fmt.Errorf("reload: watcher already stopped")
	}
	if w.running {
		return nil
	}

	for _, dir := range w.dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("reload: watch %q: %w", dir, err)
		}
	}

	w.running = true
	go w.loop(ctx)
	return nil
}

// Stop terminates the event loop and releases the underlying watcher. It is
// idempotent and safe to call even when Start failed or was never called.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	if wasRunning {
		<-w.doneCh
	}
	_ = w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)

	var pending *time.Timer
	var pendingCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
				!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if pending == nil {
				pending = time.NewTimer(w.debounceDur)
				pendingCh = pending.C
			} else {
				if !pending.Stop() {
					select {
					case <-pending.C:
					default:
					}
				}
				pending.Reset(w.debounceDur)
			}
		case <-pendingCh:
			pending = nil
			pendingCh = nil
			w.target.Invalidate()
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are not fatal; the next event still invalidates.
		}
	}
}
