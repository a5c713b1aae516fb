// Package watcher signals when a data file changes on disk.
//
// The file's directory is watched rather than the file itself, because
// most editors save by writing a temp file and renaming it over the
// original, which would silently drop a direct file watch.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Dicklesworthstone/arbor/pkg/logging"
)

// Watcher emits a signal on Changed() whenever the target file is
// written, created, or renamed into place.
type Watcher struct {
	path string
	base string

	fsw     *fsnotify.Watcher
	changed chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	// debounce rapid change bursts
	lastEvent time.Time
	debounce  time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDuration overrides the default 200ms event debounce.
func WithDebounceDuration(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// NewWatcher prepares a watcher for the given file path. Nothing is
// watched until Start is called.
func NewWatcher(path string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := &Watcher{
		path:     path,
		base:     filepath.Base(path),
		fsw:      fsw,
		changed:  make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
		debounce: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Start begins watching the file's directory.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go w.watchLoop()
	return nil
}

// Stop shuts the watcher down. The Changed channel stays open but goes
// quiet, so pending receivers are not disturbed.
func (w *Watcher) Stop() {
	w.cancel()
	w.fsw.Close()
}

// Changed returns the notification channel. The channel has a buffer of
// one; bursts collapse into a single pending signal.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

// watchLoop filters directory events down to the target file and
// debounces bursts into one signal.
func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != w.base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			now := time.Now()
			if now.Sub(w.lastEvent) < w.debounce {
				continue
			}
			w.lastEvent = now

			w.notify()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Errors degrade the watch but never stop it.
			logging.Warnf("watch error for %s: %v", w.path, err)
		}
	}
}

// notify sends without blocking; a full buffer means a signal is already
// pending.
func (w *Watcher) notify() {
	select {
	case w.changed <- struct{}{}:
	default:
	}
}
