// Package watcher notices writes to the shared store by other processes and
// publishes debounced change notifications. It is the cross-process analog
// of storage events between browser tabs: best-effort, advisory, and only
// consumed to prompt conflict checks or reloads.
package watcher

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/maemreyo/glean-teleprompter/internal/log"
	"github.com/maemreyo/glean-teleprompter/internal/pubsub"
)

// EventType identifies what changed in the store.
type EventType int

const (
	// StoreChanged means the watched record was written or replaced.
	StoreChanged EventType = iota
	// StoreRemoved means the watched record was deleted.
	StoreRemoved
)

// Event is the payload published on store changes.
type Event struct {
	Type EventType
	Path string
}

// DefaultDebounce coalesces the create/write/rename bursts an atomic
// temp-and-rename save produces into one notification.
const DefaultDebounce = 250 * time.Millisecond

// Config configures a watcher.
type Config struct {
	// Path is the file to watch, typically the active-draft record.
	Path string
	// DebounceDur coalesces rapid events; 0 selects DefaultDebounce.
	DebounceDur time.Duration
}

// Watcher watches one store file via its parent directory, since atomic
// renames would otherwise detach a direct file watch.
type Watcher struct {
	cfg    Config
	fsw    *fsnotify.Watcher
	broker *pubsub.Broker[Event]

	mu      sync.Mutex
	timer   *time.Timer
	pending EventType
	done    chan struct{}
	started bool
	stopped bool
}

// New creates a watcher for the given file.
func New(cfg Config) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, errors.New("watcher: path is required")
	}
	if cfg.DebounceDur <= 0 {
		cfg.DebounceDur = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		cfg:    cfg,
		fsw:    fsw,
		broker: pubsub.NewBroker[Event](),
		done:   make(chan struct{}),
	}, nil
}

// Broker exposes change events for subscription.
func (w *Watcher) Broker() *pubsub.Broker[Event] { return w.broker }

// Start begins watching. Events for unrelated files in the store directory
// are ignored.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return errors.New("watcher: already started")
	}
	if err := w.fsw.Add(filepath.Dir(w.cfg.Path)); err != nil {
		return err
	}
	w.started = true
	go w.loop()
	return nil
}

// Stop ends watching and cancels any pending notification.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	want := filepath.Clean(w.cfg.Path)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != want {
				continue
			}
			switch {
			case ev.Op.Has(fsnotify.Remove):
				w.schedule(StoreRemoved)
			case ev.Op.Has(fsnotify.Write), ev.Op.Has(fsnotify.Create), ev.Op.Has(fsnotify.Rename):
				w.schedule(StoreChanged)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatWatcher, "watch error", "error", err)
		case <-w.done:
			return
		}
	}
}

// schedule coalesces a burst of events into one notification after the
// debounce window. A removal followed by a write within the window reports
// as a change, matching the end state.
func (w *Watcher) schedule(t EventType) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.pending = t
	if w.timer != nil {
		w.timer.Reset(w.cfg.DebounceDur)
		return
	}
	w.timer = time.AfterFunc(w.cfg.DebounceDur, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	t := w.pending
	w.timer = nil
	w.mu.Unlock()

	w.broker.Publish(Event{Type: t, Path: w.cfg.Path})
	log.Debug(log.CatWatcher, "store change published", "path", w.cfg.Path)
}
