package history

import (
	"sync"
	"time"

	"github.com/maemreyo/glean-teleprompter/internal/prompter"
)

// DefaultCoalesceWindow is how long a continuous gesture must stay quiet
// before its final value is committed to history.
const DefaultCoalesceWindow = 50 * time.Millisecond

// Recorder implements the recording policy: discrete mutations are pushed
// immediately, continuous mutations (slider drags, key-repeat nudges) are
// coalesced per call site so only the final value of a gesture lands in
// history.
//
// Timer handles are owned by the instance, keyed by call site, so tests and
// multiple documents never share debounce state.
type Recorder struct {
	mu      sync.Mutex
	mgr     *Manager
	window  time.Duration
	timers  map[string]*time.Timer
	pending map[string]Entry
	sink    func(Entry)
	closed  bool
	now     func() int64
}

// NewRecorder creates a recorder that pushes into mgr. A window of 0 selects
// DefaultCoalesceWindow. sink, if non-nil, is invoked after every push so the
// auto-save path observes the mutation; the push always happens first.
func NewRecorder(mgr *Manager, window time.Duration, sink func(Entry)) *Recorder {
	if window <= 0 {
		window = DefaultCoalesceWindow
	}
	return &Recorder{
		mgr:     mgr,
		window:  window,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]Entry),
		sink:    sink,
		now:     NowMillis,
	}
}

// RecordDiscrete commits a mutation to history immediately.
// Suppressed while the manager is applying an undo, redo, or bulk load.
func (r *Recorder) RecordDiscrete(action string, config prompter.Partial) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.mgr.CurrentMode() != ModeIdle {
		return
	}
	r.commit(Entry{Timestamp: r.now(), Action: action, Config: config})
}

// RecordContinuous schedules a mutation for coalesced commit. Repeated calls
// for the same site within the window replace the pending entry and reset the
// timer; only the last call's label and data are committed.
func (r *Recorder) RecordContinuous(site, action string, config prompter.Partial) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.mgr.CurrentMode() != ModeIdle {
		return
	}

	r.pending[site] = Entry{Timestamp: r.now(), Action: action, Config: config}

	if t, ok := r.timers[site]; ok {
		t.Reset(r.window)
		return
	}
	r.timers[site] = time.AfterFunc(r.window, func() { r.fire(site) })
}

// Flush commits every pending continuous entry immediately. Called before an
// undo so an in-flight gesture is not lost, and on teardown.
func (r *Recorder) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for site := range r.pending {
		r.commitPendingLocked(site)
	}
}

// Close cancels all pending timers. A timer that fires after Close is a no-op.
func (r *Recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for site, t := range r.timers {
		t.Stop()
		delete(r.timers, site)
	}
	r.pending = make(map[string]Entry)
}

func (r *Recorder) fire(site string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.commitPendingLocked(site)
}

func (r *Recorder) commitPendingLocked(site string) {
	e, ok := r.pending[site]
	if !ok {
		return
	}
	delete(r.pending, site)
	if t, ok := r.timers[site]; ok {
		t.Stop()
		delete(r.timers, site)
	}
	if r.mgr.CurrentMode() != ModeIdle {
		return
	}
	r.commit(e)
}

// commit pushes the entry, then notifies the sink. The ordering is the
// durability contract: history is never behind what a save could persist.
func (r *Recorder) commit(e Entry) {
	r.mgr.Push(e)
	if r.sink != nil {
		r.sink(e)
	}
}
