// Package history provides a bounded undo/redo stack over configuration
// snapshots plus the recording policy that decides whether a mutation is
// committed to history immediately or coalesced with its neighbors.
package history

import (
	"sync"
	"time"

	"github.com/maemreyo/glean-teleprompter/internal/prompter"
)

const (
	// DefaultMaxEntries is the default undo depth.
	DefaultMaxEntries = 50
	// MaxEntries is the absolute maximum undo depth allowed.
	MaxEntries = 1000
)

// Entry is one recorded state. Config carries only the sections that changed;
// the consumer merges them into the live snapshot rather than replacing it.
type Entry struct {
	Timestamp int64            `json:"timestamp"` // ms since epoch
	Action    string           `json:"action"`    // human label, e.g. "Font size changed"
	Config    prompter.Partial `json:"config"`
}

// Mode is the manager's re-entrancy guard. While an undo, redo, or bulk load
// is applying state, Push is a no-op so the operation cannot pollute history
// with entries for the changes it causes itself.
type Mode int

const (
	ModeIdle Mode = iota
	ModeUndoing
	ModeRedoing
	ModeBulkLoading
)

// Manager owns the past/future stacks. The newest past entry is the committed
// current state; past[0] is the oldest state still reachable by undo.
//
// All methods are safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	past    []Entry
	future  []Entry
	maxSize int
	mode    Mode
}

// NewManager creates a manager with the given undo depth. A depth of 0 or
// less selects DefaultMaxEntries; anything above MaxEntries is clamped.
func NewManager(maxSize int) *Manager {
	if maxSize <= 0 {
		maxSize = DefaultMaxEntries
	}
	if maxSize > MaxEntries {
		maxSize = MaxEntries
	}
	return &Manager{
		past:    make([]Entry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Push appends an entry to the past stack and discards any redo branch.
// When the stack is full the oldest entry is evicted. Pushing while the
// manager is not idle is a no-op.
func (m *Manager) Push(e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode != ModeIdle {
		return
	}

	if len(m.past) >= m.maxSize {
		// Shift entries down by one, dropping the oldest.
		copy(m.past, m.past[1:])
		m.past[len(m.past)-1] = e
	} else {
		m.past = append(m.past, e)
	}

	// A fresh edit invalidates the redo branch.
	m.future = m.future[:0]
}

// Undo moves the current state onto the redo stack and returns the previous
// entry, which the caller merges into the live configuration. Returns false
// when fewer than two states exist: the earliest state is not undoable past.
func (m *Manager) Undo() (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.past) < 2 {
		return Entry{}, false
	}

	top := m.past[len(m.past)-1]
	m.past = m.past[:len(m.past)-1]
	m.future = append([]Entry{top}, m.future...)

	return m.past[len(m.past)-1], true
}

// Redo pops the nearest future entry back onto the past stack and returns it.
// Returns false when there is nothing to redo.
func (m *Manager) Redo() (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.future) == 0 {
		return Entry{}, false
	}

	next := m.future[0]
	m.future = m.future[1:]
	m.past = append(m.past, next)

	return next, true
}

// CanUndo reports whether Undo would succeed.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.past) >= 2
}

// CanRedo reports whether Redo would succeed.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.future) > 0
}

// Clear empties both stacks. Called when a preset, template, or remote script
// replaces the document wholesale, so undo cannot cross into another
// document's state.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.past = m.past[:0]
	m.future = m.future[:0]
}

// SetMode switches the re-entrancy guard. Callers applying an undo/redo/bulk
// load set the matching mode first and restore ModeIdle when done.
func (m *Manager) SetMode(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = mode
}

// CurrentMode returns the active guard mode.
func (m *Manager) CurrentMode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Len returns the number of past entries.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.past)
}

// Index returns the position of the current state within the past stack,
// or -1 when the stack is empty.
func (m *Manager) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.past) - 1
}

// Past returns a copy of the past stack, oldest to newest.
func (m *Manager) Past() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.past))
	copy(out, m.past)
	return out
}

// Future returns a copy of the future stack, nearest to farthest.
func (m *Manager) Future() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.future))
	copy(out, m.future)
	return out
}

// Restore replaces both stacks from a persisted session snapshot. Entries
// beyond the configured depth are dropped from the oldest end.
func (m *Manager) Restore(past, future []Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(past) > m.maxSize {
		past = past[len(past)-m.maxSize:]
	}
	m.past = append(m.past[:0], past...)
	m.future = append(m.future[:0], future...)
	m.mode = ModeIdle
}

// NowMillis returns the current wall clock in ms since epoch, the timestamp
// unit used throughout persisted records.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
