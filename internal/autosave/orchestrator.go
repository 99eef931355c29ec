// Package autosave watches for editing-state changes, debounces durable
// saves, checkpoints periodically, and detects concurrent writes by other
// processes sharing the store. It is the sole writer of the active-draft key.
package autosave

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/maemreyo/glean-teleprompter/internal/log"
	"github.com/maemreyo/glean-teleprompter/internal/prompter"
	"github.com/maemreyo/glean-teleprompter/internal/pubsub"
	"github.com/maemreyo/glean-teleprompter/internal/quota"
	"github.com/maemreyo/glean-teleprompter/internal/schema"
	"github.com/maemreyo/glean-teleprompter/internal/storage"
)

// Status is the save state machine exposed to the UI indicator.
type Status int

const (
	StatusIdle Status = iota
	StatusSaving
	StatusSaved
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSaving:
		return "saving"
	case StatusSaved:
		return "saved"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// StatusEvent is published on every status transition.
type StatusEvent struct {
	Status     Status
	Message    string // user-facing error text, empty unless StatusError
	SavedAt    int64  // ms epoch of the last successful save
	QuotaLevel quota.Level
	// WarningDismissed tells the UI the quota warning was already
	// acknowledged. Critical level is shown regardless.
	WarningDismissed bool
}

// SaveResult reports a single save attempt.
type SaveResult struct {
	Saved      bool
	Skipped    bool // gated off by editor mode
	Conflicted bool
	Resolution Resolution
	Err        error
}

// Source is the editing state the orchestrator persists. Implemented by
// editor.Store.
type Source interface {
	Content() string
	Snapshot() prompter.ConfigSnapshot
	Mode() prompter.Mode
}

const (
	DefaultDebounce   = 1000 * time.Millisecond
	DefaultCheckpoint = 5000 * time.Millisecond
)

// Orchestrator runs the auto-save state machine.
type Orchestrator struct {
	mu sync.Mutex

	drv      storage.Driver
	monitor  *quota.Monitor
	src      Source
	resolver Resolver
	broker   *pubsub.Broker[StatusEvent]

	debounce   time.Duration
	checkpoint time.Duration
	timer      *time.Timer
	done       chan struct{}
	closed     bool
	started    bool

	status     Status
	message    string
	draftID    string
	lastSynced int64 // durable timestamp of the last successful sync

	// Draft fields the editor cannot reproduce from its own state. Carried
	// from the adopted draft so saves do not blank them.
	backgroundURL string
	musicURL      string

	warnDismissed bool
	unavailable   bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithDebounce overrides the change-driven save delay.
func WithDebounce(d time.Duration) Option {
	return func(o *Orchestrator) { o.debounce = d }
}

// WithCheckpoint overrides the periodic checkpoint interval.
func WithCheckpoint(d time.Duration) Option {
	return func(o *Orchestrator) { o.checkpoint = d }
}

// WithResolver installs the conflict resolution callback.
func WithResolver(r Resolver) Option {
	return func(o *Orchestrator) { o.resolver = r }
}

// New creates an orchestrator. Call Start to run the periodic checkpoint
// loop; NotifyChange works immediately either way.
func New(drv storage.Driver, monitor *quota.Monitor, src Source, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		drv:        drv,
		monitor:    monitor,
		src:        src,
		broker:     pubsub.NewBroker[StatusEvent](),
		debounce:   DefaultDebounce,
		checkpoint: DefaultCheckpoint,
		done:       make(chan struct{}),

		warnDismissed: storage.ReadFlag(drv, storage.KeyWarningDismissed),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Broker exposes status events for subscription.
func (o *Orchestrator) Broker() *pubsub.Broker[StatusEvent] { return o.broker }

// Adopt seeds the orchestrator with a previously loaded draft so subsequent
// saves keep its identity, its media URLs, and conflict detection starts from
// its timestamp.
func (o *Orchestrator) Adopt(d schema.Draft) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.draftID = d.ID
	o.lastSynced = d.Timestamp
	o.backgroundURL = d.BackgroundURL
	o.musicURL = d.MusicURL
}

// Start launches the periodic checkpoint loop. Long idle sessions still get
// durable checkpoints even when no change fires the debounce.
func (o *Orchestrator) Start() {
	o.mu.Lock()
	if o.started || o.closed {
		o.mu.Unlock()
		return
	}
	o.started = true
	o.mu.Unlock()

	go func() {
		ticker := time.NewTicker(o.checkpoint)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				o.save(false)
			case <-o.done:
				return
			}
		}
	}()
}

// NotifyChange starts or resets the debounced save. Called by the store
// after every mutation, always after the matching history push.
func (o *Orchestrator) NotifyChange() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	// A new change moves a settled "saved" badge back to idle.
	if o.status == StatusSaved {
		o.setStatusLocked(StatusIdle, "")
	}
	if o.timer != nil {
		o.timer.Reset(o.debounce)
		return
	}
	o.timer = time.AfterFunc(o.debounce, func() { o.save(false) })
}

// SaveNow cancels any pending debounce and saves immediately.
func (o *Orchestrator) SaveNow() SaveResult {
	o.CancelSave()
	return o.save(false)
}

// Flush performs the final synchronous save on teardown, bypassing
// debouncing. Unlike SaveNow it also runs when the orchestrator is closed
// for new work.
func (o *Orchestrator) Flush() SaveResult {
	o.CancelSave()
	return o.save(true)
}

// CancelSave drops a pending debounced save without saving.
func (o *Orchestrator) CancelSave() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

// ResetStatus forces the state machine back to idle after the UI has
// acknowledged an error.
func (o *Orchestrator) ResetStatus() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.setStatusLocked(StatusIdle, "")
}

// Status returns the current state and error message.
func (o *Orchestrator) Status() (Status, string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status, o.message
}

// LastSaved returns the ms timestamp of the last successful save, 0 if none.
func (o *Orchestrator) LastSaved() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastSynced
}

// Close stops all timers and the checkpoint loop. A debounce that already
// fired may complete; no new saves start afterward.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	o.mu.Unlock()
	close(o.done)
}

// save runs one attempt through the full pipeline: mode gate, conflict
// check, quota check, write, status transition.
func (o *Orchestrator) save(final bool) SaveResult {
	o.mu.Lock()
	if o.closed && !final {
		o.mu.Unlock()
		return SaveResult{Skipped: true}
	}
	o.timer = nil

	mode := o.src.Mode()
	if mode != prompter.ModeSetup {
		o.mu.Unlock()
		log.Debug(log.CatAutosave, "save skipped", "mode", mode.String())
		return SaveResult{Skipped: true}
	}

	o.setStatusLocked(StatusSaving, "")
	draftID := o.draftID
	lastSynced := o.lastSynced
	backgroundURL := o.backgroundURL
	musicURL := o.musicURL
	o.mu.Unlock()

	// Conflict gate: a newer durable copy means another process wrote after
	// our last sync. The resolver decides; absent one, cancel.
	if conflict, ok := detectConflict(o.drv, lastSynced); ok {
		res := ResolutionCancel
		if o.resolver != nil {
			res = o.resolver(conflict)
		}
		log.Warn(log.CatAutosave, "save conflict detected",
			"local", conflict.LocalTimestamp,
			"remote", conflict.RemoteTimestamp,
			"resolution", res.String())
		if res != ResolutionOverwrite {
			o.mu.Lock()
			o.setStatusLocked(StatusIdle, "")
			o.mu.Unlock()
			return SaveResult{Conflicted: true, Resolution: res}
		}
	}

	draft := o.buildDraft(draftID, backgroundURL, musicURL)
	data, err := json.Marshal(draft)
	if err != nil {
		return o.fail(err)
	}

	if err := o.monitor.CheckWrite(storage.KeyActiveDraft, data); err != nil {
		return o.fail(err)
	}
	if err := o.drv.Write(storage.KeyActiveDraft, data); err != nil {
		return o.fail(err)
	}

	level, _ := o.monitor.WarningLevel()

	o.mu.Lock()
	o.draftID = draft.ID
	o.lastSynced = draft.Timestamp
	o.status = StatusSaved
	o.message = ""
	dismissed := o.warnDismissed
	recovered := o.unavailable
	o.unavailable = false
	o.mu.Unlock()

	if recovered {
		_ = storage.WriteFlag(o.drv, storage.KeyUnavailableDetected, false)
		log.Info(log.CatAutosave, "storage recovered")
	}

	o.broker.Publish(StatusEvent{
		Status:           StatusSaved,
		SavedAt:          draft.Timestamp,
		QuotaLevel:       level,
		WarningDismissed: dismissed,
	})
	log.Debug(log.CatAutosave, "draft saved", "id", draft.ID, "bytes", len(data))
	return SaveResult{Saved: true, Resolution: ResolutionOverwrite}
}

func (o *Orchestrator) buildDraft(id, backgroundURL, musicURL string) schema.Draft {
	if id == "" {
		id = uuid.New().String()
	}
	d := schema.Draft{
		ID:            id,
		Version:       schema.CurrentVersion,
		Content:       o.src.Content(),
		BackgroundURL: backgroundURL,
		MusicURL:      musicURL,
	}
	d.ApplyConfig(o.src.Snapshot())
	d.Touch()
	return d
}

// fail converts a save error into the error status with a user-facing
// message. Errors never propagate as panics out of the timer goroutines.
func (o *Orchestrator) fail(err error) SaveResult {
	msg := userMessage(err)
	o.mu.Lock()
	o.setStatusLocked(StatusError, msg)
	firstUnavailable := errors.Is(err, storage.ErrStorageUnavailable) && !o.unavailable
	if firstUnavailable {
		o.unavailable = true
	}
	o.mu.Unlock()
	if firstUnavailable {
		// Best effort: the write usually fails for the same reason the save
		// did, but a transient EACCES may still let the marker through.
		_ = storage.WriteFlag(o.drv, storage.KeyUnavailableDetected, true)
	}
	log.Error(log.CatAutosave, "save failed", "error", err)
	return SaveResult{Err: err}
}

// DismissWarning records that the user acknowledged the quota warning, in
// memory and in the store, so later sessions stay quiet until critical.
func (o *Orchestrator) DismissWarning() {
	o.mu.Lock()
	o.warnDismissed = true
	o.mu.Unlock()
	if err := storage.WriteFlag(o.drv, storage.KeyWarningDismissed, true); err != nil {
		log.Warn(log.CatAutosave, "could not persist warning dismissal", "error", err)
	}
}

// StorageUnavailable reports whether the last save found the store
// unreachable.
func (o *Orchestrator) StorageUnavailable() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.unavailable
}

func (o *Orchestrator) setStatusLocked(s Status, msg string) {
	if o.status == s && o.message == msg {
		return
	}
	o.status = s
	o.message = msg
	o.broker.Publish(StatusEvent{Status: s, Message: msg, SavedAt: o.lastSynced})
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, storage.ErrQuotaExceeded):
		return "Storage is full. Remove old drafts or lower retention."
	case errors.Is(err, storage.ErrStorageUnavailable):
		return "Storage is unavailable. Changes are kept in memory only."
	case errors.Is(err, storage.ErrCorruptedData):
		return "A stored record could not be read."
	default:
		return "Save failed: " + err.Error()
	}
}
