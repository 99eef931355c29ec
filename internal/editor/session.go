package editor

import (
	"errors"

	"github.com/maemreyo/glean-teleprompter/internal/history"
	"github.com/maemreyo/glean-teleprompter/internal/log"
	"github.com/maemreyo/glean-teleprompter/internal/prompter"
	"github.com/maemreyo/glean-teleprompter/internal/storage"
)

// UIPrefs are the small interface preferences persisted with the session so
// a restart lands the user where they left off.
type UIPrefs struct {
	ActiveTab string `json:"activeTab"`
	PanelOpen bool   `json:"panelOpen"`
}

// SessionState is the config-snapshot record: live configuration, the
// undo/redo stacks with the current position, and UI preferences. Restoring
// it is best-effort; a corrupt session never blocks startup.
type SessionState struct {
	Content      string                  `json:"content"`
	Config       prompter.ConfigSnapshot `json:"config"`
	Past         []history.Entry         `json:"past"`
	Future       []history.Entry         `json:"future"`
	CurrentIndex int                     `json:"currentHistoryIndex"`
	UIPrefs      UIPrefs                 `json:"uiPrefs"`
}

// SaveSession persists the current editing context under the config-snapshot
// key.
func SaveSession(drv storage.Driver, s *Store, prefs UIPrefs) error {
	state := SessionState{
		Content:      s.Content(),
		Config:       s.Snapshot(),
		Past:         s.History().Past(),
		Future:       s.History().Future(),
		CurrentIndex: s.History().Index(),
		UIPrefs:      prefs,
	}
	return storage.WriteJSON(drv, storage.KeyConfigSnapshot, state)
}

// LoadSession reads a persisted session. Absence is reported via
// storage.ErrNotFound; corruption via storage.ErrCorruptedData.
func LoadSession(drv storage.Driver) (SessionState, error) {
	var state SessionState
	if err := storage.ReadJSON(drv, storage.KeyConfigSnapshot, &state); err != nil {
		return SessionState{}, err
	}
	return state, nil
}

// RestoreSession applies a loaded session onto the store: content, config,
// and both history stacks. Invalid sessions are ignored with a log line.
func (s *Store) RestoreSession(state SessionState) {
	s.hist.SetMode(history.ModeBulkLoading)

	s.mu.Lock()
	s.content = state.Content
	s.cfg = prompter.Clamped(state.Config)
	s.mu.Unlock()

	s.hist.SetMode(history.ModeIdle)
	if len(state.Past) > 0 {
		s.hist.Restore(state.Past, state.Future)
	}
	log.Info(log.CatHistory, "session restored",
		"pastEntries", len(state.Past), "futureEntries", len(state.Future))
}

// TryRestoreSession loads and applies a persisted session if one exists.
// Returns the UI preferences and whether a session was applied.
func TryRestoreSession(drv storage.Driver, s *Store) (UIPrefs, bool) {
	state, err := LoadSession(drv)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warn(log.CatStorage, "session snapshot unreadable", "error", err)
		}
		return UIPrefs{}, false
	}
	s.RestoreSession(state)
	return state.UIPrefs, true
}
