// Package editor owns the live editing state: the current configuration
// snapshot and script content, with every mutation routed through the
// history recorder and the auto-save notifier in that order.
//
// The store is an explicit instance constructed at startup and threaded
// through constructors; there is no package-level state.
package editor

import (
	"sync"

	"github.com/maemreyo/glean-teleprompter/internal/history"
	"github.com/maemreyo/glean-teleprompter/internal/log"
	"github.com/maemreyo/glean-teleprompter/internal/prompter"
)

// Saver is the auto-save hook. The store calls NotifyChange after every
// accepted mutation, always after the history push for that mutation.
type Saver interface {
	NotifyChange()
}

// Store is the single owner of the live ConfigSnapshot and script content.
type Store struct {
	mu      sync.RWMutex
	content string
	cfg     prompter.ConfigSnapshot
	mode    prompter.Mode

	hist  *history.Manager
	rec   *history.Recorder
	saver Saver
}

// New creates a store over the given history manager and recorder. The
// initial configuration is pushed as the first history entry so undo can
// always reach the starting state. saver may be nil (tests).
func New(cfg prompter.ConfigSnapshot, hist *history.Manager, rec *history.Recorder, saver Saver) *Store {
	s := &Store{
		cfg:   prompter.Clamped(cfg),
		hist:  hist,
		rec:   rec,
		saver: saver,
	}
	s.hist.Push(history.Entry{
		Timestamp: history.NowMillis(),
		Action:    "Initial state",
		Config:    prompter.Full(s.cfg),
	})
	return s
}

// Snapshot returns the live configuration.
func (s *Store) Snapshot() prompter.ConfigSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Content returns the script content.
func (s *Store) Content() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content
}

// Mode returns the editor mode.
func (s *Store) Mode() prompter.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode switches the editor mode. Mode changes are not undoable.
func (s *Store) SetMode(m prompter.Mode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
	log.Debug(log.CatHistory, "editor mode changed", "mode", m.String())
}

// SetContent replaces the script content. Content edits are persisted but
// not recorded into configuration history.
func (s *Store) SetContent(text string) {
	s.mu.Lock()
	changed := s.content != text
	s.content = text
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// SetTypography applies a discrete typography change.
func (s *Store) SetTypography(t prompter.Typography) {
	t.FontSize = prompter.ClampFontSize(t.FontSize)
	t.LineHeight = prompter.ClampLineHeight(t.LineHeight)
	s.applyDiscrete("Typography changed", prompter.Partial{Typography: &t})
}

// SetColors applies a discrete color change.
func (s *Store) SetColors(c prompter.Colors) {
	c.Opacity = prompter.ClampOpacity(c.Opacity)
	s.applyDiscrete("Colors changed", prompter.Partial{Colors: &c})
}

// SetEffects applies a discrete effects change.
func (s *Store) SetEffects(e prompter.Effects) {
	e.FocalPoint = prompter.ClampFocalPoint(e.FocalPoint)
	s.applyDiscrete("Effects changed", prompter.Partial{Effects: &e})
}

// SetLayout applies a discrete layout change.
func (s *Store) SetLayout(l prompter.Layout) {
	l.SideMargin = prompter.ClampSideMargin(l.SideMargin)
	s.applyDiscrete("Layout changed", prompter.Partial{Layout: &l})
}

// SetAnimations applies a discrete animation change.
func (s *Store) SetAnimations(a prompter.Animations) {
	a.ScrollSpeed = prompter.ClampScrollSpeed(a.ScrollSpeed)
	s.applyDiscrete("Animations changed", prompter.Partial{Animations: &a})
}

// NudgeFontSize adjusts the font size by delta as a continuous gesture.
func (s *Store) NudgeFontSize(delta int) {
	s.mu.Lock()
	t := s.cfg.Typography
	t.FontSize = prompter.ClampFontSize(t.FontSize + delta)
	changed := t != s.cfg.Typography
	s.cfg.Typography = t
	s.mu.Unlock()
	if changed {
		s.applyContinuous("fontSize", "Font size changed", prompter.Partial{Typography: &t})
	}
}

// NudgeScrollSpeed adjusts the scroll speed by delta as a continuous gesture.
func (s *Store) NudgeScrollSpeed(delta int) {
	s.mu.Lock()
	a := s.cfg.Animations
	a.ScrollSpeed = prompter.ClampScrollSpeed(a.ScrollSpeed + delta)
	changed := a != s.cfg.Animations
	s.cfg.Animations = a
	s.mu.Unlock()
	if changed {
		s.applyContinuous("scrollSpeed", "Scroll speed changed", prompter.Partial{Animations: &a})
	}
}

// NudgeOpacity adjusts the background opacity as a continuous gesture.
func (s *Store) NudgeOpacity(delta float64) {
	s.mu.Lock()
	c := s.cfg.Colors
	c.Opacity = prompter.ClampOpacity(c.Opacity + delta)
	changed := c != s.cfg.Colors
	s.cfg.Colors = c
	s.mu.Unlock()
	if changed {
		s.applyContinuous("opacity", "Opacity changed", prompter.Partial{Colors: &c})
	}
}

// NudgeFocalPoint adjusts the focal point as a continuous gesture.
func (s *Store) NudgeFocalPoint(delta int) {
	s.mu.Lock()
	e := s.cfg.Effects
	e.FocalPoint = prompter.ClampFocalPoint(e.FocalPoint + delta)
	changed := e != s.cfg.Effects
	s.cfg.Effects = e
	s.mu.Unlock()
	if changed {
		s.applyContinuous("focalPoint", "Focal point changed", prompter.Partial{Effects: &e})
	}
}

// NudgeLineHeight adjusts the line height as a continuous gesture.
func (s *Store) NudgeLineHeight(delta float64) {
	s.mu.Lock()
	t := s.cfg.Typography
	t.LineHeight = prompter.ClampLineHeight(t.LineHeight + delta)
	changed := t != s.cfg.Typography
	s.cfg.Typography = t
	s.mu.Unlock()
	if changed {
		s.applyContinuous("lineHeight", "Line height changed", prompter.Partial{Typography: &t})
	}
}

// NudgeSideMargin adjusts the side margin as a continuous gesture.
func (s *Store) NudgeSideMargin(delta int) {
	s.mu.Lock()
	l := s.cfg.Layout
	l.SideMargin = prompter.ClampSideMargin(l.SideMargin + delta)
	changed := l != s.cfg.Layout
	s.cfg.Layout = l
	s.mu.Unlock()
	if changed {
		s.applyContinuous("sideMargin", "Side margin changed", prompter.Partial{Layout: &l})
	}
}

// Undo steps the configuration one state back. Returns the restored entry's
// action label, or false when there is nothing to undo.
func (s *Store) Undo() (string, bool) {
	// An in-flight continuous gesture must commit first or it would be lost.
	s.rec.Flush()

	s.hist.SetMode(history.ModeUndoing)
	defer s.hist.SetMode(history.ModeIdle)

	entry, ok := s.hist.Undo()
	if !ok {
		return "", false
	}
	s.rebuildFromPast()
	log.Debug(log.CatHistory, "undo applied", "action", entry.Action)
	return entry.Action, true
}

// Redo steps the configuration one state forward.
func (s *Store) Redo() (string, bool) {
	s.hist.SetMode(history.ModeRedoing)
	defer s.hist.SetMode(history.ModeIdle)

	entry, ok := s.hist.Redo()
	if !ok {
		return "", false
	}
	s.applyEntry(entry)
	log.Debug(log.CatHistory, "redo applied", "action", entry.Action)
	return entry.Action, true
}

// CanUndo reports whether Undo would change state.
func (s *Store) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether Redo would change state.
func (s *Store) CanRedo() bool { return s.hist.CanRedo() }

// SetAll replaces the whole document state from an external source (preset,
// template, remote script). History is reset so undo cannot cross documents.
func (s *Store) SetAll(content string, cfg prompter.ConfigSnapshot) {
	s.hist.SetMode(history.ModeBulkLoading)

	s.mu.Lock()
	s.content = content
	s.cfg = prompter.Clamped(cfg)
	snapshot := s.cfg
	s.mu.Unlock()

	s.hist.Clear()
	s.hist.SetMode(history.ModeIdle)
	s.hist.Push(history.Entry{
		Timestamp: history.NowMillis(),
		Action:    "Document loaded",
		Config:    prompter.Full(snapshot),
	})
	s.notify()
	log.Info(log.CatHistory, "document loaded, history reset")
}

// History exposes the underlying manager for status queries and session
// persistence.
func (s *Store) History() *history.Manager { return s.hist }

// applyEntry merges an entry's sections into the live snapshot. Unrelated
// sections are untouched. Correct for redo: the entry carries the new values
// of exactly the sections that edit changed.
func (s *Store) applyEntry(e history.Entry) {
	s.mu.Lock()
	s.cfg = prompter.Clamped(e.Config.Apply(s.cfg))
	s.mu.Unlock()
	s.notify()
}

// rebuildFromPast replays the remaining past stack, oldest first, to produce
// the undone state. The bottom entry is a full snapshot, so sections only the
// popped entry touched revert too instead of keeping their post-edit values.
func (s *Store) rebuildFromPast() {
	past := s.hist.Past()
	s.mu.Lock()
	cfg := s.cfg
	for _, e := range past {
		cfg = e.Config.Apply(cfg)
	}
	s.cfg = prompter.Clamped(cfg)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) applyDiscrete(action string, p prompter.Partial) {
	s.mu.Lock()
	next := p.Apply(s.cfg)
	if next == s.cfg {
		s.mu.Unlock()
		return
	}
	s.cfg = next
	s.mu.Unlock()

	s.rec.RecordDiscrete(action, p)
	s.notify()
}

func (s *Store) applyContinuous(site, action string, p prompter.Partial) {
	s.rec.RecordContinuous(site, action, p)
	s.notify()
}

func (s *Store) notify() {
	if s.saver != nil {
		s.saver.NotifyChange()
	}
}
