// Package workspace is the main editing screen: the script pane, the
// settings panel, and the status bar fed by auto-save events.
package workspace

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maemreyo/glean-teleprompter/internal/autosave"
	"github.com/maemreyo/glean-teleprompter/internal/editor"
	"github.com/maemreyo/glean-teleprompter/internal/keys"
	"github.com/maemreyo/glean-teleprompter/internal/prompter"
	"github.com/maemreyo/glean-teleprompter/internal/pubsub"
	"github.com/maemreyo/glean-teleprompter/internal/watcher"
)

// Focus identifies which pane receives key input.
type Focus int

const (
	FocusScript Focus = iota
	FocusSettings
)

// StatusMsg carries an auto-save status transition into the update loop.
type StatusMsg autosave.StatusEvent

// StoreEventMsg carries an external store change into the update loop.
type StoreEventMsg watcher.Event

// Deps wires the workspace to the rest of the application. Everything but
// Store may be nil; the corresponding feature is simply inert.
type Deps struct {
	Store *editor.Store
	// SaveNow runs an immediate save, the orchestrator's SaveNow.
	SaveNow func() autosave.SaveResult
	// DismissWarning acknowledges the quota warning.
	DismissWarning func()
	StatusCh       <-chan pubsub.Event[autosave.StatusEvent]
	StoreCh        <-chan pubsub.Event[watcher.Event]
}

// Model is the workspace screen state.
type Model struct {
	store *editor.Store
	deps  Deps

	script    textarea.Model
	rows      []settingRow
	row       int
	focus     Focus
	showLog   bool
	notice    string
	status    autosave.StatusEvent
	dismissed bool

	width  int
	height int
}

// New creates the workspace over the editing store.
func New(deps Deps) Model {
	ta := textarea.New()
	ta.Placeholder = "Write your script here..."
	ta.ShowLineNumbers = false
	ta.SetValue(deps.Store.Content())
	ta.Focus()

	return Model{
		store:  deps.Store,
		deps:   deps,
		script: ta,
		rows:   buildRows(),
		focus:  FocusScript,
	}
}

// Init starts the event listeners.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		waitForStatus(m.deps.StatusCh),
		waitForStoreEvent(m.deps.StoreCh),
	)
}

func waitForStatus(ch <-chan pubsub.Event[autosave.StatusEvent]) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return StatusMsg(ev.Payload)
	}
}

func waitForStoreEvent(ch <-chan pubsub.Event[watcher.Event]) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return StoreEventMsg(ev.Payload)
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case StatusMsg:
		m.status = autosave.StatusEvent(msg)
		if m.status.WarningDismissed {
			m.dismissed = true
		}
		return m, waitForStatus(m.deps.StatusCh)

	case StoreEventMsg:
		switch watcher.Event(msg).Type {
		case watcher.StoreChanged:
			m.notice = "Draft changed in another window"
		case watcher.StoreRemoved:
			m.notice = "Draft removed from disk"
		}
		return m, waitForStoreEvent(m.deps.StoreCh)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateScript(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Common.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Editor.LogOverlay):
		m.showLog = !m.showLog
		return m, nil

	case key.Matches(msg, keys.Editor.SwitchFocus):
		if m.focus == FocusScript {
			m.focus = FocusSettings
			m.script.Blur()
		} else {
			m.focus = FocusScript
			m.script.Focus()
		}
		return m, nil

	case key.Matches(msg, keys.Common.Undo):
		if action, ok := m.store.Undo(); ok {
			m.notice = "Undid: " + action
		}
		return m, nil

	case key.Matches(msg, keys.Common.Redo):
		if action, ok := m.store.Redo(); ok {
			m.notice = "Redid: " + action
		}
		return m, nil

	case key.Matches(msg, keys.Editor.SaveNow):
		if m.deps.SaveNow != nil {
			res := m.deps.SaveNow()
			if res.Conflicted && res.Resolution != autosave.ResolutionOverwrite {
				m.notice = "Save cancelled: draft changed elsewhere"
			}
		}
		return m, nil

	case key.Matches(msg, keys.Editor.CycleMode):
		m.store.SetMode(nextMode(m.store.Mode()))
		return m, nil

	case key.Matches(msg, keys.Editor.DismissWarning):
		m.dismissed = true
		if m.deps.DismissWarning != nil {
			m.deps.DismissWarning()
		}
		return m, nil
	}

	if m.focus == FocusSettings {
		return m.handleSettingsKey(msg), nil
	}
	return m.updateScript(msg)
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, keys.Editor.RowUp):
		if m.row > 0 {
			m.row--
		}
	case key.Matches(msg, keys.Editor.RowDown):
		if m.row < len(m.rows)-1 {
			m.row++
		}
	case key.Matches(msg, keys.Editor.Decrease):
		m.rows[m.row].decrease(m.store)
	case key.Matches(msg, keys.Editor.Increase):
		m.rows[m.row].increase(m.store)
	case key.Matches(msg, keys.Editor.Toggle):
		m.rows[m.row].toggle(m.store)
	case key.Matches(msg, keys.Common.Escape):
		m.focus = FocusScript
		m.script.Focus()
	}
	return m
}

func (m Model) updateScript(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.script, cmd = m.script.Update(msg)
	m.store.SetContent(m.script.Value())
	return m, cmd
}

// SetSize updates the screen dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.layout()
	return m
}

func (m *Model) layout() {
	// Status bar takes one line, panes split the rest 2:1.
	scriptWidth := m.width * 2 / 3
	if scriptWidth < 20 {
		scriptWidth = m.width
	}
	m.script.SetWidth(scriptWidth - 4)
	m.script.SetHeight(m.height - 4)
}

// Focused reports the pane currently receiving input.
func (m Model) Focused() Focus { return m.focus }

// SelectedRow reports the highlighted settings row index.
func (m Model) SelectedRow() int { return m.row }

// Notice returns the transient notice line.
func (m Model) Notice() string { return m.notice }

func nextMode(mode prompter.Mode) prompter.Mode {
	switch mode {
	case prompter.ModeSetup:
		return prompter.ModeRunning
	case prompter.ModeRunning:
		return prompter.ModeReadonly
	default:
		return prompter.ModeSetup
	}
}
