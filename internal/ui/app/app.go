// Package app wraps the workspace screen into a runnable bubbletea program.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maemreyo/glean-teleprompter/internal/ui/workspace"
)

// Model is the program root.
type Model struct {
	ws workspace.Model
}

// New wraps a workspace screen.
func New(ws workspace.Model) Model {
	return Model{ws: ws}
}

// Init starts the workspace listeners.
func (m Model) Init() tea.Cmd {
	return m.ws.Init()
}

// Update delegates to the workspace.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.ws, cmd = m.ws.Update(msg)
	return m, cmd
}

// View renders the workspace.
func (m Model) View() string {
	return m.ws.View()
}
