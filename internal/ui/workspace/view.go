package workspace

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/maemreyo/glean-teleprompter/internal/autosave"
	"github.com/maemreyo/glean-teleprompter/internal/keys"
	"github.com/maemreyo/glean-teleprompter/internal/log"
	"github.com/maemreyo/glean-teleprompter/internal/quota"
	"github.com/maemreyo/glean-teleprompter/internal/ui/styles"
)

// View renders the workspace.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	left := m.viewScript()
	right := m.viewSidebar()
	panes := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return lipgloss.JoinVertical(lipgloss.Left, panes, m.viewStatusBar())
}

func (m Model) viewScript() string {
	style := styles.Pane
	if m.focus == FocusScript {
		style = styles.PaneFocused
	}
	title := styles.Title.Render("Script")
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, m.script.View()))
}

func (m Model) viewSidebar() string {
	if m.showLog {
		return m.viewLog()
	}
	return m.viewSettings()
}

func (m Model) viewSettings() string {
	style := styles.Pane
	if m.focus == FocusSettings {
		style = styles.PaneFocused
	}

	cfg := m.store.Snapshot()
	lines := []string{styles.Title.Render("Settings"), ""}
	for i, row := range m.rows {
		line := fmt.Sprintf("%-14s %s", row.name, row.value(cfg))
		if m.focus == FocusSettings && i == m.row {
			line = styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	lines = append(lines, "", m.viewHistoryLine())
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) viewHistoryLine() string {
	h := m.store.History()
	return styles.Muted.Render(fmt.Sprintf("history %d/%d", h.Index()+1, h.Len()))
}

func (m Model) viewLog() string {
	lines := []string{styles.Title.Render("Log"), ""}
	recent := log.Recent(m.height - 6)
	if len(recent) == 0 {
		lines = append(lines, styles.Muted.Render("no entries yet"))
	}
	lines = append(lines, recent...)
	return styles.Pane.Render(strings.Join(lines, "\n"))
}

func (m Model) viewStatusBar() string {
	parts := []string{styles.Muted.Render("mode:" + m.store.Mode().String())}

	parts = append(parts, m.viewSaveStatus())

	// A dismissed warning stays hidden; critical always shows.
	switch {
	case m.status.QuotaLevel == quota.Critical:
		parts = append(parts, styles.QuotaWarning.Render("storage critical"))
	case m.status.QuotaLevel == quota.Warning && !m.dismissed:
		parts = append(parts, styles.QuotaWarning.Render("storage warning"))
	}

	if m.notice != "" {
		parts = append(parts, styles.Muted.Render(m.notice))
	}

	help := make([]string, 0, 5)
	for _, b := range keys.EditorShortHelp() {
		help = append(help, b.Help().Key+" "+b.Help().Desc)
	}
	parts = append(parts, styles.Muted.Render(strings.Join(help, " · ")))

	return lipgloss.NewStyle().Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) viewSaveStatus() string {
	switch m.status.Status {
	case autosave.StatusSaving:
		return styles.StatusSaving.Render("saving...")
	case autosave.StatusSaved:
		at := time.UnixMilli(m.status.SavedAt).Format("15:04:05")
		return styles.StatusSaved.Render("saved " + at)
	case autosave.StatusError:
		return styles.StatusError.Render(m.status.Message)
	default:
		return styles.Muted.Render("idle")
	}
}
