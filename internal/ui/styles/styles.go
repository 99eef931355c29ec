// Package styles holds the shared lipgloss colors and styles for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	TextPrimaryColor     = lipgloss.Color("252")
	TextDescriptionColor = lipgloss.Color("245")
	TextMutedColor       = lipgloss.Color("240")
	AccentColor          = lipgloss.Color("111")
	StatusSuccessColor   = lipgloss.Color("42")
	StatusWarningColor   = lipgloss.Color("214")
	StatusErrorColor     = lipgloss.Color("196")
	BorderColor          = lipgloss.Color("238")
	BorderFocusColor     = lipgloss.Color("111")
)

// Common styles.
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimaryColor)

	Muted = lipgloss.NewStyle().
		Foreground(TextMutedColor)

	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	StatusSaved = lipgloss.NewStyle().
			Foreground(StatusSuccessColor)

	StatusSaving = lipgloss.NewStyle().
			Foreground(TextDescriptionColor)

	StatusError = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true)

	QuotaWarning = lipgloss.NewStyle().
			Foreground(StatusWarningColor).
			Bold(true)

	Pane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	PaneFocused = Pane.BorderForeground(BorderFocusColor)
)
