// Package keys centralizes the editor keybindings so help text and key
// matching stay in one place.
package keys

import "github.com/charmbracelet/bubbles/key"

// CommonKeyMap holds bindings shared by every surface.
type CommonKeyMap struct {
	Quit   key.Binding
	Escape key.Binding
	Undo   key.Binding
	Redo   key.Binding
}

// Common is the shared keymap instance.
var Common = CommonKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Undo: key.NewBinding(
		key.WithKeys("ctrl+z"),
		key.WithHelp("ctrl+z", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "redo"),
	),
}

// EditorKeyMap holds bindings for the settings panel and content area.
type EditorKeyMap struct {
	SwitchFocus    key.Binding
	RowUp          key.Binding
	RowDown        key.Binding
	Decrease       key.Binding
	Increase       key.Binding
	Toggle         key.Binding
	SaveNow        key.Binding
	CycleMode      key.Binding
	LogOverlay     key.Binding
	DismissWarning key.Binding
}

// Editor is the editor keymap instance.
var Editor = EditorKeyMap{
	SwitchFocus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch script/settings focus"),
	),
	RowUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous setting"),
	),
	RowDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next setting"),
	),
	Decrease: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "decrease"),
	),
	Increase: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "increase"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "toggle/cycle"),
	),
	SaveNow: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save now"),
	),
	CycleMode: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "cycle editor mode"),
	),
	LogOverlay: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "toggle log overlay"),
	),
	DismissWarning: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "dismiss storage warning"),
	),
}

// EditorShortHelp returns the bindings shown in the footer.
func EditorShortHelp() []key.Binding {
	return []key.Binding{
		Editor.SwitchFocus,
		Common.Undo,
		Common.Redo,
		Editor.SaveNow,
		Common.Quit,
	}
}

// EditorFullHelp returns the full help rows.
func EditorFullHelp() [][]key.Binding {
	return [][]key.Binding{
		{Editor.RowUp, Editor.RowDown, Editor.Decrease, Editor.Increase, Editor.Toggle},
		{Common.Undo, Common.Redo, Editor.SaveNow, Editor.CycleMode},
		{Editor.SwitchFocus, Editor.LogOverlay, Common.Escape, Common.Quit},
	}
}
