package workspace

import (
	"fmt"

	"github.com/maemreyo/glean-teleprompter/internal/editor"
	"github.com/maemreyo/glean-teleprompter/internal/prompter"
)

// settingRow binds one settings panel line to store mutations. Sliders go
// through the continuous nudge methods so held-down arrow keys coalesce
// into one history entry; toggles and cycles go through the discrete
// setters and record immediately.
type settingRow struct {
	name     string
	value    func(prompter.ConfigSnapshot) string
	decrease func(*editor.Store)
	increase func(*editor.Store)
	toggle   func(*editor.Store)
}

var alignments = []string{"left", "center", "right"}

var textPalette = []string{"#FFFFFF", "#FFD700", "#00FF88", "#66CCFF"}

var backgroundPalette = []string{"#000000", "#101820", "#1B2A1B", "#202020"}

func buildRows() []settingRow {
	noop := func(*editor.Store) {}
	return []settingRow{
		{
			name:     "Font size",
			value:    func(c prompter.ConfigSnapshot) string { return fmt.Sprintf("%d", c.Typography.FontSize) },
			decrease: func(s *editor.Store) { s.NudgeFontSize(-2) },
			increase: func(s *editor.Store) { s.NudgeFontSize(2) },
			toggle:   noop,
		},
		{
			name:     "Line height",
			value:    func(c prompter.ConfigSnapshot) string { return fmt.Sprintf("%.1f", c.Typography.LineHeight) },
			decrease: func(s *editor.Store) { s.NudgeLineHeight(-0.1) },
			increase: func(s *editor.Store) { s.NudgeLineHeight(0.1) },
			toggle:   noop,
		},
		{
			name:     "Alignment",
			value:    func(c prompter.ConfigSnapshot) string { return c.Typography.Alignment },
			decrease: func(s *editor.Store) { cycleAlignment(s, -1) },
			increase: func(s *editor.Store) { cycleAlignment(s, 1) },
			toggle:   func(s *editor.Store) { cycleAlignment(s, 1) },
		},
		{
			name:     "Scroll speed",
			value:    func(c prompter.ConfigSnapshot) string { return fmt.Sprintf("%d", c.Animations.ScrollSpeed) },
			decrease: func(s *editor.Store) { s.NudgeScrollSpeed(-1) },
			increase: func(s *editor.Store) { s.NudgeScrollSpeed(1) },
			toggle:   noop,
		},
		{
			name:     "Focal point",
			value:    func(c prompter.ConfigSnapshot) string { return fmt.Sprintf("%d%%", c.Effects.FocalPoint) },
			decrease: func(s *editor.Store) { s.NudgeFocalPoint(-5) },
			increase: func(s *editor.Store) { s.NudgeFocalPoint(5) },
			toggle:   noop,
		},
		{
			name:     "Opacity",
			value:    func(c prompter.ConfigSnapshot) string { return fmt.Sprintf("%.2f", c.Colors.Opacity) },
			decrease: func(s *editor.Store) { s.NudgeOpacity(-0.05) },
			increase: func(s *editor.Store) { s.NudgeOpacity(0.05) },
			toggle:   noop,
		},
		{
			name:     "Side margin",
			value:    func(c prompter.ConfigSnapshot) string { return fmt.Sprintf("%d%%", c.Layout.SideMargin) },
			decrease: func(s *editor.Store) { s.NudgeSideMargin(-2) },
			increase: func(s *editor.Store) { s.NudgeSideMargin(2) },
			toggle:   noop,
		},
		{
			name:     "Text color",
			value:    func(c prompter.ConfigSnapshot) string { return c.Colors.TextColor },
			decrease: func(s *editor.Store) { cycleTextColor(s, -1) },
			increase: func(s *editor.Store) { cycleTextColor(s, 1) },
			toggle:   func(s *editor.Store) { cycleTextColor(s, 1) },
		},
		{
			name:     "Background",
			value:    func(c prompter.ConfigSnapshot) string { return c.Colors.BackgroundColor },
			decrease: func(s *editor.Store) { cycleBackgroundColor(s, -1) },
			increase: func(s *editor.Store) { cycleBackgroundColor(s, 1) },
			toggle:   func(s *editor.Store) { cycleBackgroundColor(s, 1) },
		},
		{
			name:     "Mirror",
			value:    func(c prompter.ConfigSnapshot) string { return onOff(c.Effects.MirrorHorizontal) },
			decrease: toggleMirror,
			increase: toggleMirror,
			toggle:   toggleMirror,
		},
		{
			name:     "Fade edges",
			value:    func(c prompter.ConfigSnapshot) string { return onOff(c.Effects.FadeEdges) },
			decrease: toggleFade,
			increase: toggleFade,
			toggle:   toggleFade,
		},
		{
			name:     "Smooth scroll",
			value:    func(c prompter.ConfigSnapshot) string { return onOff(c.Animations.SmoothScroll) },
			decrease: toggleSmooth,
			increase: toggleSmooth,
			toggle:   toggleSmooth,
		},
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func cycleAlignment(s *editor.Store, dir int) {
	t := s.Snapshot().Typography
	t.Alignment = cycle(alignments, t.Alignment, dir)
	s.SetTypography(t)
}

func cycleTextColor(s *editor.Store, dir int) {
	c := s.Snapshot().Colors
	c.TextColor = cycle(textPalette, c.TextColor, dir)
	s.SetColors(c)
}

func cycleBackgroundColor(s *editor.Store, dir int) {
	c := s.Snapshot().Colors
	c.BackgroundColor = cycle(backgroundPalette, c.BackgroundColor, dir)
	s.SetColors(c)
}

func toggleMirror(s *editor.Store) {
	e := s.Snapshot().Effects
	e.MirrorHorizontal = !e.MirrorHorizontal
	s.SetEffects(e)
}

func toggleFade(s *editor.Store) {
	e := s.Snapshot().Effects
	e.FadeEdges = !e.FadeEdges
	s.SetEffects(e)
}

func toggleSmooth(s *editor.Store) {
	a := s.Snapshot().Animations
	a.SmoothScroll = !a.SmoothScroll
	s.SetAnimations(a)
}

// cycle returns the next palette entry in the given direction. Unknown
// current values land on the first entry.
func cycle(options []string, current string, dir int) string {
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i + dir
			break
		}
	}
	if idx < 0 {
		idx = len(options) - 1
	}
	return options[idx%len(options)]
}
