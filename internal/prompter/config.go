// Package prompter holds the editable teleprompter configuration model and
// the editor state store that routes mutations through history recording and
// auto-save scheduling.
package prompter

// Typography groups the font-related settings.
type Typography struct {
	FontFamily    string  `json:"fontFamily"`
	FontSize      int     `json:"fontSize"`
	LineHeight    float64 `json:"lineHeight"`
	LetterSpacing float64 `json:"letterSpacing"`
	Alignment     string  `json:"alignment"` // left | center | right
}

// Colors groups the color and opacity settings.
type Colors struct {
	TextColor       string  `json:"textColor"`
	BackgroundColor string  `json:"backgroundColor"`
	HighlightColor  string  `json:"highlightColor"`
	Opacity         float64 `json:"opacity"` // 0.0 - 1.0
}

// Effects groups mirroring and focus effects.
type Effects struct {
	MirrorHorizontal bool `json:"mirrorHorizontal"`
	MirrorVertical   bool `json:"mirrorVertical"`
	FocalPoint       int  `json:"focalPoint"` // 0 - 100, vertical reading line position
	FadeEdges        bool `json:"fadeEdges"`
}

// Layout groups margins and column geometry.
type Layout struct {
	SideMargin  int `json:"sideMargin"`  // percent of viewport width
	TopMargin   int `json:"topMargin"`   // percent of viewport height
	ColumnWidth int `json:"columnWidth"` // percent of viewport width
}

// Animations groups scrolling behavior.
type Animations struct {
	ScrollSpeed      int  `json:"scrollSpeed"` // 1 - 20
	SmoothScroll     bool `json:"smoothScroll"`
	CountdownSeconds int  `json:"countdownSeconds"`
}

// ConfigSnapshot is the full set of editable settings. Snapshots are value
// types: a new one is produced on every accepted mutation and two snapshots
// are the same state exactly when all sections compare equal.
type ConfigSnapshot struct {
	Typography Typography `json:"typography"`
	Colors     Colors     `json:"colors"`
	Effects    Effects    `json:"effects"`
	Layout     Layout     `json:"layout"`
	Animations Animations `json:"animations"`
}

// Partial carries only the sections touched by a single mutation. Nil
// sections are untouched and must be preserved when the partial is applied.
type Partial struct {
	Typography *Typography `json:"typography,omitempty"`
	Colors     *Colors     `json:"colors,omitempty"`
	Effects    *Effects    `json:"effects,omitempty"`
	Layout     *Layout     `json:"layout,omitempty"`
	Animations *Animations `json:"animations,omitempty"`
}

// Apply merges the partial's non-nil sections onto base and returns the
// resulting snapshot. Sections absent from the partial carry over unchanged.
func (p Partial) Apply(base ConfigSnapshot) ConfigSnapshot {
	next := base
	if p.Typography != nil {
		next.Typography = *p.Typography
	}
	if p.Colors != nil {
		next.Colors = *p.Colors
	}
	if p.Effects != nil {
		next.Effects = *p.Effects
	}
	if p.Layout != nil {
		next.Layout = *p.Layout
	}
	if p.Animations != nil {
		next.Animations = *p.Animations
	}
	return next
}

// Full returns a partial containing every section of cfg. Used for the
// initial history entry so the first state is always reachable by undo.
func Full(cfg ConfigSnapshot) Partial {
	return Partial{
		Typography: &cfg.Typography,
		Colors:     &cfg.Colors,
		Effects:    &cfg.Effects,
		Layout:     &cfg.Layout,
		Animations: &cfg.Animations,
	}
}

// DefaultConfig returns the settings a fresh document starts with.
func DefaultConfig() ConfigSnapshot {
	return ConfigSnapshot{
		Typography: Typography{
			FontFamily:    "Arial",
			FontSize:      32,
			LineHeight:    1.5,
			LetterSpacing: 0,
			Alignment:     "center",
		},
		Colors: Colors{
			TextColor:       "#FFFFFF",
			BackgroundColor: "#000000",
			HighlightColor:  "#FFD700",
			Opacity:         1.0,
		},
		Effects: Effects{
			FocalPoint: 40,
		},
		Layout: Layout{
			SideMargin:  10,
			TopMargin:   0,
			ColumnWidth: 80,
		},
		Animations: Animations{
			ScrollSpeed:      5,
			SmoothScroll:     true,
			CountdownSeconds: 3,
		},
	}
}
