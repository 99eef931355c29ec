package prompter

// Boundary clamps shared by every setter. Values arriving from sliders or
// key-repeat can overshoot; the stored configuration never does.

const (
	MinFontSize = 16
	MaxFontSize = 72

	MinFocalPoint = 0
	MaxFocalPoint = 100

	MinScrollSpeed = 1
	MaxScrollSpeed = 20

	MinSideMargin = 0
	MaxSideMargin = 40

	MinOpacity = 0.0
	MaxOpacity = 1.0

	MinLineHeight = 1.0
	MaxLineHeight = 3.0
)

// ClampFontSize bounds a font size to [MinFontSize, MaxFontSize].
func ClampFontSize(v int) int {
	return clampInt(v, MinFontSize, MaxFontSize)
}

// ClampFocalPoint bounds a focal point percentage to [0, 100].
func ClampFocalPoint(v int) int {
	return clampInt(v, MinFocalPoint, MaxFocalPoint)
}

// ClampScrollSpeed bounds a scroll speed to [MinScrollSpeed, MaxScrollSpeed].
func ClampScrollSpeed(v int) int {
	return clampInt(v, MinScrollSpeed, MaxScrollSpeed)
}

// ClampSideMargin bounds a side margin percentage.
func ClampSideMargin(v int) int {
	return clampInt(v, MinSideMargin, MaxSideMargin)
}

// ClampOpacity bounds an opacity value to [0.0, 1.0].
func ClampOpacity(v float64) float64 {
	return clampFloat(v, MinOpacity, MaxOpacity)
}

// ClampLineHeight bounds a line height multiplier.
func ClampLineHeight(v float64) float64 {
	return clampFloat(v, MinLineHeight, MaxLineHeight)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamped returns a copy of cfg with every bounded field forced into range.
// Applied when loading external presets or persisted records.
func Clamped(cfg ConfigSnapshot) ConfigSnapshot {
	cfg.Typography.FontSize = ClampFontSize(cfg.Typography.FontSize)
	cfg.Typography.LineHeight = ClampLineHeight(cfg.Typography.LineHeight)
	cfg.Colors.Opacity = ClampOpacity(cfg.Colors.Opacity)
	cfg.Effects.FocalPoint = ClampFocalPoint(cfg.Effects.FocalPoint)
	cfg.Layout.SideMargin = ClampSideMargin(cfg.Layout.SideMargin)
	cfg.Animations.ScrollSpeed = ClampScrollSpeed(cfg.Animations.ScrollSpeed)
	return cfg
}
