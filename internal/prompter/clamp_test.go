package prompter

import "testing"

func TestClampFontSize(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"below minimum", 12, 16},
		{"at minimum", 16, 16},
		{"in range", 32, 32},
		{"at maximum", 72, 72},
		{"above maximum", 96, 72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampFontSize(tt.in); got != tt.want {
				t.Errorf("ClampFontSize(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestClampFocalPoint(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"below minimum", -5, 0},
		{"at minimum", 0, 0},
		{"in range", 40, 40},
		{"at maximum", 100, 100},
		{"above maximum", 150, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampFocalPoint(tt.in); got != tt.want {
				t.Errorf("ClampFocalPoint(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestClampOpacity(t *testing.T) {
	if got := ClampOpacity(-0.5); got != 0.0 {
		t.Errorf("ClampOpacity(-0.5) = %v, want 0.0", got)
	}
	if got := ClampOpacity(1.5); got != 1.0 {
		t.Errorf("ClampOpacity(1.5) = %v, want 1.0", got)
	}
	if got := ClampOpacity(0.7); got != 0.7 {
		t.Errorf("ClampOpacity(0.7) = %v, want 0.7", got)
	}
}

func TestClampedNormalizesEverything(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Typography.FontSize = 500
	cfg.Effects.FocalPoint = -10
	cfg.Colors.Opacity = 2.0
	cfg.Animations.ScrollSpeed = 0
	cfg.Layout.SideMargin = 99

	got := Clamped(cfg)

	if got.Typography.FontSize != MaxFontSize {
		t.Errorf("FontSize = %d, want %d", got.Typography.FontSize, MaxFontSize)
	}
	if got.Effects.FocalPoint != MinFocalPoint {
		t.Errorf("FocalPoint = %d, want %d", got.Effects.FocalPoint, MinFocalPoint)
	}
	if got.Colors.Opacity != MaxOpacity {
		t.Errorf("Opacity = %v, want %v", got.Colors.Opacity, MaxOpacity)
	}
	if got.Animations.ScrollSpeed != MinScrollSpeed {
		t.Errorf("ScrollSpeed = %d, want %d", got.Animations.ScrollSpeed, MinScrollSpeed)
	}
	if got.Layout.SideMargin != MaxSideMargin {
		t.Errorf("SideMargin = %d, want %d", got.Layout.SideMargin, MaxSideMargin)
	}
}
