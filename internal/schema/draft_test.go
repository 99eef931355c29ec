package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maemreyo/glean-teleprompter/internal/prompter"
)

func TestNewDraftProjectsConfig(t *testing.T) {
	cfg := prompter.DefaultConfig()
	cfg.Typography.FontSize = 40
	cfg.Colors.Opacity = 0.9

	d := NewDraft("script body", cfg)

	require.NotEmpty(t, d.ID)
	require.Equal(t, CurrentVersion, d.Version)
	require.NotZero(t, d.Timestamp)
	require.Equal(t, "script body", d.Content)
	require.Equal(t, 40, d.FontSize)
	require.Equal(t, 0.9, d.Opacity)
	require.Equal(t, cfg.Animations.ScrollSpeed, d.ScrollSpeed)
}

func TestDraftConfigRoundTrip(t *testing.T) {
	cfg := prompter.DefaultConfig()
	cfg.Typography.FontSize = 48
	cfg.Typography.Alignment = "left"
	cfg.Colors.TextColor = "#FFD700"
	cfg.Animations.ScrollSpeed = 12

	d := NewDraft("body", cfg)
	restored := d.Config(prompter.DefaultConfig())

	require.Equal(t, cfg, restored)
}

func TestDraftConfigKeepsBaseForUncarriedFields(t *testing.T) {
	base := prompter.DefaultConfig()
	base.Effects.FocalPoint = 75
	base.Animations.CountdownSeconds = 10

	d := NewDraft("body", prompter.DefaultConfig())
	restored := d.Config(base)

	require.Equal(t, 75, restored.Effects.FocalPoint, "focal point is not stored on drafts")
	require.Equal(t, 10, restored.Animations.CountdownSeconds)
}

func TestCollectionUpsertUniqueByID(t *testing.T) {
	col := NewCollection()
	a := NewDraft("a", prompter.DefaultConfig())
	b := NewDraft("b", prompter.DefaultConfig())

	col.Upsert(a)
	col.Upsert(b)
	require.Len(t, col.Drafts, 2)

	a.Content = "a, revised"
	col.Upsert(a)
	require.Len(t, col.Drafts, 2, "upsert must replace, not append")

	got, ok := col.Get(a.ID)
	require.True(t, ok)
	require.Equal(t, "a, revised", got.Content)
}

func TestCollectionRemove(t *testing.T) {
	col := NewCollection()
	d := NewDraft("a", prompter.DefaultConfig())
	col.Upsert(d)

	require.True(t, col.Remove(d.ID))
	require.Empty(t, col.Drafts)
	require.False(t, col.Remove(d.ID), "removing twice reports absence")
}
