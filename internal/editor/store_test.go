package editor

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maemreyo/glean-teleprompter/internal/history"
	"github.com/maemreyo/glean-teleprompter/internal/prompter"
)

type countingSaver struct {
	n atomic.Int64
}

func (c *countingSaver) NotifyChange() { c.n.Add(1) }

func newTestStore(t *testing.T, saver Saver) *Store {
	t.Helper()
	mgr := history.NewManager(50)
	rec := history.NewRecorder(mgr, 10*time.Millisecond, nil)
	t.Cleanup(rec.Close)
	return New(prompter.DefaultConfig(), mgr, rec, saver)
}

func TestNewPushesInitialState(t *testing.T) {
	s := newTestStore(t, nil)
	require.Equal(t, 1, s.History().Len())
	require.Equal(t, "Initial state", s.History().Past()[0].Action)
	require.False(t, s.CanUndo(), "a fresh document has nothing to undo")
}

func TestDiscreteChangeRecordsAndNotifies(t *testing.T) {
	saver := &countingSaver{}
	s := newTestStore(t, saver)

	colors := s.Snapshot().Colors
	colors.TextColor = "#00FF00"
	s.SetColors(colors)

	require.Equal(t, "#00FF00", s.Snapshot().Colors.TextColor)
	require.Equal(t, 2, s.History().Len())
	require.Equal(t, "Colors changed", s.History().Past()[1].Action)
	require.EqualValues(t, 1, saver.n.Load())
}

func TestNoOpMutationIsNotRecorded(t *testing.T) {
	saver := &countingSaver{}
	s := newTestStore(t, saver)

	s.SetColors(s.Snapshot().Colors)

	require.Equal(t, 1, s.History().Len(), "identical value must not create an entry")
	require.EqualValues(t, 0, saver.n.Load(), "identical value must not schedule a save")
}

func TestSettersClamp(t *testing.T) {
	s := newTestStore(t, nil)

	typ := s.Snapshot().Typography
	typ.FontSize = 500
	s.SetTypography(typ)
	require.Equal(t, prompter.MaxFontSize, s.Snapshot().Typography.FontSize)

	eff := s.Snapshot().Effects
	eff.FocalPoint = -5
	s.SetEffects(eff)
	require.Equal(t, 0, s.Snapshot().Effects.FocalPoint)
}

// The undo/redo inverse law: K edits, K undos back to the starting state,
// K redos back to the final state, all merged field by field.
func TestUndoRedoInverseLaw(t *testing.T) {
	s := newTestStore(t, nil)
	s0 := s.Snapshot()

	const k = 4
	for i := 0; i < k; i++ {
		typ := s.Snapshot().Typography
		typ.FontSize = 40 + i*4
		s.SetTypography(typ)
	}
	after := s.Snapshot()
	require.NotEqual(t, s0, after)

	for i := 0; i < k; i++ {
		_, ok := s.Undo()
		require.True(t, ok, "undo %d", i)
	}
	require.Equal(t, s0, s.Snapshot(), "K undos must restore the starting state")

	for i := 0; i < k; i++ {
		_, ok := s.Redo()
		require.True(t, ok, "redo %d", i)
	}
	require.Equal(t, after, s.Snapshot(), "K redos must restore the final state")
}

func TestUndoMergesWithoutDiscardingOtherSections(t *testing.T) {
	s := newTestStore(t, nil)

	colors := s.Snapshot().Colors
	colors.TextColor = "#ABCDEF"
	s.SetColors(colors)

	typ := s.Snapshot().Typography
	typ.FontSize = 48
	s.SetTypography(typ)

	// Undoing the typography edit must keep the color edit.
	_, ok := s.Undo()
	require.True(t, ok)
	require.Equal(t, "#ABCDEF", s.Snapshot().Colors.TextColor)
	require.Equal(t, 32, s.Snapshot().Typography.FontSize)
}

func TestUndoRestoresSectionsAcrossEntries(t *testing.T) {
	s := newTestStore(t, nil)
	s0 := s.Snapshot()

	typ := s.Snapshot().Typography
	typ.FontSize = 48
	s.SetTypography(typ)

	eff := s.Snapshot().Effects
	eff.MirrorHorizontal = true
	s.SetEffects(eff)

	ani := s.Snapshot().Animations
	ani.ScrollSpeed = 12
	s.SetAnimations(ani)

	// Each undo must revert the popped entry's section even though the new
	// top entry carries a different section.
	_, ok := s.Undo()
	require.True(t, ok)
	require.Equal(t, 5, s.Snapshot().Animations.ScrollSpeed)
	require.True(t, s.Snapshot().Effects.MirrorHorizontal)
	require.Equal(t, 48, s.Snapshot().Typography.FontSize)

	_, ok = s.Undo()
	require.True(t, ok)
	require.False(t, s.Snapshot().Effects.MirrorHorizontal)
	require.Equal(t, 48, s.Snapshot().Typography.FontSize)

	_, ok = s.Undo()
	require.True(t, ok)
	require.Equal(t, s0, s.Snapshot())
}

func TestUndoDoesNotGenerateHistory(t *testing.T) {
	s := newTestStore(t, nil)

	typ := s.Snapshot().Typography
	typ.FontSize = 48
	s.SetTypography(typ)
	lenBefore := s.History().Len()

	_, ok := s.Undo()
	require.True(t, ok)
	require.Equal(t, lenBefore-1, s.History().Len(), "undo must move entries, never add them")
}

func TestBranchDiscard(t *testing.T) {
	s := newTestStore(t, nil)

	for _, size := range []int{40, 48} {
		typ := s.Snapshot().Typography
		typ.FontSize = size
		s.SetTypography(typ)
	}
	_, ok := s.Undo()
	require.True(t, ok)
	require.True(t, s.CanRedo())

	typ := s.Snapshot().Typography
	typ.FontSize = 64
	s.SetTypography(typ)

	require.False(t, s.CanRedo(), "a fresh edit must discard the redo branch")
	_, ok = s.Redo()
	require.False(t, ok)
}

func TestUndoFlushesPendingGesture(t *testing.T) {
	s := newTestStore(t, nil)

	// Nudge without waiting for the coalescing window, then undo at once.
	s.NudgeFontSize(4)
	label, ok := s.Undo()
	require.True(t, ok, "the pending gesture must commit before the undo")
	require.Equal(t, "Initial state", label)
	require.Equal(t, 32, s.Snapshot().Typography.FontSize)
}

func TestContinuousNudgesCoalesce(t *testing.T) {
	s := newTestStore(t, nil)

	for i := 0; i < 5; i++ {
		s.NudgeFontSize(2)
	}
	time.Sleep(50 * time.Millisecond)

	require.Equal(t, 42, s.Snapshot().Typography.FontSize)
	require.Equal(t, 2, s.History().Len(), "a burst of nudges lands as one entry")
	entries := s.History().Past()
	require.Equal(t, "Font size changed", entries[1].Action)
	require.Equal(t, 42, entries[1].Config.Typography.FontSize)
}

func TestNudgeLineHeightClampsAndCoalesces(t *testing.T) {
	s := newTestStore(t, nil)

	for i := 0; i < 20; i++ {
		s.NudgeLineHeight(0.1)
	}
	time.Sleep(50 * time.Millisecond)

	require.InDelta(t, 3.0, s.Snapshot().Typography.LineHeight, 1e-9, "line height tops out at the clamp bound")
	require.Equal(t, 2, s.History().Len())
	require.Equal(t, "Line height changed", s.History().Past()[1].Action)
}

func TestSetAllResetsHistory(t *testing.T) {
	s := newTestStore(t, nil)

	typ := s.Snapshot().Typography
	typ.FontSize = 48
	s.SetTypography(typ)

	loaded := prompter.DefaultConfig()
	loaded.Colors.TextColor = "#123456"
	s.SetAll("INT. NEWSROOM - NIGHT", loaded)

	require.Equal(t, "INT. NEWSROOM - NIGHT", s.Content())
	require.Equal(t, "#123456", s.Snapshot().Colors.TextColor)
	require.False(t, s.CanUndo(), "undo must not cross into the previous document")
	require.False(t, s.CanRedo())
	require.Equal(t, 1, s.History().Len())
}

func TestSetContentNotifiesWithoutHistory(t *testing.T) {
	saver := &countingSaver{}
	s := newTestStore(t, saver)

	s.SetContent("hello")

	require.Equal(t, 1, s.History().Len(), "content edits do not enter config history")
	require.EqualValues(t, 1, saver.n.Load(), "content edits still schedule a save")
}
