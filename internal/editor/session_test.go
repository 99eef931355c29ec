package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maemreyo/glean-teleprompter/internal/history"
	"github.com/maemreyo/glean-teleprompter/internal/prompter"
	"github.com/maemreyo/glean-teleprompter/internal/storage"
)

func tempDriver(t *testing.T) *storage.FileDriver {
	t.Helper()
	drv, err := storage.NewFileDriver(t.TempDir())
	require.NoError(t, err)
	return drv
}

func TestSessionRoundTrip(t *testing.T) {
	drv := tempDriver(t)
	s := newTestStore(t, nil)

	s.SetContent("the script")
	typ := s.Snapshot().Typography
	typ.FontSize = 48
	s.SetTypography(typ)

	prefs := UIPrefs{ActiveTab: "colors", PanelOpen: true}
	require.NoError(t, SaveSession(drv, s, prefs))

	// A second store resumes the same editing context, undo stack included.
	mgr := history.NewManager(50)
	rec := history.NewRecorder(mgr, 10*time.Millisecond, nil)
	t.Cleanup(rec.Close)
	restored := New(prompter.DefaultConfig(), mgr, rec, nil)

	gotPrefs, ok := TryRestoreSession(drv, restored)
	require.True(t, ok)
	require.Equal(t, prefs, gotPrefs)
	require.Equal(t, "the script", restored.Content())
	require.Equal(t, 48, restored.Snapshot().Typography.FontSize)
	require.True(t, restored.CanUndo(), "restored history supports undo")

	_, ok = restored.Undo()
	require.True(t, ok)
	require.Equal(t, 32, restored.Snapshot().Typography.FontSize)
}

func TestTryRestoreSessionAbsent(t *testing.T) {
	drv := tempDriver(t)
	s := newTestStore(t, nil)

	_, ok := TryRestoreSession(drv, s)
	require.False(t, ok)
}

func TestTryRestoreSessionCorrupt(t *testing.T) {
	drv := tempDriver(t)
	require.NoError(t, drv.Write(storage.KeyConfigSnapshot, []byte("{not json")))

	s := newTestStore(t, nil)
	_, ok := TryRestoreSession(drv, s)
	require.False(t, ok, "a corrupt session must not block startup")
	require.Equal(t, prompter.DefaultConfig(), s.Snapshot())
}
