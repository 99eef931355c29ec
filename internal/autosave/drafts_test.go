package autosave

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maemreyo/glean-teleprompter/internal/prompter"
	"github.com/maemreyo/glean-teleprompter/internal/schema"
	"github.com/maemreyo/glean-teleprompter/internal/storage"
)

func TestCollectionRoundTrip(t *testing.T) {
	drv := tempDriver(t)

	d := schema.NewDraft("saved aside", prompter.DefaultConfig())
	require.NoError(t, SaveToCollection(drv, d))

	col, err := LoadCollection(drv)
	require.NoError(t, err)
	require.Len(t, col.Drafts, 1)
	require.Equal(t, d.ID, col.Drafts[0].ID)
}

func TestLoadCollectionAbsentIsEmpty(t *testing.T) {
	drv := tempDriver(t)

	col, err := LoadCollection(drv)
	require.NoError(t, err)
	require.Empty(t, col.Drafts)
	require.Equal(t, schema.CurrentVersion, col.SchemaVersion)
}

func TestLoadCollectionMigratesEntries(t *testing.T) {
	drv := tempDriver(t)

	raw := map[string]any{
		"_schemaVersion": schema.V100,
		"drafts": []any{
			map[string]any{
				"_id":      "old-1",
				"_version": schema.V100,
				"content":  "vintage",
			},
		},
	}
	require.NoError(t, storage.WriteJSON(drv, storage.KeyDraftsCollection, raw))

	col, err := LoadCollection(drv)
	require.NoError(t, err)
	require.Len(t, col.Drafts, 1)
	require.Equal(t, schema.CurrentVersion, col.Drafts[0].Version)
	require.Equal(t, "vintage", col.Drafts[0].Content)
}

func TestLoadCollectionSkipsUnrecognizableEntries(t *testing.T) {
	drv := tempDriver(t)

	raw := map[string]any{
		"drafts": []any{
			map[string]any{"_version": "9.9.9", "junk": true},
			map[string]any{"_id": "ok-1", "content": "fine"},
		},
	}
	require.NoError(t, storage.WriteJSON(drv, storage.KeyDraftsCollection, raw))

	col, err := LoadCollection(drv)
	require.NoError(t, err)
	require.Len(t, col.Drafts, 1)
	require.Equal(t, "ok-1", col.Drafts[0].ID)
}

func TestRemoveFromCollection(t *testing.T) {
	drv := tempDriver(t)

	d := schema.NewDraft("doomed", prompter.DefaultConfig())
	require.NoError(t, SaveToCollection(drv, d))
	require.NoError(t, RemoveFromCollection(drv, d.ID))

	col, err := LoadCollection(drv)
	require.NoError(t, err)
	require.Empty(t, col.Drafts)

	require.NoError(t, RemoveFromCollection(drv, "absent"), "removing an absent ID is a no-op")
}
