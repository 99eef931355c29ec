package autosave

import (
	"errors"

	"github.com/maemreyo/glean-teleprompter/internal/schema"
	"github.com/maemreyo/glean-teleprompter/internal/storage"
)

// Collection helpers for the recent-drafts list. Distinct from the active
// draft slot: these run on explicit user actions (save-as, delete), never on
// the debounced auto-save path.

// LoadCollection reads the drafts collection, migrating each entry. An
// absent collection is an empty one.
func LoadCollection(drv storage.Driver) (schema.Collection, error) {
	raw, err := storage.ReadRaw(drv, storage.KeyDraftsCollection)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return schema.NewCollection(), nil
		}
		return schema.Collection{}, err
	}

	col := schema.NewCollection()
	if v, ok := raw["_lastUpdated"].(float64); ok {
		col.LastUpdated = int64(v)
	}
	entries, _ := raw["drafts"].([]any)
	for _, e := range entries {
		record, ok := e.(map[string]any)
		if !ok {
			continue
		}
		res, err := schema.Migrate(record)
		if err != nil {
			// Unrecognizable entries are kept out of the list but the
			// stored bytes stay untouched until the next write.
			continue
		}
		d, err := schema.Decode(res.Record)
		if err != nil {
			continue
		}
		col.Drafts = append(col.Drafts, d)
	}
	return col, nil
}

// SaveToCollection upserts a draft into the collection and persists it.
func SaveToCollection(drv storage.Driver, d schema.Draft) error {
	col, err := LoadCollection(drv)
	if err != nil {
		return err
	}
	col.Upsert(d)
	return storage.WriteJSON(drv, storage.KeyDraftsCollection, col)
}

// RemoveFromCollection deletes a draft by ID and persists the collection.
// Removing an absent ID is a no-op.
func RemoveFromCollection(drv storage.Driver, id string) error {
	col, err := LoadCollection(drv)
	if err != nil {
		return err
	}
	if !col.Remove(id) {
		return nil
	}
	return storage.WriteJSON(drv, storage.KeyDraftsCollection, col)
}
