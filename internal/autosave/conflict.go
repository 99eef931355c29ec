package autosave

import (
	"errors"

	"github.com/maemreyo/glean-teleprompter/internal/schema"
	"github.com/maemreyo/glean-teleprompter/internal/storage"
)

// Resolution is the caller's answer to a detected conflict.
type Resolution int

const (
	// ResolutionCancel aborts the write. The safe default when no resolver
	// is attached: never silently clobber another process's newer save.
	ResolutionCancel Resolution = iota
	// ResolutionOverwrite proceeds with the write despite the newer copy.
	ResolutionOverwrite
	// ResolutionReload aborts the write; the caller reloads durable state.
	ResolutionReload
)

func (r Resolution) String() string {
	switch r {
	case ResolutionCancel:
		return "cancel"
	case ResolutionOverwrite:
		return "overwrite"
	case ResolutionReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Conflict describes a durable record newer than this process's last known
// sync point, meaning another process wrote after we last read or saved.
type Conflict struct {
	LocalTimestamp  int64
	RemoteTimestamp int64
	TimeDifference  int64 // RemoteTimestamp - LocalTimestamp, always > 0
}

// Resolver decides what to do about a conflict. Called synchronously on the
// save path, so implementations should be quick or hand off to the UI.
type Resolver func(Conflict) Resolution

// detectConflict compares the durable active-draft timestamp against the
// last timestamp this process synced. Best-effort: an absent or unreadable
// record is no conflict, because the subsequent write loses nothing newer
// than what we can parse.
func detectConflict(drv storage.Driver, lastSynced int64) (Conflict, bool) {
	if lastSynced == 0 {
		// Never synced: first save adopts whatever is there.
		return Conflict{}, false
	}
	raw, err := storage.ReadRaw(drv, storage.KeyActiveDraft)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrCorruptedData) {
			return Conflict{}, false
		}
		return Conflict{}, false
	}

	remote := timestampOf(raw)
	if remote <= lastSynced {
		return Conflict{}, false
	}
	return Conflict{
		LocalTimestamp:  lastSynced,
		RemoteTimestamp: remote,
		TimeDifference:  remote - lastSynced,
	}, true
}

func timestampOf(record map[string]any) int64 {
	switch v := record["_timestamp"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}

// LoadActiveDraft reads, migrates, and decodes the active draft. The
// migration outcome is surfaced so callers can warn about best-effort
// recovery. The stored bytes are only rewritten on the next save; a failed
// migration leaves them untouched.
func LoadActiveDraft(drv storage.Driver) (schema.Draft, schema.Outcome, error) {
	raw, err := storage.ReadRaw(drv, storage.KeyActiveDraft)
	if err != nil {
		return schema.Draft{}, schema.Failed, err
	}
	res, err := schema.Migrate(raw)
	if err != nil {
		return schema.Draft{}, res.Outcome, err
	}
	d, err := schema.Decode(res.Record)
	if err != nil {
		return schema.Draft{}, res.Outcome, &storage.CorruptedError{Key: storage.KeyActiveDraft, Err: err}
	}
	return d, res.Outcome, nil
}
