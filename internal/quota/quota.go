// Package quota estimates store usage against a configured capacity and
// offers retention-based cleanup of the drafts collection.
package quota

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/maemreyo/glean-teleprompter/internal/schema"
	"github.com/maemreyo/glean-teleprompter/internal/storage"
)

// DefaultCapacity mirrors the conservative browser-store allowance the
// original tool budgeted against.
const DefaultCapacity int64 = 5 * 1024 * 1024

// bytesPerChar matches the UTF-16 string encoding the byte estimate is
// calibrated for.
const bytesPerChar = 2

// Level is the usage warning threshold.
type Level int

const (
	Normal   Level = iota // < 90%
	Warning               // 90% - <100%
	Critical              // >= 100%
)

func (l Level) String() string {
	switch l {
	case Normal:
		return "normal"
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Usage is the derived byte accounting for the whole store.
type Usage struct {
	Used       int64
	Total      int64
	Percentage float64
	ByKey      map[string]int64
}

// CleanupResult reports what a retention sweep removed.
type CleanupResult struct {
	DeletedCount int
	BytesFreed   int64
}

// Monitor computes usage over a storage driver. It holds no state of its own;
// every call re-enumerates the store.
type Monitor struct {
	drv      storage.Driver
	capacity int64
}

// NewMonitor creates a monitor. A capacity of 0 or less selects
// DefaultCapacity.
func NewMonitor(drv storage.Driver, capacity int64) *Monitor {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Monitor{drv: drv, capacity: capacity}
}

// GetUsage enumerates every stored key and estimates total bytes as
// (keyLength + valueLength) * 2.
func (m *Monitor) GetUsage() (Usage, error) {
	keys, err := m.drv.Keys()
	if err != nil {
		return Usage{}, err
	}

	u := Usage{Total: m.capacity, ByKey: make(map[string]int64, len(keys))}
	for _, key := range keys {
		value, err := m.drv.Read(key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return Usage{}, err
		}
		size := int64(len(key)+len(value)) * bytesPerChar
		u.ByKey[key] = size
		u.Used += size
	}
	u.Percentage = float64(u.Used) / float64(u.Total) * 100
	return u, nil
}

// WarningLevel classifies current usage.
func (m *Monitor) WarningLevel() (Level, error) {
	u, err := m.GetUsage()
	if err != nil {
		return Normal, err
	}
	return LevelFor(u), nil
}

// LevelFor is the pure threshold function over a usage sample.
func LevelFor(u Usage) Level {
	switch {
	case u.Percentage >= 100:
		return Critical
	case u.Percentage >= 90:
		return Warning
	default:
		return Normal
	}
}

// CheckWrite rejects a write that would push usage past capacity. Called by
// the auto-save path before handing bytes to the driver.
func (m *Monitor) CheckWrite(key string, value []byte) error {
	u, err := m.GetUsage()
	if err != nil {
		// Can't measure, let the driver try and classify any failure.
		return nil
	}
	projected := u.Used - u.ByKey[key] + int64(len(key)+len(value))*bytesPerChar
	if projected > m.capacity {
		return storage.ErrQuotaExceeded
	}
	return nil
}

// CleanupOlderThan removes collection drafts whose timestamp predates
// now - days. The active-draft slot is never touched; only the recent-drafts
// collection shrinks.
func (m *Monitor) CleanupOlderThan(days int) (CleanupResult, error) {
	var col schema.Collection
	if err := storage.ReadJSON(m.drv, storage.KeyDraftsCollection, &col); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return CleanupResult{}, nil
		}
		return CleanupResult{}, err
	}

	before, err := json.Marshal(col)
	if err != nil {
		return CleanupResult{}, err
	}

	cutoff := time.Now().UnixMilli() - int64(days)*24*int64(time.Hour/time.Millisecond)
	kept := col.Drafts[:0]
	deleted := 0
	for _, d := range col.Drafts {
		if d.Timestamp < cutoff {
			deleted++
			continue
		}
		kept = append(kept, d)
	}
	if deleted == 0 {
		return CleanupResult{}, nil
	}
	col.Drafts = kept
	col.LastUpdated = time.Now().UnixMilli()

	after, err := json.Marshal(col)
	if err != nil {
		return CleanupResult{}, err
	}
	if err := m.drv.Write(storage.KeyDraftsCollection, after); err != nil {
		return CleanupResult{}, err
	}

	return CleanupResult{
		DeletedCount: deleted,
		BytesFreed:   int64(len(before)-len(after)) * bytesPerChar,
	}, nil
}
