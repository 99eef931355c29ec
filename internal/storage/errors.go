package storage

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes callers branch on with errors.Is.
var (
	// ErrQuotaExceeded means a write was rejected because the store is full.
	// Recoverable by retention cleanup or saving elsewhere.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrStorageUnavailable means the store cannot be reached at all, e.g.
	// a read-only or missing store directory. The editor keeps working
	// in-memory only.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrCorruptedData means a stored record failed to parse or failed
	// structural validation. The raw payload is preserved on the error so a
	// migration or recovery prompt can still use it.
	ErrCorruptedData = errors.New("corrupted data")

	// ErrNotFound means the key has no stored value.
	ErrNotFound = errors.New("key not found")
)

// CorruptedError wraps ErrCorruptedData with the offending key, the raw bytes
// as stored, and the parse failure. The payload must never be dropped
// silently; recovery paths read it back off the error.
type CorruptedError struct {
	Key string
	Raw []byte
	Err error
}

func (e *CorruptedError) Error() string {
	return fmt.Sprintf("corrupted data at key %q: %v", e.Key, e.Err)
}

func (e *CorruptedError) Unwrap() error { return ErrCorruptedData }
