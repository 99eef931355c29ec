package storage

// Logical record keys. One file per key under the store directory.
const (
	// KeyActiveDraft holds the single active draft. Only the auto-save
	// orchestrator writes this key.
	KeyActiveDraft = "active-draft"

	// KeyDraftsCollection holds the recent-drafts list.
	KeyDraftsCollection = "drafts-collection"

	// KeyConfigSnapshot holds the live configuration, undo/redo stacks, and
	// UI preferences so a restart resumes the same editing context.
	KeyConfigSnapshot = "config-snapshot"

	// KeyWarningDismissed remembers that the quota warning was acknowledged.
	KeyWarningDismissed = "storage-warning-dismissed"

	// KeyUnavailableDetected remembers that the store was found read-only
	// so the capability warning is not re-shown every launch.
	KeyUnavailableDetected = "storage-unavailable-detected"
)
