package domain

import "time"

// ExtractionStatus is the outcome of content extraction for one file.
type ExtractionStatus string

const (
	// ExtractionSkipped means the file type has no extractable content.
	ExtractionSkipped ExtractionStatus = "skipped"

	// ExtractionExtracted means content was fully extracted.
	ExtractionExtracted ExtractionStatus = "extracted"

	// ExtractionPartial means some content was extracted before an item error.
	ExtractionPartial ExtractionStatus = "partial"

	// ExtractionFailed means an item error occurred before any content was extracted.
	ExtractionFailed ExtractionStatus = "failed"
)

// ExtractionResult records how content extraction went for a file.
type ExtractionResult struct {
	// FileID identifies the file.
	FileID string

	// Status is the extraction outcome.
	Status ExtractionStatus

	// Err is the swallowed item error for partial and failed results.
	Err error
}

// SyncMode identifies how a sync run discovered entities.
type SyncMode string

const (
	// SyncModeDelta fetches changes since the stored cursor.
	SyncModeDelta SyncMode = "delta"

	// SyncModeBackfill lists every entity in the drive.
	SyncModeBackfill SyncMode = "backfill"
)

// SyncReport summarises a completed sync run.
type SyncReport struct {
	RunID     string   `json:"run_id"`
	Mode      SyncMode `json:"mode"`
	Files     int      `json:"files"`
	Folders   int      `json:"folders"`
	Removed   int      `json:"removed"`
	Owners    int      `json:"owners"`
	Locations int      `json:"locations"`

	// Extraction counts results by status.
	Extraction map[ExtractionStatus]int `json:"extraction"`
}

// RunState is the lifecycle state of a sync run.
type RunState string

const (
	RunRunning   RunState = "running"
	RunSucceeded RunState = "succeeded"
	RunFailed    RunState = "failed"
)

// SyncRun is the recorded history of one pipeline run.
type SyncRun struct {
	ID         string
	Mode       SyncMode
	State      RunState
	StartedAt  time.Time
	FinishedAt time.Time

	// Error is the failure message of a failed run.
	Error string

	// Report is set once the run has succeeded.
	Report *SyncReport
}
