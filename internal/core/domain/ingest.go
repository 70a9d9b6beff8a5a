package domain

import "time"

// IngestStatus is the outcome classification of an ingestion run.
type IngestStatus string

// Ingestion outcomes.
const (
	IngestSuccess IngestStatus = "success"
	IngestError   IngestStatus = "error"
)

// IngestOptions controls a single ingestion run.
type IngestOptions struct {
	// RecencyLimit caps how many of the newest candidate posts to fetch.
	// 1 means "most recent only"; 0 means no limit.
	RecencyLimit int

	// Force reprocesses documents even when their content hash is already
	// present in the index.
	Force bool
}

// IngestResult is the structured outcome handed to callers. Ingestion
// failures are reported here, never raised, so the hosting process keeps
// running.
type IngestResult struct {
	Status   IngestStatus  `json:"status"`
	Message  string        `json:"message"`
	Progress ProgressState `json:"progress"`
}

// IngestRun is the persisted record of one ingestion run.
type IngestRun struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	Status       IngestStatus
	Message      string
	PostsTotal   int
	PostsIndexed int
	PostsSkipped int
	ChunksStored int
}
