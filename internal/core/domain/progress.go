package domain

import "sync"

// Stage identifies where an ingestion run currently is.
type Stage string

// Ingestion stages. Error is terminal and reachable from any other stage.
const (
	StageStarting    Stage = "starting"
	StageDownloading Stage = "downloading"
	StageProcessing  Stage = "processing"
	StageStoring     Stage = "storing"
	StageComplete    Stage = "complete"
	StageError       Stage = "error"
)

// ProgressState is a snapshot of ingestion progress. Readers always get a
// value copy, so a momentarily stale snapshot is the worst case.
type ProgressState struct {
	Stage   Stage  `json:"stage"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

// ProgressTracker is the explicitly owned progress state of an ingestion
// run: a single writer (the active run) and any number of concurrent
// readers (status queries).
type ProgressTracker struct {
	mu    sync.RWMutex
	state ProgressState
}

// NewProgressTracker returns a tracker in the starting stage.
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{state: ProgressState{Stage: StageStarting}}
}

// Reset returns the tracker to the starting stage with zeroed counters.
// Called at the beginning of every ingestion run.
func (t *ProgressTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = ProgressState{Stage: StageStarting}
}

// Set replaces the whole progress state.
func (t *ProgressTracker) Set(stage Stage, current, total int, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = ProgressState{Stage: stage, Current: current, Total: total, Message: message}
}

// Advance bumps the current counter, keeping stage and total.
func (t *ProgressTracker) Advance(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Current++
	t.state.Message = message
}

// Snapshot returns a copy of the current state.
func (t *ProgressTracker) Snapshot() ProgressState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}
