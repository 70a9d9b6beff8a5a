package driven

import (
	"context"

	"github.com/custodia-labs/blograg/internal/core/domain"
)

// RunStore persists the history of ingestion runs.
type RunStore interface {
	// Save records a finished run.
	Save(ctx context.Context, run domain.IngestRun) error

	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]domain.IngestRun, error)

	// Last returns the most recent run, or domain.ErrNotFound.
	Last(ctx context.Context) (*domain.IngestRun, error)
}
