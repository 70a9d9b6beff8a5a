package driving

import (
	"context"

	"github.com/custodia-labs/blograg/internal/core/domain"
)

// Ingester runs the incremental ingestion pipeline and exposes its
// progress to concurrent status queries.
type Ingester interface {
	// Update fetches candidate posts, processes the ones not yet indexed
	// and stores their chunks. It always returns a structured result;
	// failures never propagate as errors.
	Update(ctx context.Context, opts domain.IngestOptions) domain.IngestResult

	// Progress returns a snapshot of the current (or last) run's progress.
	Progress() domain.ProgressState
}
