package driving

import (
	"context"

	"github.com/custodia-labs/blograg/internal/core/domain"
)

// SearchService answers queries against the indexed blog content.
type SearchService interface {
	// Search returns the chunks most similar to the query, closest first.
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)

	// Ask retrieves relevant chunks and forwards them with the question to
	// the completion service, returning the generated answer with sources.
	Ask(ctx context.Context, question string, limit int) (*domain.Answer, error)

	// Status reports the current state of the index.
	Status(ctx context.Context) (*domain.IndexStatus, error)
}
