package driven

import (
	"context"

	"github.com/custodia-labs/blograg/internal/core/domain"
)

// PostProcessor turns one raw document into its ordered sequence of
// indexable chunks. Malformed content degrades to an empty sequence,
// never an error.
type PostProcessor interface {
	Process(ctx context.Context, doc *domain.Document) []domain.Chunk
}
