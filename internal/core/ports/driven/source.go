package driven

import (
	"context"

	"github.com/custodia-labs/blograg/internal/core/domain"
)

// PostSource retrieves candidate blog posts from the external content
// source. Any non-success response, whether while listing or while
// downloading a single entry, is fatal for the whole call.
type PostSource interface {
	// ListPosts returns the candidate entries in the posts directory,
	// filtered to dated post filenames and sorted newest first. The bodies
	// are not downloaded yet.
	ListPosts(ctx context.Context) ([]domain.PostEntry, error)

	// Download fetches the raw content for one entry. Implementations
	// throttle calls to stay under the upstream rate limit.
	Download(ctx context.Context, entry domain.PostEntry) (*domain.Document, error)
}
