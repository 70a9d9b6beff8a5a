package driven

import (
	"context"

	"github.com/custodia-labs/blograg/internal/core/domain"
)

// VectorStore is the external embedding store holding chunk text, metadata
// and embeddings. Embedding happens inside the store; callers only pass
// text. All metadata values must be strings.
type VectorStore interface {
	// Upsert writes chunks by ID. Upserts are idempotent per ID.
	Upsert(ctx context.Context, ids []string, documents []string, metadatas []map[string]string) error

	// Metadatas returns the metadata of every stored chunk. Used to derive
	// the set of already-indexed document IDs; O(index size) by design.
	Metadatas(ctx context.Context) ([]map[string]string, error)

	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)

	// Query runs a similarity search and returns the top n chunks per
	// query text, closest first.
	Query(ctx context.Context, queryTexts []string, n int) (*QueryResult, error)
}

// QueryResult mirrors the store's nested response shape: the outer index
// is the query, the inner index is the rank.
type QueryResult struct {
	Documents [][]string
	Metadatas [][]map[string]string
	Distances [][]float64
}

// Results flattens the first query's hits into search results.
func (r *QueryResult) Results() []domain.SearchResult {
	if r == nil || len(r.Documents) == 0 {
		return nil
	}
	out := make([]domain.SearchResult, 0, len(r.Documents[0]))
	for i, doc := range r.Documents[0] {
		res := domain.SearchResult{Content: doc}
		if len(r.Metadatas) > 0 && i < len(r.Metadatas[0]) {
			res.Metadata = r.Metadatas[0][i]
		}
		if len(r.Distances) > 0 && i < len(r.Distances[0]) {
			res.Distance = r.Distances[0][i]
		}
		out = append(out, res)
	}
	return out
}
