// Package memory provides an in-memory VectorStore for tests and
// offline development. Similarity is a naive term-overlap score, not a
// real embedding distance.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/blograg/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// record is one stored chunk.
type record struct {
	id       string
	document string
	metadata map[string]string
}

// Store is an in-memory, thread-safe VectorStore.
type Store struct {
	mu      sync.RWMutex
	records map[string]record
	order   []string // insertion order of IDs

	// UpsertCalls counts Upsert invocations; used by tests asserting
	// at-most-once ingestion.
	UpsertCalls int
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{records: make(map[string]record)}
}

// Upsert writes chunks by ID.
func (s *Store) Upsert(_ context.Context, ids []string, documents []string, metadatas []map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.UpsertCalls++
	for i, id := range ids {
		if _, exists := s.records[id]; !exists {
			s.order = append(s.order, id)
		}
		rec := record{id: id}
		if i < len(documents) {
			rec.document = documents[i]
		}
		if i < len(metadatas) {
			rec.metadata = metadatas[i]
		}
		s.records[id] = rec
	}
	return nil
}

// Metadatas returns the metadata of every stored chunk.
func (s *Store) Metadatas(_ context.Context) ([]map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]map[string]string, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id].metadata)
	}
	return out, nil
}

// Count returns the number of stored chunks.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Query scores every stored document by term overlap with the query and
// returns the top n, closest first. Distance is 1 - score.
func (s *Store) Query(_ context.Context, queryTexts []string, n int) (*driven.QueryResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := &driven.QueryResult{
		Documents: make([][]string, len(queryTexts)),
		Metadatas: make([][]map[string]string, len(queryTexts)),
		Distances: make([][]float64, len(queryTexts)),
	}

	for qi, query := range queryTexts {
		type hit struct {
			rec      record
			distance float64
		}
		hits := make([]hit, 0, len(s.order))
		for _, id := range s.order {
			rec := s.records[id]
			hits = append(hits, hit{rec: rec, distance: 1 - overlapScore(query, rec.document)})
		}
		sort.SliceStable(hits, func(i, j int) bool { return hits[i].distance < hits[j].distance })
		if n > 0 && len(hits) > n {
			hits = hits[:n]
		}

		for _, h := range hits {
			result.Documents[qi] = append(result.Documents[qi], h.rec.document)
			result.Metadatas[qi] = append(result.Metadatas[qi], h.rec.metadata)
			result.Distances[qi] = append(result.Distances[qi], h.distance)
		}
	}

	return result, nil
}

// overlapScore is the fraction of query terms present in the document.
func overlapScore(query, document string) float64 {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return 0
	}
	doc := strings.ToLower(document)
	matched := 0
	for _, term := range terms {
		if strings.Contains(doc, term) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}
