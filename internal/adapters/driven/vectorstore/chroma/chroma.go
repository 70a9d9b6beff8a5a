// Package chroma provides a VectorStore adapter for a Chroma server.
// Embedding happens server-side; only text, IDs and metadata cross the
// wire.
package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/custodia-labs/blograg/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "http://localhost:8000"
	DefaultCollection = "blog_content"
	DefaultTimeout    = 60 * time.Second
)

// Config holds configuration for the Chroma store.
type Config struct {
	// BaseURL is the Chroma server URL (default: http://localhost:8000).
	BaseURL string

	// Collection is the collection name (default: blog_content).
	Collection string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// Store talks to a Chroma server over its REST API. The collection is
// created on first use.
type Store struct {
	client     *http.Client
	baseURL    string
	collection string

	mu           sync.Mutex
	collectionID string
}

// errorResponse is Chroma's error body.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// New creates a new Chroma store.
func New(cfg Config) *Store {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Store{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		collection: cfg.Collection,
	}
}

// Collection returns the configured collection name.
func (s *Store) Collection() string {
	return s.collection
}

// ensureCollection resolves (creating if needed) the collection ID.
func (s *Store) ensureCollection(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collectionID != "" {
		return s.collectionID, nil
	}

	reqBody := map[string]any{
		"name":          s.collection,
		"get_or_create": true,
		"metadata":      map[string]string{"description": "Blog content embeddings"},
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := s.post(ctx, "/api/v1/collections", reqBody, &resp); err != nil {
		return "", fmt.Errorf("get or create collection: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("chroma: empty collection id for %q", s.collection)
	}

	s.collectionID = resp.ID
	return s.collectionID, nil
}

// Upsert writes chunks by ID. Upserts are idempotent per ID.
func (s *Store) Upsert(ctx context.Context, ids []string, documents []string, metadatas []map[string]string) error {
	if len(ids) == 0 {
		return nil
	}

	collID, err := s.ensureCollection(ctx)
	if err != nil {
		return err
	}

	reqBody := map[string]any{
		"ids":       ids,
		"documents": documents,
		"metadatas": metadatas,
	}
	return s.post(ctx, "/api/v1/collections/"+collID+"/upsert", reqBody, nil)
}

// Metadatas returns the metadata of every stored chunk.
func (s *Store) Metadatas(ctx context.Context) ([]map[string]string, error) {
	collID, err := s.ensureCollection(ctx)
	if err != nil {
		return nil, err
	}

	reqBody := map[string]any{
		"include": []string{"metadatas"},
	}
	var resp struct {
		Metadatas []map[string]string `json:"metadatas"`
	}
	if err := s.post(ctx, "/api/v1/collections/"+collID+"/get", reqBody, &resp); err != nil {
		return nil, err
	}
	return resp.Metadatas, nil
}

// Count returns the number of stored chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	collID, err := s.ensureCollection(ctx)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, s.baseURL+"/api/v1/collections/"+collID+"/count", http.NoBody,
	)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("chroma error (status %d): %s", resp.StatusCode, string(body))
	}

	var count int
	if err := json.Unmarshal(body, &count); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	return count, nil
}

// Query runs a similarity search and returns the top n chunks per query
// text, closest first.
func (s *Store) Query(ctx context.Context, queryTexts []string, n int) (*driven.QueryResult, error) {
	collID, err := s.ensureCollection(ctx)
	if err != nil {
		return nil, err
	}

	reqBody := map[string]any{
		"query_texts": queryTexts,
		"n_results":   n,
		"include":     []string{"documents", "metadatas", "distances"},
	}
	var resp struct {
		Documents [][]string            `json:"documents"`
		Metadatas [][]map[string]string `json:"metadatas"`
		Distances [][]float64           `json:"distances"`
	}
	if err := s.post(ctx, "/api/v1/collections/"+collID+"/query", reqBody, &resp); err != nil {
		return nil, err
	}

	return &driven.QueryResult{
		Documents: resp.Documents,
		Metadatas: resp.Metadatas,
		Distances: resp.Distances,
	}, nil
}

// post sends a JSON request and decodes the JSON response into out (when
// out is non-nil). Non-2xx responses surface with the response body as
// detail.
func (s *Store) post(ctx context.Context, path string, in any, out any) error {
	jsonBody, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(jsonBody),
	)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			return fmt.Errorf("chroma error (status %d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("chroma error (status %d): %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
