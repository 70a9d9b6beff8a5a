package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/blograg/internal/core/domain"
	"github.com/custodia-labs/blograg/internal/core/ports/driven"
	"github.com/custodia-labs/blograg/internal/core/ports/driving"
	"github.com/custodia-labs/blograg/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// DefaultSearchLimit is the number of chunks retrieved when the caller
// does not specify one.
const DefaultSearchLimit = 5

// askPrompt frames retrieved context and the user question for the
// completion service. Answers cite sources as [Title (Date)].
const askPrompt = `You are an AI research assistant helping users find and summarize information from a technical blog.

Your task is to:
1. Analyze the provided context from blog posts
2. Extract relevant information that answers the user's question
3. Provide a clear, well-structured response
4. Always cite your sources using the format [Title (Date)]
5. If the context doesn't contain enough information, acknowledge this

Here is the relevant context from the blog:

%s

Question: %s

Answer (remember to cite sources):`

// SearchService answers queries against the indexed blog content.
// The completion service is optional; without it Ask is unavailable but
// Search and Status keep working.
type SearchService struct {
	store      driven.VectorStore
	llm        driven.CompletionService
	collection string
}

// NewSearchService creates a search service over the given store.
func NewSearchService(store driven.VectorStore, llm driven.CompletionService, collection string) *SearchService {
	return &SearchService{
		store:      store,
		llm:        llm,
		collection: collection,
	}
}

// Search returns the chunks most similar to the query, closest first.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if s.store == nil {
		return nil, domain.ErrVectorStoreUnavailable
	}

	logger.Debug("Search query: %q (limit %d)", query, limit)
	result, err := s.store.Query(ctx, []string{query}, limit)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	return result.Results(), nil
}

// Ask retrieves relevant chunks and forwards them with the question to
// the completion service.
func (s *SearchService) Ask(ctx context.Context, question string, limit int) (*domain.Answer, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	sources, err := s.Search(ctx, question, limit)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(askPrompt, formatContext(sources), question)
	logger.Debug("Asking %s with %d context chunks", s.llm.ModelName(), len(sources))

	text, err := s.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "user", Content: prompt},
	}, driven.ChatOptions{
		Temperature: 0.7,
		MaxTokens:   8000,
	})
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}

	return &domain.Answer{Text: strings.TrimSpace(text), Sources: sources}, nil
}

// Status reports the current state of the index.
func (s *SearchService) Status(ctx context.Context) (*domain.IndexStatus, error) {
	if s.store == nil {
		return nil, domain.ErrVectorStoreUnavailable
	}
	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count index: %w", err)
	}
	return &domain.IndexStatus{ChunkCount: count, Collection: s.collection}, nil
}

// formatContext renders retrieved chunks as numbered, attributed context
// blocks.
func formatContext(results []domain.SearchResult) string {
	if len(results) == 0 {
		return "(no relevant context found)"
	}
	blocks := make([]string, len(results))
	for i, res := range results {
		title := res.Metadata["title"]
		if title == "" {
			title = "Unknown"
		}
		date := res.Metadata["date"]
		if date == "" {
			date = "Unknown"
		}
		blocks[i] = fmt.Sprintf("Context %d (Source: %s, Date: %s):\n%s", i+1, title, date, res.Content)
	}
	return strings.Join(blocks, "\n\n")
}
