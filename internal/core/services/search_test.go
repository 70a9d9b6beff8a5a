package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/blograg/internal/adapters/driven/vectorstore/memory"
	"github.com/custodia-labs/blograg/internal/core/domain"
	"github.com/custodia-labs/blograg/internal/core/ports/driven"
)

// fakeLLM records the last conversation and returns a canned answer.
type fakeLLM struct {
	lastMessages []driven.ChatMessage
	lastOpts     driven.ChatOptions
	reply        string
	err          error
}

func (f *fakeLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	f.lastMessages = messages
	f.lastOpts = opts
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) ModelName() string { return "fake-model" }

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	err := store.Upsert(context.Background(),
		[]string{"doc1_chunk_0", "doc2_chunk_0"},
		[]string{
			"Go concurrency patterns with channels and goroutines.",
			"A recipe for sourdough bread and slow fermentation.",
		},
		[]map[string]string{
			{"document_id": "doc1", "document_name": "2025-05-26-go.md", "title": "Go Patterns", "date": "2025-05-26"},
			{"document_id": "doc2", "document_name": "2025-05-19-bread.md", "title": "Bread", "date": "2025-05-19"},
		},
	)
	require.NoError(t, err)
	return store
}

func TestSearchReturnsClosestFirst(t *testing.T) {
	svc := NewSearchService(seededStore(t), nil, "blog_content")

	results, err := svc.Search(context.Background(), "go concurrency channels", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Go Patterns", results[0].Metadata["title"])
	assert.Less(t, results[0].Distance, results[1].Distance)
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := NewSearchService(seededStore(t), nil, "blog_content")

	results, err := svc.Search(context.Background(), "   ", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchDefaultLimit(t *testing.T) {
	svc := NewSearchService(seededStore(t), nil, "blog_content")

	results, err := svc.Search(context.Background(), "content", 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), DefaultSearchLimit)
}

func TestAskForwardsContextAndQuestion(t *testing.T) {
	llm := &fakeLLM{reply: "  Channels. [Go Patterns (2025-05-26)]  "}
	svc := NewSearchService(seededStore(t), llm, "blog_content")

	answer, err := svc.Ask(context.Background(), "how do channels work", 2)
	require.NoError(t, err)

	assert.Equal(t, "Channels. [Go Patterns (2025-05-26)]", answer.Text)
	assert.Len(t, answer.Sources, 2)

	require.Len(t, llm.lastMessages, 1)
	prompt := llm.lastMessages[0].Content
	assert.Contains(t, prompt, "how do channels work")
	assert.Contains(t, prompt, "Context 1 (Source: Go Patterns, Date: 2025-05-26):")
	assert.Contains(t, prompt, "cite your sources")
	assert.Equal(t, 0.7, llm.lastOpts.Temperature)
	assert.Equal(t, 8000, llm.lastOpts.MaxTokens)
}

func TestAskWithoutLLM(t *testing.T) {
	svc := NewSearchService(seededStore(t), nil, "blog_content")

	_, err := svc.Ask(context.Background(), "anything", 5)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestAskPropagatesLLMError(t *testing.T) {
	llm := &fakeLLM{err: errors.New("upstream down")}
	svc := NewSearchService(seededStore(t), llm, "blog_content")

	_, err := svc.Ask(context.Background(), "anything", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestStatus(t *testing.T) {
	svc := NewSearchService(seededStore(t), nil, "blog_content")

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, status.ChunkCount)
	assert.Equal(t, "blog_content", status.Collection)
}

func TestStatusWithoutStore(t *testing.T) {
	svc := NewSearchService(nil, nil, "blog_content")

	_, err := svc.Status(context.Background())
	assert.ErrorIs(t, err, domain.ErrVectorStoreUnavailable)
}
