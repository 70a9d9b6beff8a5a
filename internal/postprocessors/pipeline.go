// Package postprocessors turns raw documents into indexable chunks.
package postprocessors

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/blograg/internal/core/domain"
	"github.com/custodia-labs/blograg/internal/core/ports/driven"
	"github.com/custodia-labs/blograg/internal/normalisers/frontmatter"
	"github.com/custodia-labs/blograg/internal/postprocessors/chunker"
)

// Ensure Pipeline implements the interface.
var _ driven.PostProcessor = (*Pipeline)(nil)

// Pipeline composes front-matter extraction and chunking to turn one raw
// document into its ordered sequence of indexable chunks.
type Pipeline struct {
	splitter *chunker.Splitter
}

// New creates a pipeline around the given splitter.
func New(splitter *chunker.Splitter) *Pipeline {
	if splitter == nil {
		splitter = chunker.New()
	}
	return &Pipeline{splitter: splitter}
}

// Process converts a document into chunks. An empty or whitespace-only
// body yields an empty sequence; malformed content never raises.
//
// Chunk IDs are "{documentID}_chunk_{index}". The metadata carries the
// extracted front-matter fields plus document_id, document_name,
// source_url, chunk_index and total_chunks, all rendered as strings.
func (p *Pipeline) Process(_ context.Context, doc *domain.Document) []domain.Chunk {
	if doc == nil || strings.TrimSpace(doc.RawText) == "" {
		return nil
	}

	parsed := frontmatter.Parse(doc.RawText)
	pieces := p.splitter.Split(parsed.BodyText)
	if len(pieces) == 0 {
		return nil
	}

	total := strconv.Itoa(len(pieces))
	chunks := make([]domain.Chunk, 0, len(pieces))
	for i, content := range pieces {
		metadata := make(map[string]string, len(parsed.Metadata)+5)
		for k, v := range parsed.Metadata {
			metadata[k] = v
		}
		metadata["document_id"] = doc.ID
		metadata["document_name"] = doc.Name
		metadata["source_url"] = doc.SourceURL
		metadata["chunk_index"] = strconv.Itoa(i)
		metadata["total_chunks"] = total

		chunks = append(chunks, domain.Chunk{
			ID:       fmt.Sprintf("%s_chunk_%d", doc.ID, i),
			Content:  content,
			Metadata: metadata,
		})
	}

	return chunks
}
