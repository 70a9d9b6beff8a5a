package postprocessors

import (
	"context"
	"strconv"
	"testing"

	"github.com/custodia-labs/blograg/internal/core/domain"
	"github.com/custodia-labs/blograg/internal/postprocessors/chunker"
)

func TestProcessChunkIDsAndMetadata(t *testing.T) {
	p := New(chunker.New(chunker.WithChunkSize(40), chunker.WithOverlap(10)))
	doc := &domain.Document{
		ID:        "abc123",
		Name:      "2025-05-26-notes.md",
		SourceURL: "https://example.com/notes",
		RawText: `---
title: Notes
date: 2025-05-26
---
First sentence here. Second sentence follows. Third one closes.`,
	}

	chunks := p.Process(context.Background(), doc)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}

	for i, chunk := range chunks {
		wantID := "abc123_chunk_" + strconv.Itoa(i)
		if chunk.ID != wantID {
			t.Errorf("chunk %d ID = %q, want %q", i, chunk.ID, wantID)
		}
		md := chunk.Metadata
		if md["document_id"] != "abc123" {
			t.Errorf("chunk %d document_id = %q", i, md["document_id"])
		}
		if md["document_name"] != doc.Name {
			t.Errorf("chunk %d document_name = %q", i, md["document_name"])
		}
		if md["source_url"] != doc.SourceURL {
			t.Errorf("chunk %d source_url = %q", i, md["source_url"])
		}
		if md["title"] != "Notes" {
			t.Errorf("chunk %d title = %q", i, md["title"])
		}
		if md["date"] != "2025-05-26" {
			t.Errorf("chunk %d date = %q", i, md["date"])
		}
		if md["chunk_index"] != strconv.Itoa(i) {
			t.Errorf("chunk %d chunk_index = %q", i, md["chunk_index"])
		}
		if md["total_chunks"] != strconv.Itoa(len(chunks)) {
			t.Errorf("chunk %d total_chunks = %q", i, md["total_chunks"])
		}
	}
}

func TestProcessEmptyBody(t *testing.T) {
	p := New(nil)
	if got := p.Process(context.Background(), &domain.Document{ID: "x", RawText: "   \n  "}); got != nil {
		t.Errorf("Process(whitespace) = %v, want nil", got)
	}
	if got := p.Process(context.Background(), nil); got != nil {
		t.Errorf("Process(nil) = %v, want nil", got)
	}
}

func TestProcessFrontMatterOnly(t *testing.T) {
	p := New(nil)
	doc := &domain.Document{ID: "x", RawText: "---\ntitle: Empty\n---\n   \n"}
	if got := p.Process(context.Background(), doc); got != nil {
		t.Errorf("Process(front matter only) = %v, want nil", got)
	}
}
