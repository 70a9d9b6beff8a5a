package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/blograg/internal/core/domain"
	"github.com/custodia-labs/blograg/internal/core/ports/driven"
	"github.com/custodia-labs/blograg/internal/core/ports/driving"
	"github.com/custodia-labs/blograg/internal/logger"
)

// Ensure Ingester implements the interface.
var _ driving.Ingester = (*Ingester)(nil)

// UpsertBatchSize is the number of chunks written per index upsert.
const UpsertBatchSize = 100

// Ingester orchestrates incremental ingestion: listing candidate posts,
// downloading the ones not yet indexed, chunking them and upserting the
// chunks into the vector store. One run at a time; failures surface as a
// structured result, never as an error or panic.
type Ingester struct {
	source   driven.PostSource
	pipeline driven.PostProcessor
	store    driven.VectorStore
	runs     driven.RunStore

	progress *domain.ProgressTracker

	mu      sync.Mutex
	running bool
}

// NewIngester creates an ingester. The run store is optional; set it with
// SetRunStore to record run history.
func NewIngester(
	source driven.PostSource,
	pipeline driven.PostProcessor,
	store driven.VectorStore,
) *Ingester {
	return &Ingester{
		source:   source,
		pipeline: pipeline,
		store:    store,
		progress: domain.NewProgressTracker(),
	}
}

// SetRunStore enables persistent run history.
func (s *Ingester) SetRunStore(runs driven.RunStore) {
	s.runs = runs
}

// Progress returns a snapshot of the current (or last) run's progress.
func (s *Ingester) Progress() domain.ProgressState {
	return s.progress.Snapshot()
}

// counters accumulates the per-run totals recorded in the run history.
type counters struct {
	total   int
	indexed int
	skipped int
	chunks  int
}

// Update runs one ingestion pass. Concurrent invocations are rejected so
// a second trigger cannot interleave progress updates with the active run.
func (s *Ingester) Update(ctx context.Context, opts domain.IngestOptions) domain.IngestResult {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return domain.IngestResult{
			Status:   domain.IngestError,
			Message:  domain.ErrIngestInProgress.Error(),
			Progress: s.progress.Snapshot(),
		}
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	started := time.Now()
	var cnt counters

	message, err := s.run(ctx, opts, &cnt)
	if err != nil {
		snap := s.progress.Snapshot()
		s.progress.Set(domain.StageError, snap.Current, snap.Total, err.Error())
		message = err.Error()
	}

	result := domain.IngestResult{
		Status:   domain.IngestSuccess,
		Message:  message,
		Progress: s.progress.Snapshot(),
	}
	if err != nil {
		result.Status = domain.IngestError
	}

	s.recordRun(ctx, started, result, cnt)
	return result
}

// run executes the ingestion state machine:
// starting -> downloading -> processing -> storing -> complete.
func (s *Ingester) run(ctx context.Context, opts domain.IngestOptions, cnt *counters) (message string, err error) {
	defer func() {
		// A panic anywhere in the pipeline must not take down the host.
		if r := recover(); r != nil {
			logger.Warn("ingestion panic: %v", r)
			err = fmt.Errorf("ingestion panic: %v", r)
		}
	}()

	s.progress.Reset()

	if s.store == nil {
		return "", domain.ErrVectorStoreUnavailable
	}

	entries, err := s.source.ListPosts(ctx)
	if err != nil {
		return "", fmt.Errorf("list posts: %w", err)
	}
	if opts.RecencyLimit > 0 && len(entries) > opts.RecencyLimit {
		entries = entries[:opts.RecencyLimit]
	}
	cnt.total = len(entries)

	existing, err := s.existingDocumentIDs(ctx)
	if err != nil {
		return "", fmt.Errorf("read indexed documents: %w", err)
	}
	logger.Debug("Index holds %d documents", len(existing))

	// Downloading: the listing already carries each entry's content hash,
	// so documents fully represented in the index are skipped before any
	// download. Skips still count as progress.
	s.progress.Set(domain.StageDownloading, 0, len(entries), "")
	docs := make([]*domain.Document, 0, len(entries))
	for i, entry := range entries {
		if !opts.Force && existing[entry.SHA] {
			cnt.skipped++
			s.progress.Set(domain.StageDownloading, i+1, len(entries), "Already indexed: "+entry.Name)
			continue
		}
		doc, err := s.source.Download(ctx, entry)
		if err != nil {
			return "", fmt.Errorf("download %s: %w", entry.Name, err)
		}
		docs = append(docs, doc)
		s.progress.Set(domain.StageDownloading, i+1, len(entries), "Downloaded "+entry.Name)
	}

	// Processing: chunk each fetched document. Malformed content degrades
	// to zero chunks for that document rather than aborting the run.
	s.progress.Set(domain.StageProcessing, 0, len(docs), "")
	var chunks []domain.Chunk
	for i, doc := range docs {
		docChunks := s.pipeline.Process(ctx, doc)
		if len(docChunks) == 0 {
			logger.Warn("No chunks produced for %s", doc.Name)
		}
		chunks = append(chunks, docChunks...)
		cnt.indexed++
		s.progress.Set(domain.StageProcessing, i+1, len(docs), "Processed "+doc.Name)
	}
	cnt.chunks = len(chunks)

	// Storing: fixed-size batches. A failed batch aborts the loop; prior
	// batches remain stored.
	batches := (len(chunks) + UpsertBatchSize - 1) / UpsertBatchSize
	s.progress.Set(domain.StageStoring, 0, batches, "")
	for b := 0; b < batches; b++ {
		start := b * UpsertBatchSize
		end := start + UpsertBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		if err := s.upsertBatch(ctx, chunks[start:end]); err != nil {
			return "", fmt.Errorf("%w: batch %d/%d: %w", domain.ErrStorage, b+1, batches, err)
		}
		s.progress.Set(domain.StageStoring, b+1, batches, fmt.Sprintf("Stored batch %d/%d", b+1, batches))
	}

	message = fmt.Sprintf("Updated %d posts with %d chunks (%d already indexed)",
		len(docs), len(chunks), cnt.skipped)
	s.progress.Set(domain.StageComplete, batches, batches, message)
	logger.Info("Ingestion complete: %s", message)
	return message, nil
}

// existingDocumentIDs derives the set of already-indexed document IDs by
// reading back all stored chunk metadata. O(index size) each run.
func (s *Ingester) existingDocumentIDs(ctx context.Context) (map[string]bool, error) {
	metadatas, err := s.store.Metadatas(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(metadatas))
	for _, md := range metadatas {
		if id, ok := md["document_id"]; ok && id != "" {
			ids[id] = true
		}
	}
	return ids, nil
}

// upsertBatch writes one batch of chunks to the vector store.
func (s *Ingester) upsertBatch(ctx context.Context, batch []domain.Chunk) error {
	ids := make([]string, len(batch))
	documents := make([]string, len(batch))
	metadatas := make([]map[string]string, len(batch))
	for i, chunk := range batch {
		ids[i] = chunk.ID
		documents[i] = chunk.Content
		metadatas[i] = chunk.Metadata
	}
	return s.store.Upsert(ctx, ids, documents, metadatas)
}

// recordRun persists the run outcome when a run store is configured.
func (s *Ingester) recordRun(ctx context.Context, started time.Time, result domain.IngestResult, cnt counters) {
	if s.runs == nil {
		return
	}
	run := domain.IngestRun{
		ID:           uuid.New().String(),
		StartedAt:    started,
		FinishedAt:   time.Now(),
		Status:       result.Status,
		Message:      result.Message,
		PostsTotal:   cnt.total,
		PostsIndexed: cnt.indexed,
		PostsSkipped: cnt.skipped,
		ChunksStored: cnt.chunks,
	}
	if err := s.runs.Save(ctx, run); err != nil {
		logger.Warn("Failed to record ingestion run: %v", err)
	}
}
