package usecase

import (
	"fmt"
	"strconv"

	"docqa/internal/domain"
	"docqa/internal/port"
)

// IngestUseCase handles document ingestion operations.
type IngestUseCase struct {
	chunker  port.Chunker
	embedder port.Embedder
	store    port.VectorStore
}

// NewIngestUseCase creates a new ingest use case.
func NewIngestUseCase(chunker port.Chunker, embedder port.Embedder, store port.VectorStore) *IngestUseCase {
	return &IngestUseCase{
		chunker:  chunker,
		embedder: embedder,
		store:    store,
	}
}

// IngestResult contains the results of an ingestion run.
type IngestResult struct {
	DocumentPath   string
	ChunksUpserted int
}

// Ingest splits the document and embeds and upserts every chunk in
// order, one embedding request and one upsert request per chunk,
// strictly serial. The first failure aborts the run: chunks already
// upserted stay in the collection, later chunks are never attempted.
// Re-running over the same document rewrites the same ids, so an
// aborted run can be restarted from the beginning safely.
//
// onProgress may be nil; when set it is called once with (0, total)
// before the first chunk and once after each upsert.
func (u *IngestUseCase) Ingest(doc domain.Document, onProgress func(done, total int)) (*IngestResult, error) {
	chunks, err := u.chunker.Chunk(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to chunk document: %w", err)
	}

	if onProgress != nil {
		onProgress(0, len(chunks))
	}

	for i, chunk := range chunks {
		vector, err := u.embedder.Embed(chunk.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunk %d: %w", chunk.Index, err)
		}

		record := domain.Record{
			ID:       strconv.Itoa(chunk.Index),
			Values:   vector,
			Metadata: map[string]string{domain.MetadataTextKey: chunk.Text},
		}
		if err := u.store.Upsert([]domain.Record{record}); err != nil {
			return nil, fmt.Errorf("failed to upsert chunk %d: %w", chunk.Index, err)
		}

		if onProgress != nil {
			onProgress(i+1, len(chunks))
		}
	}

	return &IngestResult{
		DocumentPath:   doc.Path,
		ChunksUpserted: len(chunks),
	}, nil
}
