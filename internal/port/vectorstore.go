package port

import "docqa/internal/domain"

// VectorStore stores and searches embedding vectors in a named collection
// that is created and owned outside this process.
type VectorStore interface {
	// Upsert inserts or replaces records by ID.
	Upsert(records []domain.Record) error

	// Query returns the topK nearest records to the vector, ordered by
	// descending similarity. Metadata is attached to each match only
	// when includeMetadata is true.
	Query(vector []float32, topK int, includeMetadata bool) ([]domain.QueryMatch, error)
}
