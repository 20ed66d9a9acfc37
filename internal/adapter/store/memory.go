package store

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"docqa/internal/domain"
)

// MemoryStore keeps vectors in a map keyed by record id, so upserting an
// existing id replaces it. Search is brute-force cosine similarity. It
// backs the "memory" store provider for offline runs and is the test
// double for the pipelines.
type MemoryStore struct {
	mu        sync.RWMutex
	dimension int
	records   map[string]recordEntry
}

type recordEntry struct {
	vector   []float32
	metadata map[string]string
}

func NewMemoryStore(dimension int) *MemoryStore {
	return &MemoryStore{
		dimension: dimension,
		records:   make(map[string]recordEntry),
	}
}

// Upsert inserts or replaces records by ID.
func (s *MemoryStore) Upsert(records []domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		if len(rec.Values) != s.dimension {
			return &domain.ProviderError{
				Provider: "memory",
				Op:       "upsert",
				Err:      fmt.Errorf("vector dimension mismatch: expected %d, got %d", s.dimension, len(rec.Values)),
			}
		}
		s.records[rec.ID] = recordEntry{
			vector:   rec.Values,
			metadata: rec.Metadata,
		}
	}

	return nil
}

// Query finds the topK nearest records by cosine similarity.
func (s *MemoryStore) Query(vector []float32, topK int, includeMetadata bool) ([]domain.QueryMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(vector) != s.dimension {
		return nil, &domain.ProviderError{
			Provider: "memory",
			Op:       "query",
			Err:      fmt.Errorf("query dimension mismatch: expected %d, got %d", s.dimension, len(vector)),
		}
	}

	if len(s.records) == 0 {
		return nil, nil
	}

	matches := make([]domain.QueryMatch, 0, len(s.records))
	for id, entry := range s.records {
		match := domain.QueryMatch{
			ID:    id,
			Score: cosineSimilarity(vector, entry.vector),
		}
		if includeMetadata {
			match.Metadata = entry.metadata
		}
		matches = append(matches, match)
	}

	// Sort by score descending; ties break on id for stable output.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})

	if topK < len(matches) {
		matches = matches[:topK]
	}

	return matches, nil
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
