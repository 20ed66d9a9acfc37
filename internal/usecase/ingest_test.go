package usecase

import (
	"errors"
	"testing"

	"docqa/internal/adapter/chunker"
	"docqa/internal/adapter/embedding"
	"docqa/internal/adapter/store"
	"docqa/internal/domain"
)

// recordingStore captures upserted records without any validation, so
// tests can assert exactly what the pipeline sent.
type recordingStore struct {
	upserts []domain.Record
}

func (s *recordingStore) Upsert(records []domain.Record) error {
	s.upserts = append(s.upserts, records...)
	return nil
}

func (s *recordingStore) Query(vector []float32, topK int, includeMetadata bool) ([]domain.QueryMatch, error) {
	return nil, nil
}

// failingEmbedder fails on the failAt-th call (1-based) and counts how
// many calls were attempted.
type failingEmbedder struct {
	failAt int
	calls  int
}

func (e *failingEmbedder) Embed(text string) ([]float32, error) {
	e.calls++
	if e.calls == e.failAt {
		return nil, &domain.ProviderError{Provider: "openai", Op: "embed", Err: errors.New("connection reset")}
	}
	return []float32{1, 0}, nil
}

func (e *failingEmbedder) Dimension() int    { return 2 }
func (e *failingEmbedder) ModelName() string { return "fake" }

type failingStore struct {
	recordingStore
	failAt int
	calls  int
}

func (s *failingStore) Upsert(records []domain.Record) error {
	s.calls++
	if s.calls == s.failAt {
		return &domain.ProviderError{Provider: "qdrant", Op: "upsert", Err: errors.New("collection not found")}
	}
	return s.recordingStore.Upsert(records)
}

func TestIngestRecordIDsAndMetadata(t *testing.T) {
	st := &recordingStore{}
	uc := NewIngestUseCase(chunker.NewParagraphChunker(), embedding.NewMockEmbedder(8), st)

	doc := domain.Document{Path: "story.txt", Content: "Once upon a time.\n\na wolf appeared."}
	result, err := uc.Ingest(doc, nil)
	if err != nil {
		t.Fatal(err)
	}

	if result.DocumentPath != "story.txt" {
		t.Errorf("unexpected document path: %q", result.DocumentPath)
	}
	if result.ChunksUpserted != 2 {
		t.Errorf("expected 2 chunks upserted, got %d", result.ChunksUpserted)
	}

	if len(st.upserts) != 2 {
		t.Fatalf("expected 2 records, got %d", len(st.upserts))
	}
	wantTexts := []string{"Once upon a time.", "a wolf appeared."}
	wantIDs := []string{"0", "1"}
	for i, rec := range st.upserts {
		if rec.ID != wantIDs[i] {
			t.Errorf("record %d: expected id %q, got %q", i, wantIDs[i], rec.ID)
		}
		if rec.Metadata[domain.MetadataTextKey] != wantTexts[i] {
			t.Errorf("record %d: expected text %q, got %q", i, wantTexts[i], rec.Metadata[domain.MetadataTextKey])
		}
		if len(rec.Values) != 8 {
			t.Errorf("record %d: expected 8-dimensional vector, got %d", i, len(rec.Values))
		}
	}
}

func TestIngestIdempotent(t *testing.T) {
	embedder := embedding.NewMockEmbedder(8)
	memory := store.NewMemoryStore(8)
	uc := NewIngestUseCase(chunker.NewParagraphChunker(), embedder, memory)

	doc := domain.Document{Path: "story.txt", Content: "Once upon a time.\n\na wolf appeared."}

	collect := func() map[string]string {
		vector, err := embedder.Embed("Once upon a time.")
		if err != nil {
			t.Fatal(err)
		}
		matches, err := memory.Query(vector, 10, true)
		if err != nil {
			t.Fatal(err)
		}
		byID := make(map[string]string, len(matches))
		for _, m := range matches {
			byID[m.ID] = m.Metadata[domain.MetadataTextKey]
		}
		return byID
	}

	if _, err := uc.Ingest(doc, nil); err != nil {
		t.Fatal(err)
	}
	first := collect()

	if _, err := uc.Ingest(doc, nil); err != nil {
		t.Fatal(err)
	}
	second := collect()

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 records after each run, got %d then %d", len(first), len(second))
	}
	for id, text := range first {
		if second[id] != text {
			t.Errorf("id %q: text changed between runs: %q vs %q", id, text, second[id])
		}
	}
}

func TestIngestEmbedFailureAbortsRun(t *testing.T) {
	embedder := &failingEmbedder{failAt: 3}
	st := &recordingStore{}
	uc := NewIngestUseCase(chunker.NewParagraphChunker(), embedder, st)

	doc := domain.Document{Path: "five.txt", Content: "c0\n\nc1\n\nc2\n\nc3\n\nc4"}
	_, err := uc.Ingest(doc, nil)

	var provErr *domain.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}

	if len(st.upserts) != 2 {
		t.Fatalf("expected chunks 0 and 1 upserted, got %d records", len(st.upserts))
	}
	if st.upserts[0].ID != "0" || st.upserts[1].ID != "1" {
		t.Errorf("unexpected upserted ids: %q, %q", st.upserts[0].ID, st.upserts[1].ID)
	}
	// The third embed call failed; chunks 3 and 4 were never attempted.
	if embedder.calls != 3 {
		t.Errorf("expected 3 embed calls, got %d", embedder.calls)
	}
}

func TestIngestStoreFailurePropagates(t *testing.T) {
	st := &failingStore{failAt: 1}
	uc := NewIngestUseCase(chunker.NewParagraphChunker(), embedding.NewMockEmbedder(8), st)

	doc := domain.Document{Path: "story.txt", Content: "Once upon a time."}
	_, err := uc.Ingest(doc, nil)

	var provErr *domain.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provErr.Op != "upsert" {
		t.Errorf("expected op 'upsert', got %q", provErr.Op)
	}
}

func TestIngestProgressCallback(t *testing.T) {
	uc := NewIngestUseCase(chunker.NewParagraphChunker(), embedding.NewMockEmbedder(8), &recordingStore{})

	var calls [][2]int
	doc := domain.Document{Path: "story.txt", Content: "Once upon a time.\n\na wolf appeared."}
	_, err := uc.Ingest(doc, func(done, total int) {
		calls = append(calls, [2]int{done, total})
	})
	if err != nil {
		t.Fatal(err)
	}

	want := [][2]int{{0, 2}, {1, 2}, {2, 2}}
	if len(calls) != len(want) {
		t.Fatalf("expected %d progress calls, got %d", len(want), len(calls))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("progress call %d: expected %v, got %v", i, want[i], calls[i])
		}
	}
}

func TestIngestEmptyDocument(t *testing.T) {
	st := &recordingStore{}
	uc := NewIngestUseCase(chunker.NewParagraphChunker(), embedding.NewMockEmbedder(4), st)

	result, err := uc.Ingest(domain.Document{Path: "empty.txt", Content: ""}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if result.ChunksUpserted != 1 {
		t.Errorf("expected 1 chunk from empty document, got %d", result.ChunksUpserted)
	}
	if len(st.upserts) != 1 {
		t.Fatalf("expected 1 record, got %d", len(st.upserts))
	}
	if st.upserts[0].ID != "0" {
		t.Errorf("expected id \"0\", got %q", st.upserts[0].ID)
	}
	if st.upserts[0].Metadata[domain.MetadataTextKey] != "" {
		t.Errorf("expected empty text metadata, got %q", st.upserts[0].Metadata[domain.MetadataTextKey])
	}
}
