package embedding

// MockEmbedder produces deterministic pseudo-embeddings from the text
// bytes. It exists for offline runs and tests; the vectors carry no
// semantic meaning.
type MockEmbedder struct {
	dimension int
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	return &MockEmbedder{dimension: dimension}
}

func (e *MockEmbedder) Embed(text string) ([]float32, error) {
	vector := make([]float32, e.dimension)
	for j, r := range text {
		if j < e.dimension {
			vector[j] = float32(r) / 1000.0
		}
	}
	return vector, nil
}

func (e *MockEmbedder) Dimension() int {
	return e.dimension
}

func (e *MockEmbedder) ModelName() string {
	return "mock"
}
