package port

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates the embedding for a single text. One call makes
	// one request; callers that embed many texts call it in a loop.
	Embed(text string) ([]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}
