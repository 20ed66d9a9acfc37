package domain

// Document is the raw input to the ingestion pipeline.
type Document struct {
	Path    string
	Content string
}

// Chunk is one paragraph of a document. Index is the zero-based position
// of the chunk in the original document and doubles as the record id in
// the vector store (as a decimal string).
type Chunk struct {
	Index int
	Text  string
}

// Record is a vector plus metadata, keyed by ID in the vector store.
// Upserting a record with an existing ID replaces it.
type Record struct {
	ID       string
	Values   []float32
	Metadata map[string]string
}

// QueryMatch is a single similarity search result. Score is the
// collection's similarity measure; higher is better.
type QueryMatch struct {
	ID       string
	Score    float64
	Metadata map[string]string
}

// MetadataTextKey is the metadata field that carries the verbatim chunk
// text through the vector store and back.
const MetadataTextKey = "text"
