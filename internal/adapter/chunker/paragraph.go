package chunker

import (
	"strings"

	"docqa/internal/domain"
)

const delimiter = "\n\n"

// ParagraphChunker splits a document into paragraphs on blank lines.
// The split keeps every segment untrimmed, including empty ones, so
// joining the chunk texts back with the delimiter reproduces the
// document byte for byte. An empty document yields one empty chunk.
type ParagraphChunker struct{}

func NewParagraphChunker() *ParagraphChunker {
	return &ParagraphChunker{}
}

func (c *ParagraphChunker) Chunk(doc domain.Document) ([]domain.Chunk, error) {
	parts := strings.Split(doc.Content, delimiter)

	chunks := make([]domain.Chunk, len(parts))
	for i, text := range parts {
		chunks[i] = domain.Chunk{
			Index: i,
			Text:  text,
		}
	}

	return chunks, nil
}
