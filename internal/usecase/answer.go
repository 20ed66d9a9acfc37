package usecase

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"docqa/internal/domain"
	"docqa/internal/port"
)

//go:embed templates/*.txt
var promptTemplates embed.FS

// DefaultTopK is the retrieval width used when none is configured.
const DefaultTopK = 5

// AnswerUseCase handles question answering over an ingested collection.
type AnswerUseCase struct {
	embedder port.Embedder
	store    port.VectorStore
	llm      port.LLM
	topK     int
}

// NewAnswerUseCase creates a new answer use case.
func NewAnswerUseCase(embedder port.Embedder, store port.VectorStore, llm port.LLM, topK int) *AnswerUseCase {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &AnswerUseCase{
		embedder: embedder,
		store:    store,
		llm:      llm,
		topK:     topK,
	}
}

// AnswerResult contains the generated answer and the matches behind it.
type AnswerResult struct {
	Answer  string
	Matches []domain.QueryMatch
}

// Answer embeds the question, retrieves the closest chunks, and asks
// the language model to answer from their texts. The context keeps the
// store's similarity order, not document order. Zero matches still
// produce a completion call with an empty context block.
func (u *AnswerUseCase) Answer(question string) (*AnswerResult, error) {
	vector, err := u.embedder.Embed(question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	matches, err := u.store.Query(vector, u.topK, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	texts := make([]string, 0, len(matches))
	for _, match := range matches {
		texts = append(texts, match.Metadata[domain.MetadataTextKey])
	}

	systemPrompt, err := renderAnswerPrompt(strings.Join(texts, "\n"))
	if err != nil {
		return nil, err
	}

	answer, err := u.llm.GenerateWithSystem(systemPrompt, question)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	return &AnswerResult{Answer: answer, Matches: matches}, nil
}

func renderAnswerPrompt(context string) (string, error) {
	tmplContent, err := promptTemplates.ReadFile("templates/answer_system.txt")
	if err != nil {
		return "", fmt.Errorf("template not found: %w", err)
	}

	tmpl, err := template.New("answer_system").Parse(string(tmplContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Context string }{Context: context}); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}
