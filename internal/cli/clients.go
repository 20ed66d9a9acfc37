package cli

import (
	"time"

	"docqa/config"
	"docqa/internal/adapter/embedding"
	"docqa/internal/adapter/llm"
	"docqa/internal/adapter/store"
	"docqa/internal/domain"
	"docqa/internal/port"
)

// newEmbedder builds the configured embedding client.
func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "openai":
		return embedding.NewOpenAIEmbedder(embedding.Config{
			Model:     cfg.Embedding.Model,
			BaseURL:   cfg.Embedding.BaseURL,
			APIKeyEnv: cfg.Embedding.APIKeyEnv,
			Timeout:   time.Duration(cfg.Embedding.TimeoutSecs) * time.Second,
		})
	case "mock":
		return embedding.NewMockEmbedder(cfg.Embedding.Dimension), nil
	default:
		return nil, &domain.ConfigError{Field: "embedding.provider", Reason: "unknown provider: " + cfg.Embedding.Provider}
	}
}

// newStore builds the configured vector store client. The memory
// provider holds vectors only for the lifetime of the process; it is
// meant for offline smoke runs.
func newStore(cfg *config.Config, dimension int) (port.VectorStore, error) {
	switch cfg.Store.Provider {
	case "qdrant":
		return store.NewQdrantStore(store.QdrantConfig{
			URL:        cfg.Store.URL,
			APIKeyEnv:  cfg.Store.APIKeyEnv,
			Collection: cfg.Store.Collection,
			Timeout:    time.Duration(cfg.Store.TimeoutSecs) * time.Second,
		}), nil
	case "memory":
		return store.NewMemoryStore(dimension), nil
	default:
		return nil, &domain.ConfigError{Field: "store.provider", Reason: "unknown provider: " + cfg.Store.Provider}
	}
}

// newLLM builds the configured completion client.
func newLLM(cfg *config.Config) (port.LLM, error) {
	return llm.NewClient(llm.Config{
		Provider:    cfg.Completion.Provider,
		Model:       cfg.Completion.Model,
		BaseURL:     cfg.Completion.BaseURL,
		APIKeyEnv:   cfg.Completion.APIKeyEnv,
		Temperature: cfg.Completion.Temperature,
		MaxTokens:   cfg.Completion.MaxTokens,
		Timeout:     time.Duration(cfg.Completion.TimeoutSecs) * time.Second,
	})
}
