package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"docqa/internal/domain"
)

// Config holds all configuration for the docqa tool.
type Config struct {
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Completion CompletionConfig `yaml:"completion"`
	Store      StoreConfig      `yaml:"store"`
	Ask        AskConfig        `yaml:"ask"`
}

// EmbeddingConfig holds embedding client configuration.
type EmbeddingConfig struct {
	Provider    string `yaml:"provider"`    // "openai", "mock"
	Model       string `yaml:"model"`       // e.g., "text-embedding-3-small"
	BaseURL     string `yaml:"base_url"`    // override for OpenAI-compatible endpoints
	APIKeyEnv   string `yaml:"api_key_env"` // environment variable holding the API key
	Dimension   int    `yaml:"dimension"`   // vector size, used by the mock provider
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// CompletionConfig holds chat completion client configuration.
type CompletionConfig struct {
	Provider    string  `yaml:"provider"` // "openai", "deepseek", "local"
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"` // empty means the provider's default env var
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// StoreConfig holds vector store configuration.
type StoreConfig struct {
	Provider    string `yaml:"provider"` // "qdrant", "memory"
	URL         string `yaml:"url"`
	APIKeyEnv   string `yaml:"api_key_env"` // empty value in the env means no auth header
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// AskConfig holds answering defaults.
type AskConfig struct {
	TopK int `yaml:"top_k"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Embedding: EmbeddingConfig{
			Provider:    "openai",
			Model:       "text-embedding-3-small",
			APIKeyEnv:   "OPENAI_API_KEY",
			Dimension:   1536,
			TimeoutSecs: 60,
		},
		Completion: CompletionConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			Temperature: 0.2,
			MaxTokens:   2000,
			TimeoutSecs: 120,
		},
		Store: StoreConfig{
			Provider:    "qdrant",
			URL:         "http://localhost:6333",
			APIKeyEnv:   "QDRANT_API_KEY",
			TimeoutSecs: 15,
		},
		Ask: AskConfig{
			TopK: 5,
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for docqa.yaml).
func LoadFromDir(dir string) (*Config, error) {
	// Try docqa.yaml in the directory
	path := filepath.Join(dir, "docqa.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Try .docqa/config.yaml
	path = filepath.Join(dir, ".docqa", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Return defaults
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ValidateForIngest checks everything the ingest command needs. It runs
// before any client is constructed, so failures never reach the network.
func (c *Config) ValidateForIngest() error {
	if err := c.validateEmbedding(); err != nil {
		return err
	}
	return c.validateStore()
}

// ValidateForAsk checks everything the ask command needs.
func (c *Config) ValidateForAsk() error {
	if err := c.validateEmbedding(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	return c.validateCompletion()
}

func (c *Config) validateEmbedding() error {
	switch c.Embedding.Provider {
	case "openai":
		if c.Embedding.Model == "" {
			return &domain.ConfigError{Field: "embedding.model", Reason: "required for the openai provider"}
		}
		if c.Embedding.APIKeyEnv == "" {
			return &domain.ConfigError{Field: "embedding.api_key_env", Reason: "required for the openai provider"}
		}
	case "mock":
		if c.Embedding.Dimension <= 0 {
			return &domain.ConfigError{Field: "embedding.dimension", Reason: "must be positive for the mock provider"}
		}
	default:
		return &domain.ConfigError{Field: "embedding.provider", Reason: "unknown provider: " + c.Embedding.Provider}
	}
	return nil
}

func (c *Config) validateStore() error {
	if c.Store.Collection == "" {
		return &domain.ConfigError{Field: "store.collection", Reason: "collection name is required"}
	}
	switch c.Store.Provider {
	case "qdrant":
		if c.Store.URL == "" {
			return &domain.ConfigError{Field: "store.url", Reason: "required for the qdrant provider"}
		}
	case "memory":
	default:
		return &domain.ConfigError{Field: "store.provider", Reason: "unknown provider: " + c.Store.Provider}
	}
	return nil
}

func (c *Config) validateCompletion() error {
	if c.Completion.Model == "" {
		return &domain.ConfigError{Field: "completion.model", Reason: "model name is required"}
	}
	return nil
}
