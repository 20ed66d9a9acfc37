package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"docqa/internal/domain"
)

// OpenAIEmbedder calls an OpenAI-compatible /embeddings endpoint, one
// text per request. There is no batching, caching, or retrying: every
// call goes to the network and the first failure is returned as a
// ProviderError.
type OpenAIEmbedder struct {
	apiKey    string
	model     string
	baseURL   string
	dimension int
	client    *http.Client
}

// Config configures the OpenAI-compatible embeddings client.
type Config struct {
	Model     string
	BaseURL   string
	APIKeyEnv string
	Timeout   time.Duration
}

type embeddingRequest struct {
	Input          string `json:"input"`
	Model          string `json:"model"`
	EncodingFormat string `json:"encoding_format"`
}

type embeddingResponse struct {
	Data  []embeddingData `json:"data"`
	Error *apiError       `json:"error,omitempty"`
}

type embeddingData struct {
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewOpenAIEmbedder creates an embeddings client. The API key is read
// from the environment variable named in the config; a missing key is a
// configuration error, caught before any request is made.
func NewOpenAIEmbedder(cfg Config) (*OpenAIEmbedder, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, &domain.ConfigError{
			Field:  "embedding.api_key_env",
			Reason: fmt.Sprintf("API key not found in environment variable %s", cfg.APIKeyEnv),
		}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	dimension := 1536
	switch cfg.Model {
	case "text-embedding-3-small":
		dimension = 1536
	case "text-embedding-3-large":
		dimension = 3072
	case "text-embedding-ada-002":
		dimension = 1536
	}

	return &OpenAIEmbedder{
		apiKey:    apiKey,
		model:     cfg.Model,
		baseURL:   cfg.BaseURL,
		dimension: dimension,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

// Embed generates the embedding for a single text.
func (e *OpenAIEmbedder) Embed(text string) ([]float32, error) {
	reqBody := embeddingRequest{
		Input:          text,
		Model:          e.model,
		EncodingFormat: "float",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, embedError(fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequest(http.MethodPost, e.baseURL+"/embeddings", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, embedError(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, embedError(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, embedError(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, embedError(fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body)))
	}

	var embResp embeddingResponse
	if err := json.Unmarshal(body, &embResp); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200]
		}
		return nil, embedError(fmt.Errorf("failed to parse response (body: %s): %w", bodyPreview, err))
	}

	if embResp.Error != nil {
		return nil, embedError(fmt.Errorf("API error: %s", embResp.Error.Message))
	}

	if len(embResp.Data) == 0 || len(embResp.Data[0].Embedding) == 0 {
		return nil, embedError(fmt.Errorf("response contained no embedding"))
	}

	return embResp.Data[0].Embedding, nil
}

// Dimension returns the embedding vector dimension.
func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

// ModelName returns the name of the embedding model.
func (e *OpenAIEmbedder) ModelName() string {
	return e.model
}

func embedError(err error) error {
	return &domain.ProviderError{Provider: "openai", Op: "embed", Err: err}
}
