package llm

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

// Client calls an OpenAI-compatible /chat/completions endpoint. Known
// providers resolve to preset base URLs and key environment variables;
// a custom endpoint can be used by setting BaseURL directly.
type Client struct {
	provider    string
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// Config configures the chat completions client.
type Config struct {
	Provider    string
	Model       string
	BaseURL     string
	APIKeyEnv   string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// ChatMessage is a single message in the chat format.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

var providers = map[string]struct {
	baseURL   string
	keyEnvVar string
}{
	"openai":   {"https://api.openai.com/v1", "OPENAI_API_KEY"},
	"deepseek": {"https://api.deepseek.com/v1", "DEEPSEEK_API_KEY"},
	"local":    {"http://localhost:11434/v1", ""},
}

// NewClient creates a completions client for the configured provider.
// The API key is read from the environment variable named in the config,
// falling back to the provider's conventional variable; the "local"
// provider is keyless. A missing key is a configuration error, caught
// before any request is made.
func NewClient(cfg Config) (*Client, error) {
	preset, known := providers[cfg.Provider]
	if !known && cfg.BaseURL == "" {
		return nil, &domain.ConfigError{
			Field:  "completion.provider",
			Reason: fmt.Sprintf("unknown provider %q (set completion.base_url for custom endpoints)", cfg.Provider),
		}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = preset.baseURL
	}

	keyEnv := cfg.APIKeyEnv
	if keyEnv == "" {
		keyEnv = preset.keyEnvVar
	}
	apiKey := ""
	if keyEnv != "" {
		apiKey = os.Getenv(keyEnv)
		if apiKey == "" {
			return nil, &domain.ConfigError{
				Field:  "completion.api_key_env",
				Reason: fmt.Sprintf("API key not found in environment variable %s", keyEnv),
			}
		}
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		provider:    cfg.Provider,
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		client:      &http.Client{Timeout: timeout},
	}, nil
}

// GenerateWithSystem sends one chat completion request with a system
// prompt and a user message and returns the first choice's content.
func (c *Client) GenerateWithSystem(systemPrompt, userPrompt string) (string, error) {
	messages := []ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}

	reqBody := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", c.completeError(fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", c.completeError(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", c.completeError(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.completeError(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.completeError(fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body)))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200]
		}
		return "", c.completeError(fmt.Errorf("failed to parse response (body: %s): %w", bodyPreview, err))
	}

	if chatResp.Error != nil {
		return "", c.completeError(fmt.Errorf("API error: %s", chatResp.Error.Message))
	}

	if len(chatResp.Choices) == 0 {
		return "", c.completeError(fmt.Errorf("response contained no choices"))
	}

	return chatResp.Choices[0].Message.Content, nil
}

// ModelName returns the name of the completion model.
func (c *Client) ModelName() string {
	return c.model
}

func (c *Client) completeError(err error) error {
	return &domain.ProviderError{Provider: c.provider, Op: "complete", Err: err}
}
