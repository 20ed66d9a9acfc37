package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"docqa/internal/domain"
)

// QdrantStore is a minimal REST client to one Qdrant collection. The
// collection is created and sized out of band; this client only writes
// and searches points, and a missing collection surfaces as the
// server's own error status.
type QdrantStore struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

// QdrantConfig configures the Qdrant client. An empty value in the key
// environment variable means requests go out without an api-key header
// (a local, auth-less Qdrant).
type QdrantConfig struct {
	URL        string
	APIKeyEnv  string
	Collection string
	Timeout    time.Duration
}

func NewQdrantStore(cfg QdrantConfig) *QdrantStore {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &QdrantStore{
		url:        cfg.URL,
		apiKey:     os.Getenv(cfg.APIKeyEnv),
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// Upsert inserts or replaces points by id. Qdrant's points endpoint is
// idempotent per id, which is what makes re-ingestion safe.
func (s *QdrantStore) Upsert(records []domain.Record) error {
	points := make([]map[string]any, len(records))
	for i, rec := range records {
		payload := rec.Metadata
		if payload == nil {
			payload = map[string]string{}
		}
		points[i] = map[string]any{
			"id":      rec.ID,
			"vector":  rec.Values,
			"payload": payload,
		}
	}
	body := map[string]any{"points": points}

	url := fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection)
	if err := s.putJSON(url, body); err != nil {
		return &domain.ProviderError{Provider: "qdrant", Op: "upsert", Err: err}
	}
	return nil
}

// Query runs a similarity search and returns matches in the order the
// collection ranked them, best first.
func (s *QdrantStore) Query(vector []float32, topK int, includeMetadata bool) ([]domain.QueryMatch, error) {
	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": includeMetadata,
	}

	var resp struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection)
	if err := s.postJSON(url, req, &resp); err != nil {
		return nil, &domain.ProviderError{Provider: "qdrant", Op: "query", Err: err}
	}

	matches := make([]domain.QueryMatch, 0, len(resp.Result))
	for _, r := range resp.Result {
		match := domain.QueryMatch{
			ID:    pointIDString(r.ID),
			Score: r.Score,
		}
		if includeMetadata {
			match.Metadata = stringPayload(r.Payload)
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// pointIDString normalizes a point id to its string form; the server
// echoes numeric ids back as JSON numbers.
func pointIDString(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func stringPayload(payload map[string]any) map[string]string {
	if payload == nil {
		return nil
	}
	out := make(map[string]string, len(payload))
	for k, v := range payload {
		if str, ok := v.(string); ok {
			out[k] = str
		}
	}
	return out
}

func (s *QdrantStore) putJSON(url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *QdrantStore) postJSON(url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
