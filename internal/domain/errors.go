package domain

import "fmt"

// ConfigError reports a missing or invalid required input. It is always
// raised before any network call is made.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// ProviderError reports a failure from one of the external services: a
// transport error, a non-success HTTP status, an API error body, or a
// response the client could not make sense of. There is no retry layer;
// the first ProviderError aborts the run.
type ProviderError struct {
	Provider string // "openai", "qdrant", ...
	Op       string // "embed", "upsert", "query", "complete"
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
