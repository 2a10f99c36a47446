package interfaces

import (
	"context"
)

// LLMService defines the generative-text capability consumed by the analysis
// pipeline and by watchlist symbol resolution. Implementations wrap a cloud
// provider (OpenAI, Claude, Gemini).
//
// A rate-limited upstream response must surface as an error matching
// models.ErrRateLimited so callers can distinguish "try later" from a hard
// failure.
type LLMService interface {
	// Complete sends a single prompt and returns the text completion.
	Complete(ctx context.Context, prompt string) (string, error)

	// HealthCheck verifies the provider is reachable and authenticated.
	HealthCheck(ctx context.Context) error

	// Provider returns the configured provider name ("openai", "claude",
	// "gemini").
	Provider() string

	// Close releases client resources.
	Close() error
}
