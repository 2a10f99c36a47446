package models

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced to callers. Every error that crosses the service
// boundary wraps exactly one of these so handlers never see an untyped
// failure.
var (
	// ErrProfileUnavailable means no profile is loaded for the owner; the
	// caller must not attempt hashing or fetching.
	ErrProfileUnavailable = errors.New("profile unavailable")

	// ErrMarketDataUnavailable means every market sub-fetch failed. Partial
	// failures degrade instead of returning this.
	ErrMarketDataUnavailable = errors.New("market data unavailable")

	// ErrGenerationFailed means the generative service call itself failed.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrRateLimited is the 429 case, kept distinct so the caller can show
	// a "try again later" message and back off the refresh action.
	ErrRateLimited = errors.New("rate limited")

	// ErrCacheWriteFailed is non-fatal: the generated text is still
	// returned even though persisting it failed.
	ErrCacheWriteFailed = errors.New("cache write failed")

	// ErrInvalidSymbol means watchlist resolution rejected the input; no
	// state was mutated.
	ErrInvalidSymbol = errors.New("invalid symbol")
)

// GenerationError wraps a generative-service failure with the upstream
// status code when one is available.
type GenerationError struct {
	Status  int
	Message string
}

func (e *GenerationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("generation failed (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("generation failed: %s", e.Message)
}

// Unwrap maps 429 to ErrRateLimited and everything else to
// ErrGenerationFailed so errors.Is works against the taxonomy.
func (e *GenerationError) Unwrap() error {
	if e.Status == 429 {
		return ErrRateLimited
	}
	return ErrGenerationFailed
}

// IsRetryLater reports whether err should be presented as a temporary
// rate-limit condition rather than a hard failure.
func IsRetryLater(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
