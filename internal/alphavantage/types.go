// Package alphavantage provides a client for the Alpha Vantage market data
// API. This package centralizes all market-data interactions for the
// application.
package alphavantage

import (
	"fmt"
	"time"
)

// APIError represents an error response from the Alpha Vantage API.
type APIError struct {
	StatusCode int
	Message    string
	Function   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Alpha Vantage API error: %s (status: %d, function: %s)", e.Message, e.StatusCode, e.Function)
}

// RateLimitError represents a provider throttle. Alpha Vantage signals this
// both with HTTP 429 and with a 200 response carrying a "Note" body.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("Alpha Vantage rate limit exceeded, retry after %v", e.RetryAfter)
}
