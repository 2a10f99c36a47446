package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/finsightapp/finsight/internal/interfaces"
	"github.com/finsightapp/finsight/internal/models"
)

const (
	// DefaultBaseURL is the base URL for the Alpha Vantage API.
	DefaultBaseURL = "https://www.alphavantage.co"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	// The free tier is far more restrictive per-day; this only smooths
	// bursts from parallel sub-fetches.
	DefaultRateLimit = 5
)

// Client is an Alpha Vantage API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a new Alpha Vantage API client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get performs a GET request against /query with the given function.
func (c *Client) get(ctx context.Context, function, symbol string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &RateLimitError{RetryAfter: time.Second}
	}

	params := url.Values{}
	params.Set("function", function)
	params.Set("symbol", symbol)
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s/query?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("function", function).
			Str("symbol", symbol).
			Msg("Alpha Vantage API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{RetryAfter: time.Minute}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Function:   function,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// checkThrottle converts Alpha Vantage soft failures (HTTP 200 with a Note
// or error body) into typed errors.
func checkThrottle(function string, f throttleFields) error {
	if f.Note != "" || f.Information != "" {
		return &RateLimitError{RetryAfter: time.Minute}
	}
	if f.ErrorMessage != "" {
		return &APIError{StatusCode: http.StatusOK, Message: f.ErrorMessage, Function: function}
	}
	return nil
}

// Overview fetches descriptive fields for a subject. Funds use the
// ETF_PROFILE endpoint, equities the company OVERVIEW endpoint.
func (c *Client) Overview(ctx context.Context, subject models.Subject) (models.OverviewFacts, error) {
	if subject.Kind == models.AssetKindFund {
		var result etfProfile
		if err := c.get(ctx, "ETF_PROFILE", subject.Symbol, &result); err != nil {
			return models.OverviewFacts{}, err
		}
		if err := checkThrottle("ETF_PROFILE", result.throttleFields); err != nil {
			return models.OverviewFacts{}, err
		}
		return models.OverviewFacts{
			Name:          result.ETFName,
			InceptionDate: result.Inception,
			NetAssets:     result.NetAssets,
			ExpenseRatio:  result.ExpenseRatio,
		}, nil
	}

	var result companyOverview
	if err := c.get(ctx, "OVERVIEW", subject.Symbol, &result); err != nil {
		return models.OverviewFacts{}, err
	}
	if err := checkThrottle("OVERVIEW", result.throttleFields); err != nil {
		return models.OverviewFacts{}, err
	}
	return models.OverviewFacts{
		Name:      result.Name,
		Sector:    result.Sector,
		Industry:  result.Industry,
		MarketCap: result.MarketCapitalization,
		PERatio:   result.PERatio,
	}, nil
}

// DailySeries fetches the adjusted daily close series, newest first.
func (c *Client) DailySeries(ctx context.Context, symbol string) ([]models.PricePoint, error) {
	var result dailyResponse
	if err := c.get(ctx, "TIME_SERIES_DAILY_ADJUSTED", symbol, &result); err != nil {
		return nil, err
	}
	if err := checkThrottle("TIME_SERIES_DAILY_ADJUSTED", result.throttleFields); err != nil {
		return nil, err
	}
	return parseSeries(result.Series)
}

// MonthlySeries fetches the adjusted monthly close series, newest first.
func (c *Client) MonthlySeries(ctx context.Context, symbol string) ([]models.PricePoint, error) {
	var result monthlyResponse
	if err := c.get(ctx, "TIME_SERIES_MONTHLY_ADJUSTED", symbol, &result); err != nil {
		return nil, err
	}
	if err := checkThrottle("TIME_SERIES_MONTHLY_ADJUSTED", result.throttleFields); err != nil {
		return nil, err
	}
	return parseSeries(result.Series)
}

// IntradayQuote fetches the latest traded price.
func (c *Client) IntradayQuote(ctx context.Context, symbol string) (string, error) {
	var result quoteResponse
	if err := c.get(ctx, "GLOBAL_QUOTE", symbol, &result); err != nil {
		return "", err
	}
	if err := checkThrottle("GLOBAL_QUOTE", result.throttleFields); err != nil {
		return "", err
	}
	if result.Quote.Price == "" {
		return "", &APIError{StatusCode: http.StatusOK, Message: "empty quote", Function: "GLOBAL_QUOTE"}
	}
	return result.Quote.Price, nil
}

// parseSeries converts a date-keyed series object into PricePoints sorted
// newest first. The adjusted close is preferred over the raw close.
func parseSeries(series map[string]seriesEntry) ([]models.PricePoint, error) {
	if len(series) == 0 {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "empty time series", Function: "series"}
	}

	points := make([]models.PricePoint, 0, len(series))
	for dateStr, entry := range series {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		raw := entry.AdjustedClose
		if raw == "" {
			raw = entry.Close
		}
		close, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		points = append(points, models.PricePoint{Date: date, Close: close})
	}
	if len(points) == 0 {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "no parseable series entries", Function: "series"}
	}

	models.SortDescending(points)
	return points, nil
}

// Ensure Client implements the MarketDataClient interface.
var _ interfaces.MarketDataClient = (*Client)(nil)
