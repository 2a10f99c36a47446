package alphavantage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsightapp/finsight/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key",
		WithBaseURL(server.URL),
		WithRateLimit(1000),
	)
}

func TestOverviewEquity(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "OVERVIEW", r.URL.Query().Get("function"))
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		w.Write([]byte(`{
			"Name": "Apple Inc",
			"Sector": "TECHNOLOGY",
			"Industry": "ELECTRONIC COMPUTERS",
			"MarketCapitalization": "3400000000000",
			"PERatio": "34.5"
		}`))
	})

	facts, err := client.Overview(context.Background(), models.NewSubject("AAPL", models.AssetKindEquity))
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc", facts.Name)
	assert.Equal(t, "TECHNOLOGY", facts.Sector)
	assert.Equal(t, "34.5", facts.PERatio)
	assert.Empty(t, facts.ExpenseRatio)
}

func TestOverviewFund(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ETF_PROFILE", r.URL.Query().Get("function"))
		w.Write([]byte(`{
			"ETFName": "Vanguard S&P 500 ETF",
			"InceptionDate": "2010-09-07",
			"NetAssets": "1300000000000",
			"ExpenseRatio": "0.0003"
		}`))
	})

	facts, err := client.Overview(context.Background(), models.NewSubject("VOO", models.AssetKindFund))
	require.NoError(t, err)
	assert.Equal(t, "Vanguard S&P 500 ETF", facts.Name)
	assert.Equal(t, "0.0003", facts.ExpenseRatio)
	assert.Empty(t, facts.Sector)
}

func TestDailySeriesSortedNewestFirst(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TIME_SERIES_DAILY_ADJUSTED", r.URL.Query().Get("function"))
		w.Write([]byte(`{
			"Time Series (Daily)": {
				"2025-08-27": {"4. close": "100.00", "5. adjusted close": "99.50"},
				"2025-08-29": {"4. close": "102.00", "5. adjusted close": "101.50"},
				"2025-08-28": {"4. close": "101.00", "5. adjusted close": "100.50"}
			}
		}`))
	})

	points, err := client.DailySeries(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC), points[0].Date)
	assert.Equal(t, 101.50, points[0].Close)
	assert.Equal(t, time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC), points[2].Date)
}

func TestDailySeriesFallsBackToRawClose(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"Time Series (Daily)": {
				"2025-08-29": {"4. close": "102.00"}
			}
		}`))
	})

	points, err := client.DailySeries(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 102.00, points[0].Close)
}

func TestMonthlySeries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TIME_SERIES_MONTHLY_ADJUSTED", r.URL.Query().Get("function"))
		w.Write([]byte(`{
			"Monthly Adjusted Time Series": {
				"2025-07-31": {"4. close": "95.00", "5. adjusted close": "94.00"},
				"2025-08-29": {"4. close": "102.00", "5. adjusted close": "101.50"}
			}
		}`))
	})

	points, err := client.MonthlySeries(context.Background(), "VOO")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 101.50, points[0].Close)
}

func TestIntradayQuote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
		w.Write([]byte(`{"Global Quote": {"05. price": "231.4400"}}`))
	})

	price, err := client.IntradayQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "231.4400", price)
}

func TestThrottleNoteReturnsRateLimitError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`))
	})

	_, err := client.DailySeries(context.Background(), "AAPL")
	require.Error(t, err)
	var rateLimitErr *RateLimitError
	assert.ErrorAs(t, err, &rateLimitErr)
}

func TestThrottledOverviewReturnsRateLimitError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`))
	})

	_, err := client.Overview(context.Background(), models.NewSubject("AAPL", models.AssetKindEquity))
	require.Error(t, err)
	var rateLimitErr *RateLimitError
	assert.ErrorAs(t, err, &rateLimitErr)

	_, err = client.Overview(context.Background(), models.NewSubject("VOO", models.AssetKindFund))
	require.Error(t, err)
	assert.ErrorAs(t, err, &rateLimitErr)
}

func TestHTTP429ReturnsRateLimitError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.IntradayQuote(context.Background(), "AAPL")
	require.Error(t, err)
	var rateLimitErr *RateLimitError
	assert.ErrorAs(t, err, &rateLimitErr)
}

func TestErrorMessageReturnsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Error Message": "Invalid API call."}`))
	})

	_, err := client.DailySeries(context.Background(), "NOTREAL")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid API call.", apiErr.Message)
}

func TestServerErrorReturnsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream broke"))
	})

	_, err := client.IntradayQuote(context.Background(), "AAPL")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestEmptySeriesReturnsError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := client.DailySeries(context.Background(), "AAPL")
	assert.Error(t, err)
}
