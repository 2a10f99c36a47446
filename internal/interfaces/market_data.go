package interfaces

import (
	"context"

	"github.com/finsightapp/finsight/internal/models"
)

// MarketDataClient is the provider-facing contract for market facts. The
// concrete implementation lives in internal/alphavantage; the aggregator
// depends only on this interface so tests can substitute fakes.
type MarketDataClient interface {
	// Overview fetches descriptive fields for a subject. The fund variant
	// hits the fund-profile endpoint, the equity variant the company
	// overview endpoint.
	Overview(ctx context.Context, subject models.Subject) (models.OverviewFacts, error)

	// DailySeries fetches the adjusted daily close series, newest first.
	DailySeries(ctx context.Context, symbol string) ([]models.PricePoint, error)

	// MonthlySeries fetches the adjusted monthly close series, newest first.
	MonthlySeries(ctx context.Context, symbol string) ([]models.PricePoint, error)

	// IntradayQuote fetches the latest traded price. Equities only.
	IntradayQuote(ctx context.Context, symbol string) (string, error)
}

// MarketDataAggregator combines the sub-fetches for one subject into a
// MarketSnapshot, tolerating partial failure.
type MarketDataAggregator interface {
	Fetch(ctx context.Context, subject models.Subject) (*models.MarketSnapshot, error)
}
