package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(mm, dd int) time.Time {
	return time.Date(2025, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
}

func TestLatestPointIgnoresOrder(t *testing.T) {
	points := []PricePoint{
		{Date: day(8, 27), Close: 100},
		{Date: day(8, 29), Close: 102},
		{Date: day(8, 28), Close: 101},
	}
	latest, ok := LatestPoint(points)
	require.True(t, ok)
	assert.Equal(t, day(8, 29), latest.Date)
	assert.Equal(t, 102.0, latest.Close)

	_, ok = LatestPoint(nil)
	assert.False(t, ok)
}

func TestSortDescending(t *testing.T) {
	points := []PricePoint{
		{Date: day(8, 27)},
		{Date: day(8, 29)},
		{Date: day(8, 28)},
	}
	SortDescending(points)
	assert.Equal(t, day(8, 29), points[0].Date)
	assert.Equal(t, day(8, 27), points[2].Date)
}

func TestFactsSummaryEquity(t *testing.T) {
	s := &MarketSnapshot{
		Subject: NewSubject("AAPL", AssetKindEquity),
		Overview: OverviewFacts{
			Name:      "Apple Inc",
			Sector:    "TECHNOLOGY",
			MarketCap: "3400000000000",
		},
		LatestClose:   "231.44",
		IntradayPrice: "232.10",
	}

	summary := s.FactsSummary()
	assert.Equal(t,
		"Company Name: Apple Inc. Sector: TECHNOLOGY. Market Cap: 3400000000000. Latest Daily Close Price: 231.44. Latest Intraday Price: 232.10.",
		summary)
}

func TestFactsSummaryFund(t *testing.T) {
	s := &MarketSnapshot{
		Subject: NewSubject("VOO", AssetKindFund),
		Overview: OverviewFacts{
			Name:         "Vanguard S&P 500 ETF",
			ExpenseRatio: "0.0003",
		},
		LatestClose: "512.33",
	}

	summary := s.FactsSummary()
	assert.Contains(t, summary, "ETF Name: Vanguard S&P 500 ETF.")
	assert.Contains(t, summary, "Expense Ratio: 0.0003.")
	assert.Contains(t, summary, "Latest Daily Close Price: 512.33.")
	assert.NotContains(t, summary, "Sector")
}

func TestFactsSummaryDeterministic(t *testing.T) {
	s := &MarketSnapshot{
		Subject:     NewSubject("AAPL", AssetKindEquity),
		Overview:    OverviewFacts{Name: "Apple Inc"},
		LatestClose: "231.44",
	}
	assert.Equal(t, s.FactsSummary(), s.FactsSummary())
}

func TestFactsSummaryNoData(t *testing.T) {
	s := &MarketSnapshot{Subject: NewSubject("AAPL", AssetKindEquity)}
	assert.Equal(t, "No data available.", s.FactsSummary())
}

func TestFactsSummaryMissingClose(t *testing.T) {
	s := &MarketSnapshot{
		Subject:  NewSubject("AAPL", AssetKindEquity),
		Overview: OverviewFacts{Name: "Apple Inc"},
	}
	assert.Contains(t, s.FactsSummary(), "Latest Daily Close Price: N/A.")
}

func TestGenerationErrorTaxonomy(t *testing.T) {
	rateLimited := &GenerationError{Status: 429, Message: "slow down"}
	assert.True(t, IsRetryLater(rateLimited))

	hardFailure := &GenerationError{Status: 500, Message: "boom"}
	assert.False(t, IsRetryLater(hardFailure))
}
