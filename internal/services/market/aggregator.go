// Package market aggregates the per-subject market-data sub-fetches into a
// single snapshot.
package market

import (
	"context"
	"strconv"
	"sync"

	"github.com/ternarybob/arbor"
	"golang.org/x/sync/errgroup"

	"github.com/finsightapp/finsight/internal/interfaces"
	"github.com/finsightapp/finsight/internal/models"
)

// Aggregator fans out the sub-fetches for one subject in parallel and
// collects whatever succeeded. A failed sub-fetch degrades the snapshot;
// only total failure is an error.
type Aggregator struct {
	client interfaces.MarketDataClient
	logger arbor.ILogger
}

// NewAggregator creates a market data aggregator.
func NewAggregator(client interfaces.MarketDataClient, logger arbor.ILogger) *Aggregator {
	return &Aggregator{
		client: client,
		logger: logger,
	}
}

// Fetch builds the snapshot for a subject. Equities get the intraday quote
// on top of the overview and series fetches; funds do not trade intraday in
// a way the analysis uses, so the quote fetch is skipped for them.
func (a *Aggregator) Fetch(ctx context.Context, subject models.Subject) (*models.MarketSnapshot, error) {
	snapshot := &models.MarketSnapshot{Subject: subject}

	var mu sync.Mutex
	failed := func(name string, err error) {
		a.logger.Warn().
			Err(err).
			Str("symbol", subject.Symbol).
			Str("fetch", name).
			Msg("Market data sub-fetch failed")
		mu.Lock()
		snapshot.Failed = append(snapshot.Failed, name)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		overview, err := a.client.Overview(gctx, subject)
		if err != nil {
			failed("overview", err)
			return nil
		}
		mu.Lock()
		snapshot.Overview = overview
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		daily, err := a.client.DailySeries(gctx, subject.Symbol)
		if err != nil {
			failed("daily", err)
			return nil
		}
		mu.Lock()
		snapshot.Daily = daily
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		monthly, err := a.client.MonthlySeries(gctx, subject.Symbol)
		if err != nil {
			failed("monthly", err)
			return nil
		}
		mu.Lock()
		snapshot.Monthly = monthly
		mu.Unlock()
		return nil
	})

	if subject.Kind == models.AssetKindEquity {
		g.Go(func() error {
			price, err := a.client.IntradayQuote(gctx, subject.Symbol)
			if err != nil {
				failed("quote", err)
				return nil
			}
			mu.Lock()
			snapshot.IntradayPrice = price
			mu.Unlock()
			return nil
		})
	}

	// Sub-fetch errors are swallowed above, so Wait only fails on context
	// cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The latest close comes from the daily series regardless of the series'
	// input order, falling back to the monthly series.
	if point, ok := models.LatestPoint(snapshot.Daily); ok {
		snapshot.LatestClose = strconv.FormatFloat(point.Close, 'f', 2, 64)
	} else if point, ok := models.LatestPoint(snapshot.Monthly); ok {
		snapshot.LatestClose = strconv.FormatFloat(point.Close, 'f', 2, 64)
	}

	if !snapshot.HasAnyData() {
		a.logger.Error().
			Str("symbol", subject.Symbol).
			Msg("All market data sub-fetches failed")
		return nil, models.ErrMarketDataUnavailable
	}

	return snapshot, nil
}

var _ interfaces.MarketDataAggregator = (*Aggregator)(nil)
