// Package app wires the application components together.
package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/finsightapp/finsight/internal/alphavantage"
	"github.com/finsightapp/finsight/internal/common"
	"github.com/finsightapp/finsight/internal/handlers"
	"github.com/finsightapp/finsight/internal/interfaces"
	"github.com/finsightapp/finsight/internal/services/analysis"
	"github.com/finsightapp/finsight/internal/services/llm"
	"github.com/finsightapp/finsight/internal/services/market"
	"github.com/finsightapp/finsight/internal/services/watchlist"
	"github.com/finsightapp/finsight/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	StorageManager interfaces.StorageManager

	// Market data
	MarketClient     interfaces.MarketDataClient
	MarketAggregator interfaces.MarketDataAggregator

	// LLM service
	LLMService interfaces.LLMService

	// Analysis pipeline
	AnalysisStore *analysis.Store
	Orchestrator  *analysis.Orchestrator

	// Watchlist
	WatchlistManager *watchlist.Manager

	// HTTP handlers
	AnalysisHandler  *handlers.AnalysisHandler
	WatchlistHandler *handlers.WatchlistHandler
	ProfileHandler   *handlers.ProfileHandler
	StatusHandler    *handlers.StatusHandler
}

// New creates and wires the application.
func New(ctx context.Context, cfg *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	// Storage
	storageManager, err := badger.NewManager(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.StorageManager = storageManager

	// Market data
	clientOpts := []alphavantage.ClientOption{
		alphavantage.WithLogger(logger),
	}
	if cfg.MarketData.BaseURL != "" {
		clientOpts = append(clientOpts, alphavantage.WithBaseURL(cfg.MarketData.BaseURL))
	}
	if cfg.MarketData.RateLimit > 0 {
		clientOpts = append(clientOpts, alphavantage.WithRateLimit(cfg.MarketData.RateLimit))
	}
	a.MarketClient = alphavantage.NewClient(cfg.MarketData.APIKey, clientOpts...)
	a.MarketAggregator = market.NewAggregator(a.MarketClient, logger)

	// LLM
	llmService, err := llm.NewLLMService(&cfg.LLM, logger)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize LLM service: %w", err)
	}
	a.LLMService = llmService

	// Analysis pipeline
	a.AnalysisStore = analysis.NewStore(storageManager.AnalysisStorage(), logger)
	a.Orchestrator = analysis.NewOrchestrator(
		storageManager.ProfileStorage(),
		a.AnalysisStore,
		a.MarketAggregator,
		a.LLMService,
		logger,
	)

	// Watchlist
	a.WatchlistManager = watchlist.NewManager(storageManager.ProfileStorage(), a.LLMService, logger)

	// Handlers
	a.AnalysisHandler = handlers.NewAnalysisHandler(a.Orchestrator, logger)
	a.WatchlistHandler = handlers.NewWatchlistHandler(a.WatchlistManager, logger)
	a.ProfileHandler = handlers.NewProfileHandler(storageManager.ProfileStorage(), logger)
	a.StatusHandler = handlers.NewStatusHandler(a.LLMService, logger)

	logger.Info().
		Str("llm_provider", a.LLMService.Provider()).
		Str("badger_path", cfg.Storage.Badger.Path).
		Msg("Application initialized")

	return a, nil
}

// Close releases all application resources.
func (a *App) Close() error {
	var firstErr error

	if a.LLMService != nil {
		if err := a.LLMService.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
