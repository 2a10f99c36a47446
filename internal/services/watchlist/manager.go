// Package watchlist manages the owner's saved symbols.
package watchlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/finsightapp/finsight/internal/common"
	"github.com/finsightapp/finsight/internal/interfaces"
	"github.com/finsightapp/finsight/internal/models"
	"github.com/finsightapp/finsight/internal/services/prompt"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// Manager validates and persists watchlist additions. Free-text input is
// resolved to a ticker with one LLM call before anything is written; an
// unresolvable name mutates no state.
type Manager struct {
	profiles interfaces.ProfileStorage
	llm      interfaces.LLMService
	logger   arbor.ILogger
}

// NewManager creates a watchlist manager.
func NewManager(profiles interfaces.ProfileStorage, llm interfaces.LLMService, logger arbor.ILogger) *Manager {
	return &Manager{
		profiles: profiles,
		llm:      llm,
		logger:   logger,
	}
}

// AddSymbol resolves rawInput to a ticker and appends it to the owner's
// watchlist. Duplicates are rejected case-insensitively against both the
// built-in default lists and the already-saved entries, so adding "voo"
// fails with ErrInvalidSymbol even though VOO is only in the defaults.
func (m *Manager) AddSymbol(ctx context.Context, ownerID, rawInput string) (models.WatchlistEntry, error) {
	name := strings.TrimSpace(rawInput)
	if name == "" {
		return models.WatchlistEntry{}, fmt.Errorf("%w: empty input", models.ErrInvalidSymbol)
	}

	symbol, err := m.resolveTicker(ctx, name)
	if err != nil {
		return models.WatchlistEntry{}, err
	}

	p, err := m.profiles.GetProfile(ctx, ownerID)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return models.WatchlistEntry{}, err
	}
	if p == nil {
		p = &models.Profile{}
	}

	if common.IsDefaultSymbol(symbol) || p.HasWatchlistSymbol(symbol) {
		return models.WatchlistEntry{}, fmt.Errorf("%w: %s is already in the list", models.ErrInvalidSymbol, symbol)
	}

	entry := models.WatchlistEntry{
		ID:          common.NewWatchlistEntryID(),
		OwnerID:     ownerID,
		Symbol:      symbol,
		DisplayName: name,
		AddedAt:     timeNow().UTC(),
	}

	if _, err := m.profiles.MergeProfile(ctx, ownerID, func(p *models.Profile) {
		p.Watchlist = append(p.Watchlist, entry)
	}); err != nil {
		return models.WatchlistEntry{}, fmt.Errorf("failed to save watchlist entry: %w", err)
	}

	m.logger.Info().
		Str("owner", ownerID).
		Str("symbol", symbol).
		Msg("Watchlist symbol added")

	return entry, nil
}

// resolveTicker asks the model for the ticker behind a free-text name. The
// INVALID sentinel and anything that does not look like a ticker reject the
// input.
func (m *Manager) resolveTicker(ctx context.Context, name string) (string, error) {
	response, err := m.llm.Complete(ctx, prompt.TickerResolution(name))
	if err != nil {
		return "", err
	}

	symbol := strings.ToUpper(strings.TrimSpace(response))
	if symbol == "" || symbol == prompt.TickerInvalid || len(symbol) > 10 || strings.ContainsAny(symbol, " \n\t") {
		m.logger.Debug().
			Str("input", name).
			Str("response", response).
			Msg("Ticker resolution rejected input")
		return "", fmt.Errorf("%w: %q could not be resolved to a listed ticker", models.ErrInvalidSymbol, name)
	}
	return symbol, nil
}

// List returns the combined candidate symbols for the owner: the built-in
// defaults followed by the saved entries, deduplicated. A missing profile
// just means no saved entries.
func (m *Manager) List(ctx context.Context, ownerID string) ([]string, []models.WatchlistEntry, error) {
	p, err := m.profiles.GetProfile(ctx, ownerID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return append([]string{}, common.DefaultEquitySymbols...), nil, nil
		}
		return nil, nil, err
	}

	seen := make(map[string]bool)
	combined := make([]string, 0, len(common.DefaultEquitySymbols)+len(p.Watchlist))
	for _, symbol := range common.DefaultEquitySymbols {
		upper := strings.ToUpper(symbol)
		if !seen[upper] {
			seen[upper] = true
			combined = append(combined, symbol)
		}
	}
	for _, entry := range p.Watchlist {
		upper := strings.ToUpper(entry.Symbol)
		if !seen[upper] {
			seen[upper] = true
			combined = append(combined, entry.Symbol)
		}
	}

	return combined, p.Watchlist, nil
}
