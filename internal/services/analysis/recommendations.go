package analysis

import (
	"context"
	"strings"

	"github.com/finsightapp/finsight/internal/common"
	"github.com/finsightapp/finsight/internal/models"
	"github.com/finsightapp/finsight/internal/services/prompt"
)

// Recommendations generates the owner's ranked stock picks and persists them
// onto the profile document. The candidate pool is the default symbol list
// plus the owner's watchlist, deduplicated case-insensitively. Unlike the
// per-subject analyses this flow is refresh-only: the stored lines are
// returned as-is unless forceRefresh is set, matching the explicit refresh
// button the feature has always had.
func (o *Orchestrator) Recommendations(ctx context.Context, ownerID string, forceRefresh bool) ([]string, error) {
	p, err := o.loadProfile(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if !forceRefresh && len(p.StockRecommendations) > 0 {
		return p.StockRecommendations, nil
	}

	pool := candidatePool(p)

	text, err := o.llm.Complete(ctx, prompt.Recommendations(p, pool))
	if err != nil {
		return nil, err
	}

	lines := splitRecommendationLines(text)
	if len(lines) == 0 {
		return nil, &models.GenerationError{Message: "empty recommendations response"}
	}

	if _, err := o.profiles.MergeProfile(ctx, ownerID, func(p *models.Profile) {
		p.StockRecommendations = lines
	}); err != nil {
		// The generated picks are still useful even when persisting failed.
		o.logger.Warn().Err(err).Str("owner", ownerID).Msg("Failed to persist recommendations")
	}

	o.logger.Info().
		Str("owner", ownerID).
		Int("count", len(lines)).
		Msg("Recommendations generated")

	return lines, nil
}

// candidatePool combines the default equity symbols with the owner's
// watchlist, keeping first occurrence order and dropping case-insensitive
// duplicates.
func candidatePool(p *models.Profile) []string {
	seen := make(map[string]bool)
	pool := make([]string, 0, len(common.DefaultEquitySymbols)+len(p.Watchlist))
	for _, symbol := range common.DefaultEquitySymbols {
		upper := strings.ToUpper(symbol)
		if !seen[upper] {
			seen[upper] = true
			pool = append(pool, symbol)
		}
	}
	for _, symbol := range p.WatchlistSymbols() {
		upper := strings.ToUpper(symbol)
		if !seen[upper] {
			seen[upper] = true
			pool = append(pool, symbol)
		}
	}
	return pool
}

// splitRecommendationLines breaks the model output into the individual pick
// lines, dropping blanks.
func splitRecommendationLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
