package models

import (
	"fmt"
	"time"
)

// Analysis collections. Investment analyses are cached per (owner, subject);
// the financial health report is cached per owner under a fixed subject key.
const (
	CollectionInvestmentAnalysis       = "investment_analysis"
	CollectionFinancialRecommendations = "financial_recommendations"

	// HealthReportSubject is the fixed symbol slot used for the per-owner
	// financial health report in the recommendations collection.
	HealthReportSubject = "HEALTH"
)

// AnalysisRecord is one cached generated analysis. There is exactly one
// record per (owner, symbol) pair in a collection; a refresh overwrites the
// record wholesale and no history is retained.
type AnalysisRecord struct {
	OwnerID      string    `json:"ownerId" badgerhold:"index"`
	Symbol       string    `json:"symbol"`
	Kind         AssetKind `json:"kind"`
	AnalysisText string    `json:"analysisText"`
	ProfileHash  string    `json:"profileHash"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

// AnalysisKey builds the storage key for an (owner, symbol) pair. The
// underscore concatenation is a wire convention shared with the stored data
// of earlier versions; do not change it without a migration.
func AnalysisKey(ownerID, symbol string) string {
	return fmt.Sprintf("%s_%s", ownerID, symbol)
}

// Key returns the record's own storage key.
func (r *AnalysisRecord) Key() string {
	return AnalysisKey(r.OwnerID, r.Symbol)
}

// Age returns how long ago the record was generated.
func (r *AnalysisRecord) Age(now time.Time) time.Duration {
	return now.Sub(r.GeneratedAt)
}
