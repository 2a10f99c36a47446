package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/finsightapp/finsight/internal/interfaces"
	"github.com/finsightapp/finsight/internal/models"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()
	tmpDir := t.TempDir()

	options := badgerhold.DefaultOptions
	options.Dir = tmpDir
	options.ValueDir = tmpDir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return &BadgerDB{store: store, logger: arbor.NewLogger()}
}

func TestProfileStorageRoundTrip(t *testing.T) {
	db := newTestDB(t)
	storage := NewProfileStorage(db, arbor.NewLogger())
	ctx := context.Background()

	_, err := storage.GetProfile(ctx, "user-1")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	profile := &models.Profile{
		Name:   "Alice",
		Salary: models.NewFlexValue("85000"),
		Goals:  "Retire early",
	}
	require.NoError(t, storage.SaveProfile(ctx, "user-1", profile))

	got, err := storage.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "85000", got.Salary.Normalized())
	assert.Equal(t, "Retire early", got.Goals)
}

func TestMergeProfilePreservesUntouchedFields(t *testing.T) {
	db := newTestDB(t)
	storage := NewProfileStorage(db, arbor.NewLogger())
	ctx := context.Background()

	require.NoError(t, storage.SaveProfile(ctx, "user-1", &models.Profile{
		Name:  "Alice",
		Goals: "Retire early",
	}))

	merged, err := storage.MergeProfile(ctx, "user-1", func(p *models.Profile) {
		p.Watchlist = append(p.Watchlist, models.WatchlistEntry{
			ID:      "wl_1",
			OwnerID: "user-1",
			Symbol:  "NVDA",
			AddedAt: time.Now(),
		})
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", merged.Name)
	assert.Equal(t, "Retire early", merged.Goals)
	require.Len(t, merged.Watchlist, 1)
	assert.Equal(t, "NVDA", merged.Watchlist[0].Symbol)
}

func TestMergeProfileCreatesMissingDocument(t *testing.T) {
	db := newTestDB(t)
	storage := NewProfileStorage(db, arbor.NewLogger())
	ctx := context.Background()

	merged, err := storage.MergeProfile(ctx, "new-user", func(p *models.Profile) {
		p.StockRecommendations = []string{"Must Buy: VTI"}
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Must Buy: VTI"}, merged.StockRecommendations)

	got, err := storage.GetProfile(ctx, "new-user")
	require.NoError(t, err)
	assert.Equal(t, []string{"Must Buy: VTI"}, got.StockRecommendations)
}

func TestAnalysisStorageRoundTrip(t *testing.T) {
	db := newTestDB(t)
	storage := NewAnalysisStorage(db, arbor.NewLogger())
	ctx := context.Background()

	_, err := storage.GetAnalysis(ctx, models.CollectionInvestmentAnalysis, "user-1", "AAPL")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	record := &models.AnalysisRecord{
		OwnerID:      "user-1",
		Symbol:       "AAPL",
		Kind:         models.AssetKindEquity,
		AnalysisText: "Buy.",
		ProfileHash:  "abc123",
		GeneratedAt:  time.Now().UTC(),
	}
	require.NoError(t, storage.PutAnalysis(ctx, models.CollectionInvestmentAnalysis, record))

	got, err := storage.GetAnalysis(ctx, models.CollectionInvestmentAnalysis, "user-1", "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Buy.", got.AnalysisText)
	assert.Equal(t, "abc123", got.ProfileHash)
}

func TestAnalysisStorageLastWriterWins(t *testing.T) {
	db := newTestDB(t)
	storage := NewAnalysisStorage(db, arbor.NewLogger())
	ctx := context.Background()

	first := &models.AnalysisRecord{OwnerID: "user-1", Symbol: "AAPL", AnalysisText: "old", ProfileHash: "h1"}
	second := &models.AnalysisRecord{OwnerID: "user-1", Symbol: "AAPL", AnalysisText: "new", ProfileHash: "h2"}
	require.NoError(t, storage.PutAnalysis(ctx, models.CollectionInvestmentAnalysis, first))
	require.NoError(t, storage.PutAnalysis(ctx, models.CollectionInvestmentAnalysis, second))

	got, err := storage.GetAnalysis(ctx, models.CollectionInvestmentAnalysis, "user-1", "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "new", got.AnalysisText)
	assert.Equal(t, "h2", got.ProfileHash)
}

func TestAnalysisStorageCollectionsDoNotCollide(t *testing.T) {
	db := newTestDB(t)
	storage := NewAnalysisStorage(db, arbor.NewLogger())
	ctx := context.Background()

	analysis := &models.AnalysisRecord{OwnerID: "user-1", Symbol: "AAPL", AnalysisText: "analysis"}
	health := &models.AnalysisRecord{OwnerID: "user-1", Symbol: models.HealthReportSubject, AnalysisText: "report"}
	require.NoError(t, storage.PutAnalysis(ctx, models.CollectionInvestmentAnalysis, analysis))
	require.NoError(t, storage.PutAnalysis(ctx, models.CollectionFinancialRecommendations, health))

	_, err := storage.GetAnalysis(ctx, models.CollectionFinancialRecommendations, "user-1", "AAPL")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	got, err := storage.GetAnalysis(ctx, models.CollectionFinancialRecommendations, "user-1", models.HealthReportSubject)
	require.NoError(t, err)
	assert.Equal(t, "report", got.AnalysisText)
}

func TestListAnalysesFiltersByOwnerAndCollection(t *testing.T) {
	db := newTestDB(t)
	storage := NewAnalysisStorage(db, arbor.NewLogger())
	ctx := context.Background()

	require.NoError(t, storage.PutAnalysis(ctx, models.CollectionInvestmentAnalysis,
		&models.AnalysisRecord{OwnerID: "user-1", Symbol: "AAPL"}))
	require.NoError(t, storage.PutAnalysis(ctx, models.CollectionInvestmentAnalysis,
		&models.AnalysisRecord{OwnerID: "user-1", Symbol: "VOO"}))
	require.NoError(t, storage.PutAnalysis(ctx, models.CollectionInvestmentAnalysis,
		&models.AnalysisRecord{OwnerID: "user-2", Symbol: "AAPL"}))

	records, err := storage.ListAnalyses(ctx, models.CollectionInvestmentAnalysis, "user-1")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
