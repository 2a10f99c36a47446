package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/finsightapp/finsight/internal/interfaces"
	"github.com/finsightapp/finsight/internal/models"
)

// analysisDocument is the stored envelope for one cached analysis. The
// collection and owner ride along as indexed fields so listings never scan
// the whole store.
type analysisDocument struct {
	StoreKey   string `badgerhold:"key"`
	Collection string `badgerhold:"index"`
	OwnerID    string `badgerhold:"index"`
	Record     models.AnalysisRecord
}

// AnalysisStorage implements the AnalysisStorage interface for Badger
type AnalysisStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewAnalysisStorage creates a new AnalysisStorage instance
func NewAnalysisStorage(db *BadgerDB, logger arbor.ILogger) interfaces.AnalysisStorage {
	return &AnalysisStorage{
		db:     db,
		logger: logger,
	}
}

// storeKey prefixes the record key with its collection so the two analysis
// collections share one store without colliding.
func storeKey(collection, ownerID, symbol string) string {
	return fmt.Sprintf("%s/%s", collection, models.AnalysisKey(ownerID, symbol))
}

// GetAnalysis retrieves the record for (owner, symbol) in a collection
func (s *AnalysisStorage) GetAnalysis(ctx context.Context, collection, ownerID, symbol string) (*models.AnalysisRecord, error) {
	var doc analysisDocument
	err := s.db.Store().Get(storeKey(collection, ownerID, symbol), &doc)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return &doc.Record, nil
}

// PutAnalysis overwrites the record for its own key. Writes are
// last-writer-wins; no history is retained.
func (s *AnalysisStorage) PutAnalysis(ctx context.Context, collection string, record *models.AnalysisRecord) error {
	doc := analysisDocument{
		StoreKey:   storeKey(collection, record.OwnerID, record.Symbol),
		Collection: collection,
		OwnerID:    record.OwnerID,
		Record:     *record,
	}

	if err := s.db.Store().Upsert(doc.StoreKey, &doc); err != nil {
		return fmt.Errorf("failed to put analysis: %w", err)
	}

	s.logger.Debug().
		Str("collection", collection).
		Str("key", record.Key()).
		Msg("Analysis record stored")

	return nil
}

// ListAnalyses returns all records for an owner in a collection
func (s *AnalysisStorage) ListAnalyses(ctx context.Context, collection, ownerID string) ([]*models.AnalysisRecord, error) {
	var docs []analysisDocument
	err := s.db.Store().Find(&docs,
		badgerhold.Where("Collection").Eq(collection).And("OwnerID").Eq(ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	records := make([]*models.AnalysisRecord, 0, len(docs))
	for i := range docs {
		records = append(records, &docs[i].Record)
	}
	return records, nil
}
