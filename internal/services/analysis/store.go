// Package analysis contains the cached-generation pipeline: the cache store,
// the request orchestrator, and the health-report and recommendations flows.
package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/finsightapp/finsight/internal/interfaces"
	"github.com/finsightapp/finsight/internal/models"
)

// Store wraps the analysis storage with the cache semantics the orchestrator
// needs: lookups distinguish miss from failure, and a failed write is
// reported but never fatal to the request that generated the text.
type Store struct {
	storage interfaces.AnalysisStorage
	logger  arbor.ILogger
}

// NewStore creates a cache store over the given analysis storage.
func NewStore(storage interfaces.AnalysisStorage, logger arbor.ILogger) *Store {
	return &Store{
		storage: storage,
		logger:  logger,
	}
}

// Get returns the cached record for (owner, symbol), or nil on a miss. A
// storage failure is logged and treated as a miss: the pipeline regenerates
// rather than failing the request.
func (s *Store) Get(ctx context.Context, collection, ownerID, symbol string) *models.AnalysisRecord {
	record, err := s.storage.GetAnalysis(ctx, collection, ownerID, symbol)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			s.logger.Warn().
				Err(err).
				Str("collection", collection).
				Str("key", models.AnalysisKey(ownerID, symbol)).
				Msg("Cache read failed, treating as miss")
		}
		return nil
	}
	return record
}

// Put persists a freshly generated record. The returned error wraps
// models.ErrCacheWriteFailed; callers still hand the generated text to the
// user when this fails.
func (s *Store) Put(ctx context.Context, collection string, record *models.AnalysisRecord) error {
	if err := s.storage.PutAnalysis(ctx, collection, record); err != nil {
		s.logger.Error().
			Err(err).
			Str("collection", collection).
			Str("key", record.Key()).
			Msg("Cache write failed")
		return fmt.Errorf("%w: %v", models.ErrCacheWriteFailed, err)
	}
	return nil
}

// List returns every cached record for an owner in a collection.
func (s *Store) List(ctx context.Context, collection, ownerID string) ([]*models.AnalysisRecord, error) {
	return s.storage.ListAnalyses(ctx, collection, ownerID)
}
