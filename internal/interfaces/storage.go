package interfaces

import (
	"context"
	"errors"

	"github.com/finsightapp/finsight/internal/models"
)

// ErrNotFound is returned by storage getters when no document exists for
// the requested key.
var ErrNotFound = errors.New("not found")

// ProfileStorage persists user profile documents keyed by owner ID.
type ProfileStorage interface {
	// GetProfile returns the stored profile or ErrNotFound.
	GetProfile(ctx context.Context, ownerID string) (*models.Profile, error)

	// SaveProfile stores a profile wholesale.
	SaveProfile(ctx context.Context, ownerID string, profile *models.Profile) error

	// MergeProfile applies mutate to the stored profile (or a zero profile
	// if none exists) and writes the result back. This mirrors a
	// merge-write against a document store: untouched fields survive.
	MergeProfile(ctx context.Context, ownerID string, mutate func(*models.Profile)) (*models.Profile, error)
}

// AnalysisStorage persists cached analysis records per collection. Keys are
// models.AnalysisKey(owner, symbol); writes are last-writer-wins.
type AnalysisStorage interface {
	// GetAnalysis returns the record for (owner, symbol) or ErrNotFound.
	GetAnalysis(ctx context.Context, collection, ownerID, symbol string) (*models.AnalysisRecord, error)

	// PutAnalysis overwrites the record for the record's own key.
	PutAnalysis(ctx context.Context, collection string, record *models.AnalysisRecord) error

	// ListAnalyses returns all records for an owner in a collection.
	ListAnalyses(ctx context.Context, collection, ownerID string) ([]*models.AnalysisRecord, error)
}

// StorageManager is the composite handle over all storage concerns.
type StorageManager interface {
	ProfileStorage() ProfileStorage
	AnalysisStorage() AnalysisStorage
	Close() error
}
