package badger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/finsightapp/finsight/internal/interfaces"
	"github.com/finsightapp/finsight/internal/models"
)

// profileDocument is the stored envelope for one owner's profile.
type profileDocument struct {
	OwnerID   string `badgerhold:"key"`
	Profile   models.Profile
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileStorage implements the ProfileStorage interface for Badger
type ProfileStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewProfileStorage creates a new ProfileStorage instance
func NewProfileStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ProfileStorage {
	return &ProfileStorage{
		db:     db,
		logger: logger,
	}
}

func normalizeOwnerID(ownerID string) string {
	return strings.TrimSpace(ownerID)
}

// GetProfile retrieves a profile by owner ID
func (s *ProfileStorage) GetProfile(ctx context.Context, ownerID string) (*models.Profile, error) {
	var doc profileDocument
	err := s.db.Store().Get(normalizeOwnerID(ownerID), &doc)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &doc.Profile, nil
}

// SaveProfile stores a profile wholesale, replacing any existing document
func (s *ProfileStorage) SaveProfile(ctx context.Context, ownerID string, profile *models.Profile) error {
	key := normalizeOwnerID(ownerID)
	now := time.Now()

	doc := profileDocument{
		OwnerID:   key,
		Profile:   *profile,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Check if exists to preserve CreatedAt
	var existing profileDocument
	if err := s.db.Store().Get(key, &existing); err == nil {
		doc.CreatedAt = existing.CreatedAt
	}

	if err := s.db.Store().Upsert(key, &doc); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

// MergeProfile applies mutate to the stored profile (or a zero profile when
// none exists) and writes the result back. Fields the mutation does not touch
// survive, matching document-store merge-write behavior.
func (s *ProfileStorage) MergeProfile(ctx context.Context, ownerID string, mutate func(*models.Profile)) (*models.Profile, error) {
	key := normalizeOwnerID(ownerID)
	now := time.Now()

	doc := profileDocument{
		OwnerID:   key,
		CreatedAt: now,
	}
	err := s.db.Store().Get(key, &doc)
	if err != nil && err != badgerhold.ErrNotFound {
		return nil, fmt.Errorf("failed to read profile for merge: %w", err)
	}

	mutate(&doc.Profile)
	doc.UpdatedAt = now

	if err := s.db.Store().Upsert(key, &doc); err != nil {
		return nil, fmt.Errorf("failed to merge profile: %w", err)
	}

	return &doc.Profile, nil
}
