package common

import (
	"github.com/google/uuid"
)

// NewWatchlistEntryID generates a unique watchlist entry ID.
// Format: wl_<uuid>
func NewWatchlistEntryID() string {
	return "wl_" + uuid.New().String()
}
