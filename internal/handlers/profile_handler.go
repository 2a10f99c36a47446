package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/finsightapp/finsight/internal/interfaces"
	"github.com/finsightapp/finsight/internal/models"
)

// ProfileHandler serves the profile read and save endpoints.
type ProfileHandler struct {
	profiles interfaces.ProfileStorage
	logger   arbor.ILogger
}

// NewProfileHandler creates a profile handler.
func NewProfileHandler(profiles interfaces.ProfileStorage, logger arbor.ILogger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		logger:   logger,
	}
}

// Handle dispatches GET (read) and PUT (save) for /api/profile.
func (h *ProfileHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.put(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := RequireOwner(w, r)
	if !ok {
		return
	}

	p, err := h.profiles.GetProfile(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "No profile found")
			return
		}
		h.logger.Error().Err(err).Str("owner", ownerID).Msg("Profile read failed")
		WriteError(w, http.StatusInternalServerError, "Failed to read profile")
		return
	}

	WriteJSON(w, http.StatusOK, p)
}

// put replaces the profile fields while preserving the analysis artifacts
// (watchlist, saved recommendations) that ride along on the same document.
func (h *ProfileHandler) put(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := RequireOwner(w, r)
	if !ok {
		return
	}

	var incoming models.Profile
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	merged, err := h.profiles.MergeProfile(r.Context(), ownerID, func(p *models.Profile) {
		incoming.Watchlist = p.Watchlist
		incoming.StockRecommendations = p.StockRecommendations
		*p = incoming
	})
	if err != nil {
		h.logger.Error().Err(err).Str("owner", ownerID).Msg("Profile save failed")
		WriteError(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	WriteJSON(w, http.StatusOK, merged)
}
