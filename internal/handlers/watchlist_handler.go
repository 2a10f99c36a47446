package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/finsightapp/finsight/internal/services/watchlist"
)

// WatchlistHandler serves the watchlist endpoints.
type WatchlistHandler struct {
	manager *watchlist.Manager
	logger  arbor.ILogger
}

// NewWatchlistHandler creates a watchlist handler.
func NewWatchlistHandler(manager *watchlist.Manager, logger arbor.ILogger) *WatchlistHandler {
	return &WatchlistHandler{
		manager: manager,
		logger:  logger,
	}
}

// Handle dispatches GET (list) and POST (add) for /api/watchlist.
func (h *WatchlistHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.add(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *WatchlistHandler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := RequireOwner(w, r)
	if !ok {
		return
	}

	symbols, entries, err := h.manager.List(r.Context(), ownerID)
	if err != nil {
		h.logger.Warn().Err(err).Str("owner", ownerID).Msg("Watchlist list failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"symbols": symbols,
		"entries": entries,
	})
}

type addWatchlistRequest struct {
	Name string `json:"name"`
}

func (h *WatchlistHandler) add(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := RequireOwner(w, r)
	if !ok {
		return
	}

	var req addWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	entry, err := h.manager.AddSymbol(r.Context(), ownerID, req.Name)
	if err != nil {
		h.logger.Debug().Err(err).Str("owner", ownerID).Str("input", req.Name).Msg("Watchlist add rejected")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, entry)
}
