// Package handlers implements the HTTP API surface.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/finsightapp/finsight/internal/models"
)

// OwnerHeader carries the caller's identity. Authentication happens
// upstream; this service trusts the header the gateway sets.
const OwnerHeader = "X-User-ID"

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a standard success JSON response.
func WriteSuccess(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": message,
	})
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// RequireOwner extracts the owner identity from the request. Returns the
// owner ID and true, or writes a 401 and returns false.
func RequireOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID := strings.TrimSpace(r.Header.Get(OwnerHeader))
	if ownerID == "" {
		WriteError(w, http.StatusUnauthorized, "Missing "+OwnerHeader+" header")
		return "", false
	}
	return ownerID, true
}

// WriteServiceError maps the service error taxonomy onto HTTP statuses.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrProfileUnavailable):
		WriteError(w, http.StatusNotFound, "No profile found for user; save a profile first")
	case errors.Is(err, models.ErrInvalidSymbol):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrRateLimited):
		WriteError(w, http.StatusTooManyRequests, "Rate limited by upstream provider; try again later")
	case errors.Is(err, models.ErrMarketDataUnavailable):
		WriteError(w, http.StatusBadGateway, "Market data is currently unavailable")
	case errors.Is(err, models.ErrGenerationFailed):
		WriteError(w, http.StatusBadGateway, "Analysis generation failed")
	default:
		WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// boolQuery reports whether a query parameter is set to a truthy value.
func boolQuery(r *http.Request, name string) bool {
	v := strings.ToLower(r.URL.Query().Get(name))
	return v == "1" || v == "true" || v == "yes"
}
