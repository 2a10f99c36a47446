package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/finsightapp/finsight/internal/common"
	"github.com/finsightapp/finsight/internal/interfaces"
)

// StatusHandler serves the service status and liveness endpoints.
type StatusHandler struct {
	llm       interfaces.LLMService
	logger    arbor.ILogger
	startTime time.Time
}

// NewStatusHandler creates a status handler.
func NewStatusHandler(llm interfaces.LLMService, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		llm:       llm,
		logger:    logger,
		startTime: time.Now(),
	}
}

// GetStatus handles GET /api/status
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"version":      common.Version,
		"build":        common.Build,
		"uptime":       time.Since(h.startTime).Round(time.Second).String(),
		"llm_provider": h.llm.Provider(),
	})
}

// GetHealth handles GET /health
func (h *StatusHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
