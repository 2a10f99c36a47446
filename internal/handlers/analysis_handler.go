package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/finsightapp/finsight/internal/models"
	"github.com/finsightapp/finsight/internal/services/analysis"
)

// AnalysisHandler serves the cached-analysis endpoints.
type AnalysisHandler struct {
	orchestrator *analysis.Orchestrator
	logger       arbor.ILogger
}

// NewAnalysisHandler creates an analysis handler.
func NewAnalysisHandler(orchestrator *analysis.Orchestrator, logger arbor.ILogger) *AnalysisHandler {
	return &AnalysisHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

type analysisResponse struct {
	Symbol      string    `json:"symbol"`
	Kind        string    `json:"kind,omitempty"`
	Analysis    string    `json:"analysis"`
	GeneratedAt time.Time `json:"generatedAt"`
	FromCache   bool      `json:"fromCache"`
}

// GetAnalysis handles GET /api/analysis?symbol=&kind=&refresh=
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	ownerID, ok := RequireOwner(w, r)
	if !ok {
		return
	}

	kind := models.AssetKindEquity
	if k := r.URL.Query().Get("kind"); k != "" {
		parsed, err := models.ParseAssetKind(k)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		kind = parsed
	}
	subject := models.NewSubject(r.URL.Query().Get("symbol"), kind)
	if !subject.Valid() {
		WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	result, err := h.orchestrator.Request(r.Context(), ownerID, subject, boolQuery(r, "refresh"))
	if err != nil {
		h.logger.Warn().Err(err).Str("symbol", subject.Symbol).Msg("Analysis request failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, analysisResponse{
		Symbol:      result.Record.Symbol,
		Kind:        string(result.Record.Kind),
		Analysis:    result.Record.AnalysisText,
		GeneratedAt: result.Record.GeneratedAt,
		FromCache:   result.FromCache,
	})
}

type healthReportResponse struct {
	Report      string    `json:"report"`
	RiskLevel   string    `json:"riskLevel,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
	FromCache   bool      `json:"fromCache"`
}

// GetHealthReport handles GET /api/health-report?refresh=
func (h *AnalysisHandler) GetHealthReport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	ownerID, ok := RequireOwner(w, r)
	if !ok {
		return
	}

	result, err := h.orchestrator.HealthReport(r.Context(), ownerID, boolQuery(r, "refresh"))
	if err != nil {
		h.logger.Warn().Err(err).Str("owner", ownerID).Msg("Health report request failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, healthReportResponse{
		Report:      result.Record.AnalysisText,
		RiskLevel:   analysis.ExtractRiskLevel(result.Record.AnalysisText),
		GeneratedAt: result.Record.GeneratedAt,
		FromCache:   result.FromCache,
	})
}

// GetRecommendations handles GET /api/recommendations?refresh=
func (h *AnalysisHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	ownerID, ok := RequireOwner(w, r)
	if !ok {
		return
	}

	lines, err := h.orchestrator.Recommendations(r.Context(), ownerID, boolQuery(r, "refresh"))
	if err != nil {
		h.logger.Warn().Err(err).Str("owner", ownerID).Msg("Recommendations request failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": lines,
	})
}
