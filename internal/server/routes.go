package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Analysis
	mux.HandleFunc("/api/analysis", s.app.AnalysisHandler.GetAnalysis)             // GET ?symbol=&kind=&refresh=
	mux.HandleFunc("/api/health-report", s.app.AnalysisHandler.GetHealthReport)    // GET ?refresh=
	mux.HandleFunc("/api/recommendations", s.app.AnalysisHandler.GetRecommendations) // GET ?refresh=

	// API routes - Watchlist
	mux.HandleFunc("/api/watchlist", s.app.WatchlistHandler.Handle) // GET (list), POST (add)

	// API routes - Profile
	mux.HandleFunc("/api/profile", s.app.ProfileHandler.Handle) // GET (read), PUT (save)

	// API routes - System
	mux.HandleFunc("/api/status", s.app.StatusHandler.GetStatus)
	mux.HandleFunc("/health", s.app.StatusHandler.GetHealth)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})

	return mux
}
