package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - question answering
	mux.HandleFunc("/api/ask", s.app.AskHandler.AskHandler)
	mux.HandleFunc("/api/suggest", s.app.AskHandler.SuggestHandler)

	// API routes - query analytics and feedback
	mux.HandleFunc("/api/feedback", s.app.AnalyticsHandler.FeedbackHandler)
	mux.HandleFunc("/api/analytics/queries", s.app.AnalyticsHandler.ListQueriesHandler)

	// API routes - document processing
	mux.HandleFunc("/api/documents/process", s.app.DocumentHandler.ProcessHandler)
	mux.HandleFunc("/api/documents/stats", s.app.DocumentHandler.StatsHandler)

	// API routes - system
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// Everything else is a JSON 404
	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}
