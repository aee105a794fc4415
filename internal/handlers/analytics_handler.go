package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
	"github.com/draphael123/notebooklm-marketing/internal/services/analytics"
)

// AnalyticsHandler handles query log and feedback HTTP requests
type AnalyticsHandler struct {
	analytics interfaces.AnalyticsService
	logger    arbor.ILogger
}

// NewAnalyticsHandler creates a new analytics handler with dependencies
func NewAnalyticsHandler(analytics interfaces.AnalyticsService, logger arbor.ILogger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		logger:    logger,
	}
}

// FeedbackRequest is the body of POST /api/feedback
type FeedbackRequest struct {
	RecordID string `json:"record_id"`
	Feedback string `json:"feedback"`
}

// FeedbackHandler handles POST /api/feedback requests
func (h *AnalyticsHandler) FeedbackHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.RecordID == "" || req.Feedback == "" {
		WriteError(w, http.StatusBadRequest, "record_id and feedback fields are required")
		return
	}

	if err := h.analytics.RecordFeedback(r.Context(), req.RecordID, req.Feedback); err != nil {
		h.logger.Warn().
			Err(err).
			Str("record_id", req.RecordID).
			Msg("Failed to record feedback")
		switch {
		case errors.Is(err, analytics.ErrInvalidFeedback):
			WriteError(w, http.StatusBadRequest, "Invalid feedback value")
		case errors.Is(err, interfaces.ErrRecordNotFound):
			WriteError(w, http.StatusBadRequest, "Unknown record_id")
		default:
			WriteError(w, http.StatusInternalServerError, "Failed to record feedback")
		}
		return
	}

	WriteSuccess(w, "Feedback recorded")
}

// ListQueriesHandler handles GET /api/analytics/queries requests.
// Optional query parameters: since, until (RFC 3339) and limit.
func (h *AnalyticsHandler) ListQueriesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	var since, until time.Time
	if v := r.URL.Query().Get("since"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid since parameter, expected RFC 3339 timestamp")
			return
		}
		since = parsed
	}
	if v := r.URL.Query().Get("until"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid until parameter, expected RFC 3339 timestamp")
			return
		}
		until = parsed
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 500 {
		limit = 500
	}

	records, err := h.analytics.List(r.Context(), since, until, limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list query records")
		WriteError(w, http.StatusInternalServerError, "Failed to list query records")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(records),
		"records": records,
	})
}
