package handlers

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/ternarybob/arbor"
)

// AskHandler handles question answering HTTP requests
type AskHandler struct {
	queryService QueryService
	limiter      RateLimiter
	logger       arbor.ILogger
}

// NewAskHandler creates a new ask handler with dependencies
func NewAskHandler(queryService QueryService, limiter RateLimiter, logger arbor.ILogger) *AskHandler {
	return &AskHandler{
		queryService: queryService,
		limiter:      limiter,
		logger:       logger,
	}
}

// AskRequest is the body of POST /api/ask
type AskRequest struct {
	Question string `json:"question"`
	ClientID string `json:"client_id,omitempty"`
	Stream   bool   `json:"stream,omitempty"`
}

// AskHandler handles POST /api/ask requests
func (h *AskHandler) AskHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to decode ask request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Question == "" {
		WriteError(w, http.StatusBadRequest, "Question field is required")
		return
	}

	clientID := h.resolveClientID(r, req.ClientID)

	if h.limiter != nil {
		result := h.limiter.Check(clientID)
		writeRateLimitHeaders(w, h.limiter.Limit(), result.Remaining, result.ResetAt.Unix())
		if !result.Allowed {
			w.Header().Set("Retry-After", strconv.FormatInt(result.ResetAt.Unix(), 10))
			h.logger.Warn().
				Str("client_id", clientID).
				Msg("Rate limit exceeded")
			WriteError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}
	}

	h.logger.Info().
		Str("client_id", clientID).
		Int("question_length", len(req.Question)).
		Msg("Ask request received")

	if req.Stream {
		h.streamAnswer(w, r, req.Question, clientID)
		return
	}

	response, err := h.queryService.Answer(r.Context(), req.Question, clientID)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to answer question")
		WriteError(w, http.StatusInternalServerError, "Failed to generate an answer")
		return
	}

	WriteJSON(w, http.StatusOK, response)
}

// streamAnswer delivers the answer over Server-Sent Events: one "chunk"
// event per generated fragment and a final "done" event carrying the full
// response.
func (h *AskHandler) streamAnswer(w http.ResponseWriter, r *http.Request, question, clientID string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, http.StatusInternalServerError, "Streaming is not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	response, err := h.queryService.AnswerStreaming(r.Context(), question, clientID, func(chunk string) {
		sendEvent(w, flusher, "chunk", map[string]string{"text": chunk})
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to stream answer")
		sendEvent(w, flusher, "error", map[string]string{"error": "Failed to generate an answer"})
		return
	}

	sendEvent(w, flusher, "done", response)
}

// SuggestHandler handles GET /api/suggest requests
func (h *AskHandler) SuggestHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"questions": h.queryService.SuggestedQuestions(),
	})
}

// resolveClientID prefers the caller-supplied identifier and falls back to
// the remote address with the port stripped.
func (h *AskHandler) resolveClientID(r *http.Request, supplied string) string {
	if supplied != "" {
		return supplied
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeRateLimitHeaders(w http.ResponseWriter, limit, remaining int, resetUnix int64) {
	if limit < 0 {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetUnix, 10))
}

func sendEvent(w http.ResponseWriter, flusher http.Flusher, event string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\n", event)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
	flusher.Flush()
}
