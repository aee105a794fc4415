package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
)

// DocumentHandler handles document processing HTTP requests
type DocumentHandler struct {
	documents interfaces.DocumentService
	storage   interfaces.ChunkStorage
	logger    arbor.ILogger
}

// NewDocumentHandler creates a new document handler with dependencies
func NewDocumentHandler(documents interfaces.DocumentService, storage interfaces.ChunkStorage, logger arbor.ILogger) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		storage:   storage,
		logger:    logger,
	}
}

// ProcessHandler handles POST /api/documents/process requests. Processing
// runs synchronously; the response reports the chunk count.
func (h *DocumentHandler) ProcessHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	chunks, err := h.documents.Process(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Document processing failed")
		WriteError(w, http.StatusInternalServerError, "Document processing failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"chunks": len(chunks),
	})
}

// StatsHandler handles GET /api/documents/stats requests
func (h *DocumentHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	count, err := h.storage.CountChunks()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to count stored chunks")
		WriteError(w, http.StatusInternalServerError, "Failed to read document stats")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"chunk_count": count,
		"processed":   count > 0,
	})
}
