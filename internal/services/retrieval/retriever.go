// Package retrieval selects document chunks relevant to a question using one
// of three strategies: simple (whole document), vector (nearest-neighbor
// search), or hybrid (both, merged). Every strategy degrades rather than
// fails: vector falls back to simple, and simple falls back to built-in
// chunks when the document cannot be loaded, so the orchestrator always has
// context to answer with.
package retrieval

import (
	"context"

	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/common"
	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
	"github.com/draphael123/notebooklm-marketing/internal/models"
)

// Service implements interfaces.Retriever.
type Service struct {
	config     *common.SearchConfig
	documents  interfaces.DocumentService
	embeddings interfaces.EmbeddingService
	vectors    interfaces.VectorStore
	logger     arbor.ILogger
}

// NewService creates a retriever. embeddings and vectors may be nil; vector
// and hybrid modes then degrade to simple retrieval.
func NewService(
	cfg *common.SearchConfig,
	documents interfaces.DocumentService,
	embeddings interfaces.EmbeddingService,
	vectors interfaces.VectorStore,
	logger arbor.ILogger,
) *Service {
	return &Service{
		config:     cfg,
		documents:  documents,
		embeddings: embeddings,
		vectors:    vectors,
		logger:     logger,
	}
}

// Retrieve returns chunks for the question under the configured mode.
func (s *Service) Retrieve(ctx context.Context, question string, intent models.Intent, limit int) ([]*models.DocumentChunk, error) {
	if limit <= 0 {
		limit = s.config.RetrievalLimit
	}

	switch s.config.Mode {
	case common.SearchModeRAG:
		return s.retrieveVector(ctx, question, intent, limit), nil
	case common.SearchModeHybrid:
		return s.retrieveHybrid(ctx, question, intent, limit), nil
	default:
		return s.retrieveSimple(ctx, intent), nil
	}
}
