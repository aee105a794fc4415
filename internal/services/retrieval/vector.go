package retrieval

import (
	"context"
	"fmt"

	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
	"github.com/draphael123/notebooklm-marketing/internal/models"
	"github.com/draphael123/notebooklm-marketing/internal/services/tokens"
)

// retrieveVector embeds the question and queries the nearest-neighbor index
// under an intent-derived filter. Any failure (no backend, embedding error,
// index unavailable) silently falls back to simple retrieval; the degradation
// is logged but never surfaced.
func (s *Service) retrieveVector(ctx context.Context, question string, intent models.Intent, limit int) []*models.DocumentChunk {
	if s.vectors == nil || s.embeddings == nil || !s.embeddings.IsAvailable() {
		s.logger.Warn().Msg("No vector backend configured, falling back to simple retrieval")
		return s.retrieveSimple(ctx, intent)
	}

	queryVector, err := s.embeddings.Embed(ctx, question)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Question embedding failed, falling back to simple retrieval")
		return s.retrieveSimple(ctx, intent)
	}

	matches, err := s.vectors.QueryNearest(ctx, queryVector, limit, intentFilter(intent))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Vector query failed, falling back to simple retrieval")
		return s.retrieveSimple(ctx, intent)
	}

	chunks := make([]*models.DocumentChunk, len(matches))
	for i, match := range matches {
		meta := match.Metadata
		if meta.Category == "" {
			meta.Category = models.CategoryGeneral
		}
		if meta.Topic == "" {
			meta.Topic = "Relevant Section"
		}
		meta.StartOffset = 0
		meta.EndOffset = len(match.Content)

		chunks[i] = &models.DocumentChunk{
			ID:         fmt.Sprintf("rag-chunk-%d", i),
			Content:    match.Content,
			Metadata:   meta,
			TokenCount: tokens.Estimate(match.Content),
		}
	}
	return chunks
}

// intentFilter derives a metadata filter from the question intent. Results
// are always restricted to user-relevant chunks; pricing, availability and
// process intents additionally restrict the category.
func intentFilter(intent models.Intent) *interfaces.ChunkFilter {
	filter := &interfaces.ChunkFilter{RelevantOnly: true}

	switch intent {
	case models.IntentPricing:
		filter.Category = models.CategoryPricing
	case models.IntentAvailability:
		filter.Category = models.CategoryAvailability
	case models.IntentProcess:
		filter.Category = models.CategoryProcess
	}

	return filter
}
