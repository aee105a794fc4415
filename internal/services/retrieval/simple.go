package retrieval

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/draphael123/notebooklm-marketing/internal/models"
	"github.com/draphael123/notebooklm-marketing/internal/services/tokens"
)

// promptReserveTokens is held back from the context budget when sectioning,
// leaving room for the system prompt and question.
const promptReserveTokens = 1000

var paragraphSplit = regexp.MustCompile(`\n\s*\n`)

// retrieveSimple returns the whole document: as a single pseudo-chunk when it
// fits the context budget, otherwise as sequential budget-sized sections.
// When the document cannot be loaded it returns built-in fallback chunks for
// the intent; simple retrieval never fails.
func (s *Service) retrieveSimple(ctx context.Context, intent models.Intent) []*models.DocumentChunk {
	text, err := s.documents.LoadText(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load document, using fallback chunks")
		return fallbackChunks(intent)
	}

	total := tokens.Estimate(text)
	if total <= s.config.MaxContextTokens {
		return []*models.DocumentChunk{fullDocumentChunk(text, total)}
	}

	return sectionDocument(text, s.config.MaxContextTokens-promptReserveTokens)
}

func fullDocumentChunk(text string, tokenCount int) *models.DocumentChunk {
	return &models.DocumentChunk{
		ID:      "full-document",
		Content: text,
		Metadata: models.ChunkMetadata{
			Category:    models.CategoryGeneral,
			Topic:       "Full Document",
			IsRelevant:  true,
			ChunkIndex:  0,
			StartOffset: 0,
			EndOffset:   len(text),
		},
		TokenCount: tokenCount,
	}
}

// sectionDocument splits text into sequential sections bounded by
// sectionTokens. Section count is driven by document size, not the retrieval
// limit, so callers get the entire document.
func sectionDocument(text string, sectionTokens int) []*models.DocumentChunk {
	var sections []*models.DocumentChunk
	var buffer string
	bufferTokens := 0
	index := 0

	flush := func() {
		if strings.TrimSpace(buffer) == "" {
			return
		}
		content := strings.TrimSpace(buffer)
		sections = append(sections, &models.DocumentChunk{
			ID:      fmt.Sprintf("simple-chunk-%d", index),
			Content: content,
			Metadata: models.ChunkMetadata{
				Category:    models.CategoryGeneral,
				Topic:       fmt.Sprintf("Document Section %d", index+1),
				IsRelevant:  true,
				ChunkIndex:  index,
				StartOffset: 0,
				EndOffset:   len(content),
			},
			TokenCount: tokens.Estimate(content),
		})
		index++
	}

	for _, paragraph := range paragraphSplit.Split(text, -1) {
		paraTokens := tokens.Estimate(paragraph)
		if bufferTokens+paraTokens > sectionTokens && len(buffer) > 0 {
			flush()
			buffer = paragraph
			bufferTokens = paraTokens
		} else {
			if buffer == "" {
				buffer = paragraph
			} else {
				buffer += "\n\n" + paragraph
			}
			bufferTokens += paraTokens
		}
	}
	flush()

	return sections
}
