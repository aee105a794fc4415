// Package chunker segments a source document into classified, overlapping
// chunks. Boundaries follow paragraph breaks so chunks stay semantically
// coherent; token budgets decide where one chunk ends and the next begins.
package chunker

import (
	"regexp"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/common"
	"github.com/draphael123/notebooklm-marketing/internal/models"
	"github.com/draphael123/notebooklm-marketing/internal/services/tokens"
)

var paragraphSplit = regexp.MustCompile(`\n\s*\n`)

// Service splits document text into chunks bounded by a token budget.
type Service struct {
	targetTokens int
	overlapChars int
	logger       arbor.ILogger
}

// NewService creates a chunker with the given token budget per chunk and
// character overlap between consecutive chunks.
func NewService(targetTokens, overlapChars int, logger arbor.ILogger) *Service {
	return &Service{
		targetTokens: targetTokens,
		overlapChars: overlapChars,
		logger:       logger,
	}
}

// Chunk segments text into ordered chunks. Paragraphs accumulate into a
// buffer until adding the next one would exceed the token budget; the buffer
// is then closed, classified, and emitted, and the next buffer starts with an
// overlap suffix of the previous one. A single paragraph larger than the
// budget is emitted as its own chunk rather than force-split. Empty input
// produces no chunks.
func (s *Service) Chunk(text string) []*models.DocumentChunk {
	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 {
		return nil
	}

	var chunks []*models.DocumentChunk
	var buffer string
	bufferTokens := 0
	chunkIndex := 0
	startOffset := 0
	charOffset := 0

	for _, paragraph := range paragraphs {
		paraTokens := tokens.Estimate(paragraph)

		if bufferTokens+paraTokens > s.targetTokens && len(buffer) > 0 {
			chunks = append(chunks, s.buildChunk(buffer, chunkIndex, startOffset, charOffset))

			overlap := overlapSuffix(buffer, s.overlapChars)
			buffer = overlap + "\n\n" + paragraph
			bufferTokens = tokens.Estimate(buffer)
			startOffset = charOffset - len(overlap)
			chunkIndex++
		} else {
			if buffer == "" {
				buffer = paragraph
			} else {
				buffer += "\n\n" + paragraph
			}
			bufferTokens += paraTokens
		}

		charOffset += len(paragraph) + 2
	}

	if strings.TrimSpace(buffer) != "" {
		chunks = append(chunks, s.buildChunk(buffer, chunkIndex, startOffset, charOffset))
	}

	if s.logger != nil {
		s.logger.Debug().
			Int("chunks", len(chunks)).
			Int("target_tokens", s.targetTokens).
			Int("overlap_chars", s.overlapChars).
			Msg("Document chunked")
	}

	return chunks
}

func (s *Service) buildChunk(buffer string, index, start, end int) *models.DocumentChunk {
	content := strings.TrimSpace(buffer)
	return &models.DocumentChunk{
		ID:      common.NewChunkID(index),
		Content: content,
		Metadata: models.ChunkMetadata{
			Category:    ClassifyCategory(buffer),
			Program:     ExtractProgram(buffer),
			Topic:       ExtractTopic(buffer),
			IsRelevant:  IsRelevant(buffer),
			ChunkIndex:  index,
			StartOffset: start,
			EndOffset:   end,
		},
		TokenCount: tokens.Estimate(content),
	}
}

func splitParagraphs(text string) []string {
	parts := paragraphSplit.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// overlapSuffix returns the tail of text used to seed the next chunk. The
// tail is trimmed to a sentence or line boundary when one exists past half
// the requested overlap length, so the carried text does not open mid-sentence.
func overlapSuffix(text string, overlapChars int) string {
	if len(text) <= overlapChars {
		return text
	}

	end := text[len(text)-overlapChars:]
	lastPeriod := strings.LastIndex(end, ".")
	lastNewline := strings.LastIndex(end, "\n")
	breakPoint := lastPeriod
	if lastNewline > breakPoint {
		breakPoint = lastNewline
	}

	if breakPoint > overlapChars/2 {
		return strings.TrimSpace(end[breakPoint+1:])
	}

	return strings.TrimSpace(end)
}
