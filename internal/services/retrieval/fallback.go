package retrieval

import (
	"github.com/draphael123/notebooklm-marketing/internal/models"
	"github.com/draphael123/notebooklm-marketing/internal/services/tokens"
)

// fallbackChunks returns built-in chunks for an intent, used when the
// document cannot be loaded and no vector backend can answer. The content
// mirrors the reference document's most-asked sections so the orchestrator
// always has something to ground an answer in.
func fallbackChunks(intent models.Intent) []*models.DocumentChunk {
	switch intent {
	case models.IntentPricing:
		return []*models.DocumentChunk{newFallbackChunk(
			"pricing-1",
			"Fountain's TRT program offers flexible pricing: 4-week plan at $199, 12-week plan at $499 (saves money), and 48-week plan at $1,799 (best value). All plans are all-inclusive covering medication, labs, visits, shipping, and support.",
			models.CategoryPricing,
			models.ProgramTRT,
			"TRT Pricing",
		)}

	case models.IntentAvailability:
		return []*models.DocumentChunk{newFallbackChunk(
			"availability-1",
			"Fountain operates in most states through partnerships with LabCorp and Quest Diagnostics. Patients can complete labs at local locations and meet with licensed providers via video visit.",
			models.CategoryAvailability,
			"",
			"State Availability",
		)}

	case models.IntentProcess:
		return []*models.DocumentChunk{newFallbackChunk(
			"process-1",
			"Getting started with Fountain is simple: 1) Complete the online assessment, 2) Schedule lab work at a nearby location, 3) Meet with a provider to discuss results, 4) Receive your personalized treatment plan. Most patients schedule their first provider visit within 5-14 days.",
			models.CategoryProcess,
			"",
			"Getting Started",
		)}

	default:
		return []*models.DocumentChunk{newFallbackChunk(
			"general-1",
			"Fountain Vitality offers comprehensive hormone therapy programs including TRT (Testosterone Replacement Therapy), HRT (Hormone Replacement Therapy), and GLP-1 programs. All programs include medication, lab work, provider visits, and ongoing support.",
			models.CategoryGeneral,
			"",
			"Program Overview",
		)}
	}
}

func newFallbackChunk(id, content string, category models.Category, program models.Program, topic string) *models.DocumentChunk {
	return &models.DocumentChunk{
		ID:      id,
		Content: content,
		Metadata: models.ChunkMetadata{
			Category:    category,
			Program:     program,
			Topic:       topic,
			IsRelevant:  true,
			ChunkIndex:  0,
			StartOffset: 0,
			EndOffset:   len(content),
		},
		TokenCount: tokens.Estimate(content),
	}
}
