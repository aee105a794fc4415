package interfaces

import (
	"context"

	"github.com/draphael123/notebooklm-marketing/internal/models"
)

// Retriever selects document chunks relevant to a question. The selection
// strategy (simple, vector, hybrid) is configuration; every strategy returns
// at most limit chunks except full-document sectioning in simple mode, where
// chunk count is driven by document size.
type Retriever interface {
	Retrieve(ctx context.Context, question string, intent models.Intent, limit int) ([]*models.DocumentChunk, error)
}

// DocumentService loads and processes the reference document
type DocumentService interface {
	// LoadText resolves the raw document text (inline -> URL -> file)
	LoadText(ctx context.Context) (string, error)

	// Process chunks the document, persists the chunks, and (when a vector
	// backend is configured) embeds and upserts them
	Process(ctx context.Context) ([]*models.DocumentChunk, error)
}
