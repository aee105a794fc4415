package interfaces

import (
	"context"

	"github.com/draphael123/notebooklm-marketing/internal/models"
)

// ChunkFilter restricts a nearest-neighbor query by chunk metadata.
// Zero values mean "no restriction".
type ChunkFilter struct {
	Category     models.Category
	Program      models.Program
	RelevantOnly bool
}

// VectorMatch is a single nearest-neighbor result.
type VectorMatch struct {
	Content  string
	Metadata models.ChunkMetadata
	Score    float32
}

// VectorStore abstracts the external nearest-neighbor index.
// Implementations must treat the index as owned externally: upserts are
// idempotent per chunk ID and queries never mutate state.
type VectorStore interface {
	// Init prepares the backing collection for vectors of the given dimension
	Init(ctx context.Context, dimension int) error

	// Upsert writes chunk vectors to the index, keyed by chunk ID
	Upsert(ctx context.Context, chunks []*models.DocumentChunk, vectors [][]float32) error

	// QueryNearest returns the topK closest matches under the filter
	QueryNearest(ctx context.Context, vector []float32, topK int, filter *ChunkFilter) ([]VectorMatch, error)

	// DeleteAll removes every stored vector. A processing run replaces the
	// indexed set, so stale vectors from a previous run must not survive.
	DeleteAll(ctx context.Context) error

	// IsAvailable reports whether the backend is reachable and configured
	IsAvailable(ctx context.Context) bool
}
