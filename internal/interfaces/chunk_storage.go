package interfaces

import (
	"github.com/draphael123/notebooklm-marketing/internal/models"
)

// ChunkStorage persists processed document chunks between runs
type ChunkStorage interface {
	// SaveChunks replaces the stored chunk set with the given run's output
	SaveChunks(chunks []*models.DocumentChunk) error

	// ListChunks returns all stored chunks in document order
	ListChunks() ([]*models.DocumentChunk, error)

	// CountChunks returns the number of stored chunks
	CountChunks() (int, error)

	// DeleteChunks removes all stored chunks
	DeleteChunks() error
}
