package badger

import (
	"fmt"
	"sort"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
	"github.com/draphael123/notebooklm-marketing/internal/models"
)

// ChunkStorage implements the ChunkStorage interface for Badger
type ChunkStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewChunkStorage creates a new ChunkStorage instance
func NewChunkStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ChunkStorage {
	return &ChunkStorage{
		db:     db,
		logger: logger,
	}
}

// SaveChunks replaces the stored chunk set with the given run's output.
// A processing run is the unit of consistency, so stale chunks from a
// previous run are dropped first.
func (s *ChunkStorage) SaveChunks(chunks []*models.DocumentChunk) error {
	if err := s.DeleteChunks(); err != nil {
		return err
	}

	for _, chunk := range chunks {
		if chunk.ID == "" {
			return fmt.Errorf("chunk ID is required")
		}
		if err := s.db.Store().Upsert(chunk.ID, chunk); err != nil {
			return fmt.Errorf("failed to save chunk %s: %w", chunk.ID, err)
		}
	}

	s.logger.Debug().Int("count", len(chunks)).Msg("Chunks saved")
	return nil
}

// ListChunks returns all stored chunks in document order.
func (s *ChunkStorage) ListChunks() ([]*models.DocumentChunk, error) {
	var chunks []models.DocumentChunk
	if err := s.db.Store().Find(&chunks, nil); err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Metadata.ChunkIndex < chunks[j].Metadata.ChunkIndex
	})

	result := make([]*models.DocumentChunk, len(chunks))
	for i := range chunks {
		result[i] = &chunks[i]
	}
	return result, nil
}

// CountChunks returns the number of stored chunks.
func (s *ChunkStorage) CountChunks() (int, error) {
	count, err := s.db.Store().Count(&models.DocumentChunk{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return int(count), nil
}

// DeleteChunks removes all stored chunks.
func (s *ChunkStorage) DeleteChunks() error {
	if err := s.db.Store().DeleteMatching(&models.DocumentChunk{}, nil); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete chunks: %w", err)
	}
	return nil
}
