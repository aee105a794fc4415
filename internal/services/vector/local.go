package vector

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
	"github.com/draphael123/notebooklm-marketing/internal/models"
	"github.com/draphael123/notebooklm-marketing/internal/storage/badger"
)

// storedVector is a chunk embedding persisted in Badger for the local backend.
type storedVector struct {
	ID       string
	Content  string
	Metadata models.ChunkMetadata
	Vector   []float32
}

// LocalStore keeps embedding vectors in the Badger database and answers
// nearest-neighbor queries with a full cosine scan. Suitable for the single
// small document this pipeline serves; not an ANN index.
type LocalStore struct {
	db        *badger.BadgerDB
	logger    arbor.ILogger
	dimension int
}

// NewLocalStore creates a Badger-backed vector store.
func NewLocalStore(db *badger.BadgerDB, logger arbor.ILogger) *LocalStore {
	return &LocalStore{
		db:     db,
		logger: logger,
	}
}

// Init records the expected vector dimension.
func (s *LocalStore) Init(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid vector dimension %d", dimension)
	}
	s.dimension = dimension
	return nil
}

// Upsert replaces stored vectors for the given chunks.
func (s *LocalStore) Upsert(ctx context.Context, chunks []*models.DocumentChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d != %d", len(chunks), len(vectors))
	}

	for i, chunk := range chunks {
		if s.dimension > 0 && len(vectors[i]) != s.dimension {
			return fmt.Errorf("vector for chunk %s has dimension %d, expected %d", chunk.ID, len(vectors[i]), s.dimension)
		}
		sv := &storedVector{
			ID:       chunk.ID,
			Content:  chunk.Content,
			Metadata: chunk.Metadata,
			Vector:   vectors[i],
		}
		if err := s.db.Store().Upsert(sv.ID, sv); err != nil {
			return fmt.Errorf("failed to store vector for chunk %s: %w", chunk.ID, err)
		}
	}

	s.logger.Debug().Int("count", len(chunks)).Msg("Vectors stored")
	return nil
}

// QueryNearest scans all stored vectors and returns the topK by cosine
// similarity, honoring the metadata filter.
func (s *LocalStore) QueryNearest(ctx context.Context, vector []float32, topK int, filter *interfaces.ChunkFilter) ([]interfaces.VectorMatch, error) {
	if topK <= 0 {
		topK = 5
	}

	var stored []storedVector
	if err := s.db.Store().Find(&stored, nil); err != nil {
		return nil, fmt.Errorf("failed to load stored vectors: %w", err)
	}
	if len(stored) == 0 {
		return nil, fmt.Errorf("no vectors stored, run document processing first")
	}

	matches := make([]interfaces.VectorMatch, 0, len(stored))
	for _, sv := range stored {
		if !matchesFilter(&sv.Metadata, filter) {
			continue
		}
		matches = append(matches, interfaces.VectorMatch{
			Content:  sv.Content,
			Metadata: sv.Metadata,
			Score:    cosineSimilarity(vector, sv.Vector),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// IsAvailable reports whether any vectors are stored.
func (s *LocalStore) IsAvailable(ctx context.Context) bool {
	count, err := s.db.Store().Count(&storedVector{}, nil)
	return err == nil && count > 0
}

// DeleteAll removes all stored vectors.
func (s *LocalStore) DeleteAll(ctx context.Context) error {
	if err := s.db.Store().DeleteMatching(&storedVector{}, nil); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete stored vectors: %w", err)
	}
	return nil
}

func matchesFilter(meta *models.ChunkMetadata, filter *interfaces.ChunkFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Category != "" && meta.Category != filter.Category {
		return false
	}
	if filter.Program != "" && meta.Program != filter.Program {
		return false
	}
	if filter.RelevantOnly && !meta.IsRelevant {
		return false
	}
	return true
}

// cosineSimilarity returns the cosine of the angle between a and b, or 0 for
// mismatched or zero-magnitude vectors.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
