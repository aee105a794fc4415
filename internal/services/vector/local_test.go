package vector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/common"
	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
	"github.com/draphael123/notebooklm-marketing/internal/models"
	"github.com/draphael123/notebooklm-marketing/internal/storage/badger"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	logger := arbor.NewLogger()
	db, err := badger.NewBadgerDB(logger, &common.BadgerConfig{
		Path: t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewLocalStore(db, logger)
}

func testChunk(id string, index int, category models.Category, relevant bool) *models.DocumentChunk {
	return &models.DocumentChunk{
		ID:      id,
		Content: "content of " + id,
		Metadata: models.ChunkMetadata{
			Category:   category,
			Topic:      id,
			IsRelevant: relevant,
			ChunkIndex: index,
		},
		TokenCount: 10,
	}
}

func TestLocalStore_UpsertAndQuery(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Init(ctx, 3))
	assert.False(t, s.IsAvailable(ctx))

	chunks := []*models.DocumentChunk{
		testChunk("chunk-0", 0, models.CategoryPricing, true),
		testChunk("chunk-1", 1, models.CategoryAvailability, true),
		testChunk("chunk-2", 2, models.CategoryGeneral, false),
	}
	vectors := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0.9, 0.1, 0},
	}
	require.NoError(t, s.Upsert(ctx, chunks, vectors))
	assert.True(t, s.IsAvailable(ctx))

	matches, err := s.QueryNearest(ctx, []float32{1, 0, 0}, 2, nil)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "content of chunk-0", matches[0].Content)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestLocalStore_QueryHonorsFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Init(ctx, 3))
	chunks := []*models.DocumentChunk{
		testChunk("chunk-0", 0, models.CategoryPricing, true),
		testChunk("chunk-1", 1, models.CategoryAvailability, true),
		testChunk("chunk-2", 2, models.CategoryPricing, false),
	}
	vectors := [][]float32{
		{1, 0, 0},
		{1, 0, 0},
		{1, 0, 0},
	}
	require.NoError(t, s.Upsert(ctx, chunks, vectors))

	matches, err := s.QueryNearest(ctx, []float32{1, 0, 0}, 10, &interfaces.ChunkFilter{
		Category:     models.CategoryPricing,
		RelevantOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, models.CategoryPricing, matches[0].Metadata.Category)
	assert.True(t, matches[0].Metadata.IsRelevant)
}

func TestLocalStore_DeleteAllClearsIndex(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Init(ctx, 3))
	chunks := []*models.DocumentChunk{
		testChunk("chunk-0", 0, models.CategoryPricing, true),
		testChunk("chunk-1", 1, models.CategoryAvailability, true),
	}
	require.NoError(t, s.Upsert(ctx, chunks, [][]float32{{1, 0, 0}, {0, 1, 0}}))

	require.NoError(t, s.DeleteAll(ctx))
	assert.False(t, s.IsAvailable(ctx))

	// Re-index a smaller set; the dropped chunk must not come back.
	require.NoError(t, s.Upsert(ctx, chunks[:1], [][]float32{{1, 0, 0}}))
	matches, err := s.QueryNearest(ctx, []float32{0, 1, 0}, 10, nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "content of chunk-0", matches[0].Content)
}

func TestLocalStore_DimensionMismatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Init(ctx, 3))
	err := s.Upsert(ctx, []*models.DocumentChunk{testChunk("chunk-0", 0, models.CategoryGeneral, true)}, [][]float32{{1, 0}})
	assert.Error(t, err)
}

func TestLocalStore_QueryEmpty(t *testing.T) {
	s := newTestStore(t)
	_, err := s.QueryNearest(context.Background(), []float32{1, 0, 0}, 5, nil)
	assert.Error(t, err)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{1, 0}), 1e-6)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-6)
	assert.Equal(t, float32(0), cosineSimilarity([]float32{1, 0}, []float32{1}))
	assert.Equal(t, float32(0), cosineSimilarity([]float32{0, 0}, []float32{0, 0}))
	assert.Equal(t, float32(0), cosineSimilarity(nil, nil))
}
