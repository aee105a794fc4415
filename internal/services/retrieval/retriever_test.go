package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/common"
	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
	"github.com/draphael123/notebooklm-marketing/internal/models"
)

type fakeDocuments struct {
	text string
	err  error
}

func (f *fakeDocuments) LoadText(ctx context.Context) (string, error) {
	return f.text, f.err
}

func (f *fakeDocuments) Process(ctx context.Context) ([]*models.DocumentChunk, error) {
	return nil, errors.New("not implemented")
}

type fakeEmbeddings struct {
	vector []float32
	err    error
}

func (f *fakeEmbeddings) Embed(ctx context.Context, text string) ([]float32, error) {
	return f.vector, f.err
}

func (f *fakeEmbeddings) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEmbeddings) ModelName() string { return "fake" }
func (f *fakeEmbeddings) Dimension() int    { return 3 }
func (f *fakeEmbeddings) IsAvailable() bool { return f.err == nil || f.vector != nil }

type fakeVectorStore struct {
	matches    []interfaces.VectorMatch
	err        error
	lastFilter *interfaces.ChunkFilter
}

func (f *fakeVectorStore) Init(ctx context.Context, dimension int) error { return nil }

func (f *fakeVectorStore) Upsert(ctx context.Context, chunks []*models.DocumentChunk, vectors [][]float32) error {
	return nil
}

func (f *fakeVectorStore) DeleteAll(ctx context.Context) error { return nil }

func (f *fakeVectorStore) QueryNearest(ctx context.Context, vector []float32, topK int, filter *interfaces.ChunkFilter) ([]interfaces.VectorMatch, error) {
	f.lastFilter = filter
	return f.matches, f.err
}

func (f *fakeVectorStore) IsAvailable(ctx context.Context) bool { return f.err == nil }

func newTestService(mode common.SearchMode, docs *fakeDocuments, emb interfaces.EmbeddingService, vec interfaces.VectorStore) *Service {
	cfg := &common.SearchConfig{
		Mode:             mode,
		MaxContextTokens: 1000,
		RetrievalLimit:   5,
	}
	return NewService(cfg, docs, emb, vec, arbor.NewLogger())
}

func TestRetrieve_SimpleSmallDocument(t *testing.T) {
	docs := &fakeDocuments{text: "Pricing: Plan A costs $10.\n\nAvailability: we operate nationwide."}
	s := newTestService(common.SearchModeSimple, docs, nil, nil)

	chunks, err := s.Retrieve(context.Background(), "How much does it cost?", models.IntentPricing, 5)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "full-document", chunks[0].ID)
	assert.Equal(t, "Full Document", chunks[0].Metadata.Topic)
	assert.True(t, chunks[0].Metadata.IsRelevant)
	assert.Equal(t, docs.text, chunks[0].Content)
}

func TestRetrieve_SimpleLargeDocumentSections(t *testing.T) {
	var paragraphs []string
	for i := 0; i < 40; i++ {
		paragraphs = append(paragraphs, strings.Repeat("somewhat lengthy paragraph text ", 40))
	}
	docs := &fakeDocuments{text: strings.Join(paragraphs, "\n\n")}

	cfg := &common.SearchConfig{
		Mode:             common.SearchModeSimple,
		MaxContextTokens: 2000,
		RetrievalLimit:   5,
	}
	s := NewService(cfg, docs, nil, nil, arbor.NewLogger())

	chunks, err := s.Retrieve(context.Background(), "anything", models.IntentGeneral, 5)
	require.NoError(t, err)
	// Section count is driven by document size, exempt from the limit.
	require.Greater(t, len(chunks), 5)
	for i, c := range chunks {
		assert.Equal(t, i, c.Metadata.ChunkIndex)
		assert.Contains(t, c.ID, "simple-chunk-")
	}
}

func TestRetrieve_SimpleLoadFailureUsesFallback(t *testing.T) {
	docs := &fakeDocuments{err: errors.New("document not found")}
	s := newTestService(common.SearchModeSimple, docs, nil, nil)

	chunks, err := s.Retrieve(context.Background(), "How much?", models.IntentPricing, 5)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "pricing-1", chunks[0].ID)
	assert.Equal(t, models.CategoryPricing, chunks[0].Metadata.Category)
}

func TestRetrieve_VectorMapsMatches(t *testing.T) {
	docs := &fakeDocuments{text: "doc"}
	emb := &fakeEmbeddings{vector: []float32{1, 0, 0}}
	vec := &fakeVectorStore{matches: []interfaces.VectorMatch{
		{
			Content: "Plans start at $199 per month.",
			Metadata: models.ChunkMetadata{
				Category:   models.CategoryPricing,
				Topic:      "TRT Pricing",
				IsRelevant: true,
				ChunkIndex: 3,
			},
			Score: 0.92,
		},
	}}
	s := newTestService(common.SearchModeRAG, docs, emb, vec)

	chunks, err := s.Retrieve(context.Background(), "How much does it cost?", models.IntentPricing, 5)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "rag-chunk-0", chunks[0].ID)
	assert.Equal(t, "Plans start at $199 per month.", chunks[0].Content)
	assert.Equal(t, models.CategoryPricing, chunks[0].Metadata.Category)
	assert.Greater(t, chunks[0].TokenCount, 0)

	require.NotNil(t, vec.lastFilter)
	assert.Equal(t, models.CategoryPricing, vec.lastFilter.Category)
	assert.True(t, vec.lastFilter.RelevantOnly)
}

func TestRetrieve_VectorQueryFailureFallsBackToSimple(t *testing.T) {
	docs := &fakeDocuments{text: "the whole document"}
	emb := &fakeEmbeddings{vector: []float32{1, 0, 0}}
	vec := &fakeVectorStore{err: errors.New("index unreachable")}
	s := newTestService(common.SearchModeRAG, docs, emb, vec)

	chunks, err := s.Retrieve(context.Background(), "anything", models.IntentGeneral, 5)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "full-document", chunks[0].ID)
}

func TestRetrieve_VectorWithoutBackendFallsBackToSimple(t *testing.T) {
	docs := &fakeDocuments{text: "the whole document"}
	s := newTestService(common.SearchModeRAG, docs, nil, nil)

	chunks, err := s.Retrieve(context.Background(), "anything", models.IntentGeneral, 5)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "full-document", chunks[0].ID)
}

func TestRetrieve_HybridMergesBothBranches(t *testing.T) {
	docs := &fakeDocuments{text: "Unique simple branch content about programs."}
	emb := &fakeEmbeddings{vector: []float32{1, 0, 0}}
	vec := &fakeVectorStore{matches: []interfaces.VectorMatch{
		{Content: "Vector branch content about pricing.", Metadata: models.ChunkMetadata{Category: models.CategoryPricing, IsRelevant: true}},
	}}
	s := newTestService(common.SearchModeHybrid, docs, emb, vec)

	chunks, err := s.Retrieve(context.Background(), "How much?", models.IntentGeneral, 5)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
}

func TestIntentFilter(t *testing.T) {
	assert.Equal(t, models.CategoryPricing, intentFilter(models.IntentPricing).Category)
	assert.Equal(t, models.CategoryAvailability, intentFilter(models.IntentAvailability).Category)
	assert.Equal(t, models.CategoryProcess, intentFilter(models.IntentProcess).Category)
	assert.Equal(t, models.Category(""), intentFilter(models.IntentGeneral).Category)
	assert.True(t, intentFilter(models.IntentGeneral).RelevantOnly)
}

func TestMergeChunks(t *testing.T) {
	long := strings.Repeat("shared prefix text ", 10)

	relevant := &models.DocumentChunk{Content: long + "A", Metadata: models.ChunkMetadata{IsRelevant: true}}
	notRelevant := &models.DocumentChunk{Content: long + "B", Metadata: models.ChunkMetadata{IsRelevant: false}}
	other := &models.DocumentChunk{Content: "entirely different", Metadata: models.ChunkMetadata{IsRelevant: false}}

	t.Run("prefers relevant duplicate regardless of order", func(t *testing.T) {
		merged := mergeChunks([]*models.DocumentChunk{notRelevant}, []*models.DocumentChunk{relevant, other}, 10)
		require.Len(t, merged, 2)
		assert.True(t, merged[0].Metadata.IsRelevant)
	})

	t.Run("keeps first of equal duplicates", func(t *testing.T) {
		merged := mergeChunks([]*models.DocumentChunk{relevant}, []*models.DocumentChunk{relevant}, 10)
		assert.Len(t, merged, 1)
	})

	t.Run("truncates to limit", func(t *testing.T) {
		a := &models.DocumentChunk{Content: "aaa"}
		b := &models.DocumentChunk{Content: "bbb"}
		c := &models.DocumentChunk{Content: "ccc"}
		merged := mergeChunks([]*models.DocumentChunk{a, b}, []*models.DocumentChunk{c}, 2)
		assert.Len(t, merged, 2)
	})
}
