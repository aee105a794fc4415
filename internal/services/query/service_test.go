package query

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/common"
	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
	"github.com/draphael123/notebooklm-marketing/internal/models"
	"github.com/draphael123/notebooklm-marketing/internal/services/cache"
	"github.com/draphael123/notebooklm-marketing/internal/services/intent"
)

type fakeRetriever struct {
	chunks []*models.DocumentChunk
	err    error
	calls  int
}

func (f *fakeRetriever) Retrieve(ctx context.Context, question string, questionIntent models.Intent, limit int) ([]*models.DocumentChunk, error) {
	f.calls++
	return f.chunks, f.err
}

type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Complete(ctx context.Context, messages []interfaces.Message, systemPrompt string, maxTokens int) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) CompleteStreaming(ctx context.Context, messages []interfaces.Message, systemPrompt string, maxTokens int, onChunk interfaces.StreamFunc) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	half := len(f.response) / 2
	onChunk(f.response[:half])
	onChunk(f.response[half:])
	return nil
}

func (f *fakeLLM) Provider() string { return "fake" }
func (f *fakeLLM) Close() error     { return nil }

type recordingAnalytics struct {
	mu      sync.Mutex
	records []*models.QueryRecord
}

func (r *recordingAnalytics) Emit(record *models.QueryRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
}

func (r *recordingAnalytics) RecordFeedback(ctx context.Context, recordID, feedback string) error {
	return nil
}

func (r *recordingAnalytics) List(ctx context.Context, since, until time.Time, limit int) ([]*models.QueryRecord, error) {
	return nil, nil
}

func (r *recordingAnalytics) Close() error { return nil }

func (r *recordingAnalytics) last() *models.QueryRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) == 0 {
		return nil
	}
	return r.records[len(r.records)-1]
}

func pricingChunk() *models.DocumentChunk {
	return &models.DocumentChunk{
		ID:      "chunk-0",
		Content: "Pricing: Plan A costs $10 per month.",
		Metadata: models.ChunkMetadata{
			Category:   models.CategoryPricing,
			Topic:      "Plan Pricing",
			IsRelevant: true,
		},
		TokenCount: 12,
	}
}

func newTestService(retriever interfaces.Retriever, llm interfaces.LLMService, analytics interfaces.AnalyticsService) *Service {
	cfg := common.NewDefaultConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.TTL = time.Minute

	logger := arbor.NewLogger()
	return NewService(
		cfg,
		intent.NewClassifier(nil, logger),
		retriever,
		llm,
		cache.NewResponseCache(&cfg.Cache, logger),
		analytics,
		logger,
	)
}

func TestAnswer_EndToEndPricing(t *testing.T) {
	retriever := &fakeRetriever{chunks: []*models.DocumentChunk{pricingChunk()}}
	llm := &fakeLLM{response: "Plan A costs $10 per month."}
	analytics := &recordingAnalytics{}
	s := newTestService(retriever, llm, analytics)

	resp, err := s.Answer(context.Background(), "How much does it cost?", "client-1")
	require.NoError(t, err)

	assert.Equal(t, models.IntentPricing, resp.Intent)
	assert.Equal(t, "Plan A costs $10 per month.", resp.Answer)
	assert.Equal(t, []string{"Plan Pricing"}, resp.Sources)
	assert.NotEmpty(t, resp.RelatedQuestions)
	assert.False(t, resp.Cached)

	record := analytics.last()
	require.NotNil(t, record)
	assert.Equal(t, "How much does it cost?", record.Question)
	assert.Equal(t, models.IntentPricing, record.Intent)
	assert.Equal(t, []string{"Plan Pricing"}, record.SourcesUsed)
	assert.False(t, record.Cached)
}

func TestAnswer_CacheHitSkipsPipeline(t *testing.T) {
	retriever := &fakeRetriever{chunks: []*models.DocumentChunk{pricingChunk()}}
	llm := &fakeLLM{response: "Plan A costs $10 per month."}
	s := newTestService(retriever, llm, &recordingAnalytics{})

	first, err := s.Answer(context.Background(), "How much does it cost?", "client-1")
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := s.Answer(context.Background(), "How much does it cost?", "client-1")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Answer, second.Answer)

	assert.Equal(t, 1, retriever.calls, "cache hit must not retrieve")
	assert.Equal(t, 1, llm.calls, "cache hit must not call the model")
}

func TestAnswer_EmptyQuestion(t *testing.T) {
	s := newTestService(&fakeRetriever{}, &fakeLLM{}, nil)
	_, err := s.Answer(context.Background(), "   ", "client-1")
	assert.Error(t, err)
}

func TestAnswer_RetrieverErrorPropagates(t *testing.T) {
	retriever := &fakeRetriever{err: errors.New("all retrieval paths exhausted")}
	s := newTestService(retriever, &fakeLLM{}, nil)

	_, err := s.Answer(context.Background(), "How much does it cost?", "client-1")
	assert.Error(t, err)
}

func TestAnswer_CompletionErrorNotCached(t *testing.T) {
	retriever := &fakeRetriever{chunks: []*models.DocumentChunk{pricingChunk()}}
	llm := &fakeLLM{err: errors.New("provider unavailable")}
	s := newTestService(retriever, llm, nil)

	_, err := s.Answer(context.Background(), "How much does it cost?", "client-1")
	require.Error(t, err)

	// The failure must not have been cached.
	llm.err = nil
	llm.response = "recovered"
	resp, err := s.Answer(context.Background(), "How much does it cost?", "client-1")
	require.NoError(t, err)
	assert.Equal(t, "recovered", resp.Answer)
	assert.False(t, resp.Cached)
}

func TestAnswer_EmptyTopicFallsBackToDocumentation(t *testing.T) {
	chunk := pricingChunk()
	chunk.Metadata.Topic = ""
	retriever := &fakeRetriever{chunks: []*models.DocumentChunk{chunk}}
	s := newTestService(retriever, &fakeLLM{response: "answer"}, nil)

	resp, err := s.Answer(context.Background(), "How much does it cost?", "client-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Documentation"}, resp.Sources)
}

func TestAnswerStreaming_DeliversChunks(t *testing.T) {
	retriever := &fakeRetriever{chunks: []*models.DocumentChunk{pricingChunk()}}
	llm := &fakeLLM{response: "Plan A costs $10 per month."}
	s := newTestService(retriever, llm, nil)

	var streamed string
	resp, err := s.AnswerStreaming(context.Background(), "How much does it cost?", "client-1", func(chunk string) {
		streamed += chunk
	})
	require.NoError(t, err)
	assert.Equal(t, "Plan A costs $10 per month.", streamed)
	assert.Equal(t, streamed, resp.Answer)
}

func TestSuggestedQuestions(t *testing.T) {
	s := newTestService(&fakeRetriever{}, &fakeLLM{}, nil)

	first := s.SuggestedQuestions()
	assert.NotEmpty(t, first)

	// Caller mutations must not leak into the shared list.
	first[0] = "mutated"
	assert.NotEqual(t, "mutated", s.SuggestedQuestions()[0])
}

func TestRelatedFor_CoversAllIntents(t *testing.T) {
	for _, in := range models.AllIntents() {
		assert.NotEmpty(t, relatedFor(in), "intent %s must have related questions", in)
	}
}
