// Package query orchestrates answering a question: cache lookup, intent
// classification, retrieval, completion, and response assembly, with a
// fire-and-forget analytics record per answered query.
package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/common"
	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
	"github.com/draphael123/notebooklm-marketing/internal/models"
	"github.com/draphael123/notebooklm-marketing/internal/services/cache"
	"github.com/draphael123/notebooklm-marketing/internal/services/intent"
)

// Service is the query orchestrator.
type Service struct {
	classifier *intent.Classifier
	retriever  interfaces.Retriever
	llm        interfaces.LLMService
	cache      *cache.ResponseCache
	analytics  interfaces.AnalyticsService

	retrievalLimit    int
	maxResponseTokens int
	logger            arbor.ILogger
}

// NewService creates the orchestrator. analytics may be nil, in which case
// no records are emitted.
func NewService(
	cfg *common.Config,
	classifier *intent.Classifier,
	retriever interfaces.Retriever,
	llm interfaces.LLMService,
	responseCache *cache.ResponseCache,
	analytics interfaces.AnalyticsService,
	logger arbor.ILogger,
) *Service {
	return &Service{
		classifier:        classifier,
		retriever:         retriever,
		llm:               llm,
		cache:             responseCache,
		analytics:         analytics,
		retrievalLimit:    cfg.Search.RetrievalLimit,
		maxResponseTokens: cfg.LLM.MaxResponseTokens,
		logger:            logger,
	}
}

// Answer produces a response for the question. Rate limiting is the caller's
// responsibility; by the time this runs the request has been admitted.
func (s *Service) Answer(ctx context.Context, question, clientID string) (*models.QueryResponse, error) {
	return s.answer(ctx, question, clientID, nil)
}

// AnswerStreaming produces a response, delivering answer fragments to
// onChunk as they are generated. The returned response carries the complete
// answer. Streamed answers are not cached since the CTA suffix and assembly
// happen after generation completes.
func (s *Service) AnswerStreaming(ctx context.Context, question, clientID string, onChunk interfaces.StreamFunc) (*models.QueryResponse, error) {
	return s.answer(ctx, question, clientID, onChunk)
}

func (s *Service) answer(ctx context.Context, question, clientID string, onChunk interfaces.StreamFunc) (*models.QueryResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question cannot be empty")
	}

	startTime := time.Now()

	if cached := s.cache.Get(question); cached != nil {
		s.logger.Debug().Str("question", question).Msg("Cache hit")
		if onChunk != nil {
			onChunk(cached.Answer)
		}
		s.emit(question, cached.Intent, cached.Sources, clientID, true, startTime)
		return cached, nil
	}

	questionIntent := s.classifier.Classify(ctx, question)

	chunks, err := s.retriever.Retrieve(ctx, question, questionIntent, s.retrievalLimit)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	contexts := make([]string, len(chunks))
	sources := make([]string, len(chunks))
	for i, chunk := range chunks {
		contexts[i] = chunk.Content
		sources[i] = chunk.Metadata.Topic
		if sources[i] == "" {
			sources[i] = "Documentation"
		}
	}

	messages := []interfaces.Message{
		{Role: "user", Content: buildPromptWithContext(question, contexts)},
	}

	var answer string
	if onChunk != nil {
		var builder strings.Builder
		err = s.llm.CompleteStreaming(ctx, messages, answerSystemPrompt, s.maxResponseTokens, func(chunk string) {
			builder.WriteString(chunk)
			onChunk(chunk)
		})
		answer = builder.String()
	} else {
		answer, err = s.llm.Complete(ctx, messages, answerSystemPrompt, s.maxResponseTokens)
	}
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	cta := ctaText(questionIntent)
	if cta != "" {
		answer = answer + "\n\n" + cta
	}

	response := &models.QueryResponse{
		Answer:           answer,
		Sources:          sources,
		RelatedQuestions: relatedFor(questionIntent),
		Intent:           questionIntent,
		CTA:              cta,
		Cached:           false,
	}

	if onChunk == nil {
		s.cache.Put(question, response)
	}

	s.emit(question, questionIntent, sources, clientID, false, startTime)

	s.logger.Debug().
		Str("intent", string(questionIntent)).
		Int("chunks", len(chunks)).
		Dur("duration", time.Since(startTime)).
		Msg("Query answered")

	return response, nil
}

// emit sends an analytics record. Emission never blocks or fails the caller.
func (s *Service) emit(question string, questionIntent models.Intent, sources []string, clientID string, cached bool, startTime time.Time) {
	if s.analytics == nil {
		return
	}
	s.analytics.Emit(&models.QueryRecord{
		Question:     question,
		Intent:       questionIntent,
		SourcesUsed:  sources,
		ResponseTime: time.Since(startTime),
		ClientID:     clientID,
		Cached:       cached,
	})
}
