// Package embeddings wraps the OpenAI embeddings API. Requests are paced
// against provider quotas and retried with bounded exponential backoff on
// transient failure.
package embeddings

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/draphael123/notebooklm-marketing/internal/common"
)

const defaultModel = "text-embedding-3-small"

// Service generates embedding vectors via the OpenAI API.
type Service struct {
	config  *common.EmbeddingsConfig
	logger  arbor.ILogger
	client  *openai.Client
	limiter *rate.Limiter
}

// NewService creates an embeddings service. When no API key is configured the
// service is created disabled: IsAvailable reports false and Embed calls fail.
func NewService(cfg *common.EmbeddingsConfig, logger arbor.ILogger) *Service {
	s := &Service{
		config: cfg,
		logger: logger,
	}

	if cfg.Model == "" {
		cfg.Model = defaultModel
	}

	if cfg.APIKey != "" {
		s.client = openai.NewClient(cfg.APIKey)
	}

	if cfg.RequestsPerSec > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1)
	}

	logger.Debug().
		Str("model", cfg.Model).
		Int("dimension", cfg.Dimension).
		Bool("available", s.client != nil).
		Msg("Embeddings service initialized")

	return s
}

// Embed returns the embedding vector for text.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch returns one embedding vector per input text, in input order.
// Transient failures are retried up to the configured attempt count.
func (s *Service) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if s.client == nil {
		return nil, fmt.Errorf("embeddings service is not configured (set OPENAI_API_KEY or embeddings.api_key)")
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("texts cannot be empty for embedding generation")
	}

	request := openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(s.config.Model),
	}

	var lastErr error
	attempts := s.config.MaxRetries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			s.logger.Warn().
				Int("attempt", attempt+1).
				Dur("backoff", backoff).
				Err(lastErr).
				Msg("Retrying embedding request")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := s.client.CreateEmbeddings(ctx, request)
		if err != nil {
			lastErr = err
			if isTransient(err) {
				continue
			}
			return nil, fmt.Errorf("embedding request failed: %w", err)
		}

		if len(resp.Data) != len(texts) {
			return nil, fmt.Errorf("embedding response has %d vectors for %d inputs", len(resp.Data), len(texts))
		}

		vectors := make([][]float32, len(resp.Data))
		for _, d := range resp.Data {
			vectors[d.Index] = d.Embedding
		}
		return vectors, nil
	}

	return nil, fmt.Errorf("embedding request failed after %d attempts: %w", attempts, lastErr)
}

// ModelName returns the configured embedding model.
func (s *Service) ModelName() string {
	return s.config.Model
}

// Dimension returns the expected vector dimension.
func (s *Service) Dimension() int {
	return s.config.Dimension
}

// IsAvailable reports whether the service can issue requests.
func (s *Service) IsAvailable() bool {
	return s.client != nil
}

// isTransient reports whether an embedding error is worth retrying.
func isTransient(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "500") ||
		strings.Contains(msg, "502") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "connection reset")
}
