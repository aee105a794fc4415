package handlers

import (
	"context"

	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
	"github.com/draphael123/notebooklm-marketing/internal/models"
	"github.com/draphael123/notebooklm-marketing/internal/services/ratelimit"
)

// QueryService answers questions against the processed document. Implemented
// by the query orchestrator; narrowed here so handlers can be tested with
// doubles.
type QueryService interface {
	Answer(ctx context.Context, question, clientID string) (*models.QueryResponse, error)
	AnswerStreaming(ctx context.Context, question, clientID string, onChunk interfaces.StreamFunc) (*models.QueryResponse, error)
	SuggestedQuestions() []string
}

// RateLimiter admits or rejects requests per client.
type RateLimiter interface {
	Check(clientID string) ratelimit.Result
	Limit() int
}
