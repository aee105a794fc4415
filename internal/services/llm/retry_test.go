package llm

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsRateLimitError(t *testing.T) {
	assert.False(t, IsRateLimitError(nil))
	assert.False(t, IsRateLimitError(errors.New("connection refused")))
	assert.True(t, IsRateLimitError(errors.New("Error 429, too many requests")))
	assert.True(t, IsRateLimitError(errors.New("Status: RESOURCE_EXHAUSTED")))
	assert.True(t, IsRateLimitError(errors.New("quota exceeded for model")))
}

func TestExtractRetryDelay(t *testing.T) {
	assert.Equal(t, time.Duration(0), ExtractRetryDelay(nil))
	assert.Equal(t, time.Duration(0), ExtractRetryDelay(errors.New("no delay here")))

	err := errors.New("Error 429, Message: exhausted. Please retry in 45.5s., Status: RESOURCE_EXHAUSTED")
	assert.Equal(t, time.Duration(45.5*float64(time.Second)), ExtractRetryDelay(err))

	err = errors.New("retryDelay: 10s")
	assert.Equal(t, 10*time.Second, ExtractRetryDelay(err))
}

func TestCalculateBackoff(t *testing.T) {
	cfg := &RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    5 * time.Second,
		MaxBackoff:        60 * time.Second,
		BackoffMultiplier: 2.0,
	}

	assert.Equal(t, 5*time.Second, cfg.CalculateBackoff(0, 0))
	assert.Equal(t, 10*time.Second, cfg.CalculateBackoff(1, 0))
	assert.Equal(t, 20*time.Second, cfg.CalculateBackoff(2, 0))

	// API-provided delay replaces the base, with a small buffer.
	assert.Equal(t, 31*time.Second, cfg.CalculateBackoff(0, 30*time.Second))

	// Capped at MaxBackoff.
	assert.Equal(t, 60*time.Second, cfg.CalculateBackoff(5, 0))
}

func TestModelCandidates(t *testing.T) {
	t.Run("no configured model uses fallback list", func(t *testing.T) {
		got := modelCandidates("")
		assert.Equal(t, modelFallbacks, got)
	})

	t.Run("configured model goes first", func(t *testing.T) {
		got := modelCandidates("claude-custom")
		assert.Equal(t, "claude-custom", got[0])
		assert.Len(t, got, len(modelFallbacks)+1)
	})

	t.Run("configured model already in list is not duplicated", func(t *testing.T) {
		got := modelCandidates(modelFallbacks[1])
		assert.Equal(t, modelFallbacks[1], got[0])
		assert.Len(t, got, len(modelFallbacks))
	})
}
