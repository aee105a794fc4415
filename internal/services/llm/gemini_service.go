package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"google.golang.org/genai"

	"github.com/draphael123/notebooklm-marketing/internal/common"
	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
)

// GeminiService implements the LLMService interface using Google Gemini.
type GeminiService struct {
	config *common.GeminiConfig
	logger arbor.ILogger
	client *genai.Client
	retry  *RetryConfig
}

// NewGeminiService creates a Gemini-backed completion service.
func NewGeminiService(geminiConfig *common.GeminiConfig, logger arbor.ILogger) (*GeminiService, error) {
	if geminiConfig.APIKey == "" {
		return nil, fmt.Errorf("Google API key is required for Gemini service (set via GEMINI_API_KEY, DOCQA_GEMINI_API_KEY, or gemini.api_key in config)")
	}

	if geminiConfig.Model == "" {
		geminiConfig.Model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  geminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	service := &GeminiService{
		config: geminiConfig,
		logger: logger,
		client: client,
		retry:  NewDefaultRetryConfig(),
	}

	logger.Debug().
		Str("model", geminiConfig.Model).
		Float32("temperature", geminiConfig.Temperature).
		Msg("Gemini LLM service initialized")

	return service, nil
}

// Complete generates a response for the given conversation. Rate-limited
// requests are retried with backoff per the retry configuration.
func (s *GeminiService) Complete(ctx context.Context, messages []interfaces.Message, systemPrompt string, maxTokens int) (string, error) {
	contents, config, err := s.buildRequest(messages, systemPrompt, maxTokens)
	if err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 0; attempt <= s.retry.MaxRetries; attempt++ {
		resp, err := s.client.Models.GenerateContent(ctx, s.config.Model, contents, config)
		if err == nil {
			return extractText(resp)
		}

		lastErr = err
		if !IsRateLimitError(err) {
			return "", fmt.Errorf("Gemini API call failed: %w", err)
		}

		backoff := s.retry.CalculateBackoff(attempt, ExtractRetryDelay(err))
		s.logger.Warn().
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Msg("Gemini rate limited, backing off")

		if err := sleepContext(ctx, backoff); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("Gemini API call failed after %d retries: %w", s.retry.MaxRetries, lastErr)
}

// CompleteStreaming generates a response, delivering text fragments to
// onChunk as they arrive.
func (s *GeminiService) CompleteStreaming(ctx context.Context, messages []interfaces.Message, systemPrompt string, maxTokens int, onChunk interfaces.StreamFunc) error {
	contents, config, err := s.buildRequest(messages, systemPrompt, maxTokens)
	if err != nil {
		return err
	}

	delivered := false
	for resp, err := range s.client.Models.GenerateContentStream(ctx, s.config.Model, contents, config) {
		if err != nil {
			return fmt.Errorf("Gemini streaming failed: %w", err)
		}
		text, extractErr := extractText(resp)
		if extractErr != nil {
			continue
		}
		delivered = true
		onChunk(text)
	}

	if !delivered {
		return fmt.Errorf("no content received from Gemini stream")
	}
	return nil
}

func (s *GeminiService) buildRequest(messages []interfaces.Message, systemPrompt string, maxTokens int) ([]*genai.Content, *genai.GenerateContentConfig, error) {
	contents, err := convertMessagesToGemini(messages)
	if err != nil {
		return nil, nil, err
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(s.config.Temperature),
		MaxOutputTokens: int32(maxTokens),
	}
	if systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	return contents, config, nil
}

// Provider returns "gemini".
func (s *GeminiService) Provider() string {
	return string(common.LLMProviderGemini)
}

// Close releases client resources.
func (s *GeminiService) Close() error {
	s.client = nil
	return nil
}

// convertMessagesToGemini converts []interfaces.Message to Gemini Content
// format, preserving chronological order. Unknown roles are treated as user
// messages.
func convertMessagesToGemini(messages []interfaces.Message) ([]*genai.Content, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("messages cannot be empty")
	}

	hasUser := false
	for _, msg := range messages {
		if msg.Role == "user" {
			hasUser = true
			break
		}
	}
	if !hasUser {
		return nil, fmt.Errorf("at least one message must have role 'user'")
	}

	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		role := genai.RoleUser
		if msg.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
		})
	}

	return contents, nil
}

// extractText collects text parts from the first candidate carrying any.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	var text strings.Builder
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			if text.Len() > 0 {
				break
			}
		}
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("no response generated from chat model")
	}
	return text.String(), nil
}
