package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/common"
	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
)

// modelFallbacks lists Claude models in order of preference. When a model is
// not available to the account (404/not_found), the next one is tried;
// any other error aborts the sequence.
var modelFallbacks = []string{
	"claude-3-5-sonnet-20241022",
	"claude-3-5-sonnet-20240620",
	"claude-3-5-sonnet",
	"claude-3-sonnet-20240229",
	"claude-3-haiku-20240307",
}

// ClaudeService implements the LLMService interface using the Anthropic API.
type ClaudeService struct {
	config *common.ClaudeConfig
	logger arbor.ILogger
	client *anthropic.Client
	models []string
}

// NewClaudeService creates a Claude-backed completion service. The configured
// model, when set, is tried before the built-in fallback list.
func NewClaudeService(claudeConfig *common.ClaudeConfig, logger arbor.ILogger) (*ClaudeService, error) {
	if claudeConfig.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required for Claude service (set via ANTHROPIC_API_KEY, DOCQA_CLAUDE_API_KEY, or claude.api_key in config)")
	}

	client := anthropic.NewClient(
		option.WithAPIKey(claudeConfig.APIKey),
	)

	service := &ClaudeService{
		config: claudeConfig,
		logger: logger,
		client: &client,
		models: modelCandidates(claudeConfig.Model),
	}

	logger.Debug().
		Str("model", service.models[0]).
		Float32("temperature", claudeConfig.Temperature).
		Msg("Claude LLM service initialized")

	return service, nil
}

// modelCandidates builds the ordered, deduplicated list of models to try.
func modelCandidates(configured string) []string {
	candidates := make([]string, 0, len(modelFallbacks)+1)
	seen := make(map[string]bool)

	if configured != "" {
		candidates = append(candidates, configured)
		seen[configured] = true
	}
	for _, m := range modelFallbacks {
		if !seen[m] {
			candidates = append(candidates, m)
			seen[m] = true
		}
	}
	return candidates
}

// Complete generates a response for the given conversation, trying each
// candidate model until one is available.
func (s *ClaudeService) Complete(ctx context.Context, messages []interfaces.Message, systemPrompt string, maxTokens int) (string, error) {
	var lastErr error

	for _, model := range s.models {
		params, err := s.buildParams(model, messages, systemPrompt, maxTokens)
		if err != nil {
			return "", err
		}

		resp, err := s.client.Messages.New(ctx, params)
		if err != nil {
			lastErr = err
			if isModelNotFound(err) {
				s.logger.Debug().Str("model", model).Msg("Claude model not available, trying next fallback")
				continue
			}
			return "", fmt.Errorf("Claude API call failed: %w", err)
		}

		var text strings.Builder
		for _, block := range resp.Content {
			if block.Type == "text" {
				text.WriteString(block.Text)
			}
		}
		if text.Len() == 0 {
			return "", fmt.Errorf("no response generated from Claude API")
		}
		return text.String(), nil
	}

	return "", fmt.Errorf("all Claude models failed, check API key and account access: %w", lastErr)
}

// CompleteStreaming generates a response, delivering text deltas to onChunk
// as they arrive. The model fallback order matches Complete.
func (s *ClaudeService) CompleteStreaming(ctx context.Context, messages []interfaces.Message, systemPrompt string, maxTokens int, onChunk interfaces.StreamFunc) error {
	var lastErr error

	for _, model := range s.models {
		params, err := s.buildParams(model, messages, systemPrompt, maxTokens)
		if err != nil {
			return err
		}

		stream := s.client.Messages.NewStreaming(ctx, params)
		delivered := false
		for stream.Next() {
			event := stream.Current()
			switch eventVariant := event.AsAny().(type) {
			case anthropic.ContentBlockDeltaEvent:
				switch delta := eventVariant.Delta.AsAny().(type) {
				case anthropic.TextDelta:
					delivered = true
					onChunk(delta.Text)
				}
			}
		}

		if err := stream.Err(); err != nil {
			lastErr = err
			// Chunks already delivered cannot be unsent; only fall back
			// when the stream failed before any output.
			if isModelNotFound(err) && !delivered {
				s.logger.Debug().Str("model", model).Msg("Claude model not available for streaming, trying next fallback")
				continue
			}
			return fmt.Errorf("Claude streaming failed: %w", err)
		}

		if !delivered {
			return fmt.Errorf("no content received from Claude stream")
		}
		return nil
	}

	return fmt.Errorf("all Claude models failed for streaming: %w", lastErr)
}

func (s *ClaudeService) buildParams(model string, messages []interfaces.Message, systemPrompt string, maxTokens int) (anthropic.MessageNewParams, error) {
	claudeMessages, err := convertMessagesToClaude(messages)
	if err != nil {
		return anthropic.MessageNewParams{}, err
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		Messages:  claudeMessages,
	}

	if s.config.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(s.config.Temperature))
	}

	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemPrompt},
		}
	}

	return params, nil
}

// Provider returns "claude".
func (s *ClaudeService) Provider() string {
	return string(common.LLMProviderClaude)
}

// Close releases client resources.
func (s *ClaudeService) Close() error {
	s.client = nil
	return nil
}

// convertMessagesToClaude converts []interfaces.Message to the Anthropic
// MessageParam format, preserving chronological order. Unknown roles are
// treated as user messages.
func convertMessagesToClaude(messages []interfaces.Message) ([]anthropic.MessageParam, error) {
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

	claudeMessages := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case "assistant":
			claudeMessages = append(claudeMessages, anthropic.NewAssistantMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		default:
			claudeMessages = append(claudeMessages, anthropic.NewUserMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		}
	}

	return claudeMessages, nil
}

// isModelNotFound reports whether err indicates the requested model does not
// exist or is not accessible to the account.
func isModelNotFound(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
		return true
	}

	return strings.Contains(err.Error(), "not_found")
}
