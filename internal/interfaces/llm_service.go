package interfaces

import (
	"context"
)

// Message represents a single message in a completion conversation
type Message struct {
	// Role identifies the message sender: "user" or "assistant"
	Role string

	// Content contains the text content of the message
	Content string
}

// StreamFunc receives incremental text fragments during a streaming completion.
type StreamFunc func(chunk string)

// LLMService defines the interface for text-completion operations.
// Implementations wrap a specific provider (Anthropic Claude, Google Gemini);
// provider selection is configuration, not logic, so retrieval and
// classification code must work unchanged with any implementation.
type LLMService interface {
	// Complete generates a response for the given conversation.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - messages: Conversation in chronological order
	//   - systemPrompt: System instruction prepended to the conversation
	//   - maxTokens: Upper bound on generated tokens
	//
	// Returns:
	//   - string: Generated text
	//   - error: Error if the completion fails after provider-side retries
	Complete(ctx context.Context, messages []Message, systemPrompt string, maxTokens int) (string, error)

	// CompleteStreaming generates a response, delivering text fragments to
	// onChunk as they arrive. onChunk is called from the requesting
	// goroutine; it must not block for long.
	CompleteStreaming(ctx context.Context, messages []Message, systemPrompt string, maxTokens int, onChunk StreamFunc) error

	// Provider returns the configured provider name ("claude", "gemini").
	Provider() string

	// Close releases provider client resources.
	Close() error
}
