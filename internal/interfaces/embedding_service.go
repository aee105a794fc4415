package interfaces

import "context"

// EmbeddingService generates vector embeddings
type EmbeddingService interface {
	// Embed generates an embedding for raw text
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one request
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Get model information
	ModelName() string
	Dimension() int

	// IsAvailable reports whether the service is configured and usable
	IsAvailable() bool
}
