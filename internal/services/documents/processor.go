package documents

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/common"
	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
	"github.com/draphael123/notebooklm-marketing/internal/models"
	"github.com/draphael123/notebooklm-marketing/internal/services/chunker"
)

// embedBatchSize bounds the texts sent per embedding request.
const embedBatchSize = 100

// Service implements interfaces.DocumentService: it loads the document,
// chunks it, persists the chunks, and when a vector backend is configured,
// embeds and indexes them.
type Service struct {
	loader     *Loader
	chunker    *chunker.Service
	storage    interfaces.ChunkStorage
	embeddings interfaces.EmbeddingService
	vectors    interfaces.VectorStore
	logger     arbor.ILogger
}

// NewService creates a document processing service. embeddings and vectors
// may be nil, in which case processing stops after persisting chunks.
func NewService(
	cfg *common.Config,
	storage interfaces.ChunkStorage,
	embeddings interfaces.EmbeddingService,
	vectors interfaces.VectorStore,
	logger arbor.ILogger,
) *Service {
	return &Service{
		loader:     NewLoader(&cfg.Document, logger),
		chunker:    chunker.NewService(cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap, logger),
		storage:    storage,
		embeddings: embeddings,
		vectors:    vectors,
		logger:     logger,
	}
}

// LoadText resolves the raw document text.
func (s *Service) LoadText(ctx context.Context) (string, error) {
	return s.loader.LoadText(ctx)
}

// Process runs the full pipeline: load, chunk, persist, embed, index.
func (s *Service) Process(ctx context.Context) ([]*models.DocumentChunk, error) {
	text, err := s.LoadText(ctx)
	if err != nil {
		return nil, err
	}

	chunks := s.chunker.Chunk(text)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("document produced no chunks")
	}

	if s.storage != nil {
		if err := s.storage.SaveChunks(chunks); err != nil {
			return nil, fmt.Errorf("failed to persist chunks: %w", err)
		}
	}

	s.logger.Info().
		Int("chunks", len(chunks)).
		Int("document_length", len(text)).
		Msg("Document processed")

	if s.vectors == nil || s.embeddings == nil || !s.embeddings.IsAvailable() {
		s.logger.Debug().Msg("Skipping vector indexing (no backend or embeddings unavailable)")
		return chunks, nil
	}

	if err := s.index(ctx, chunks); err != nil {
		return nil, err
	}
	return chunks, nil
}

// index embeds chunks in batches and upserts them into the vector store.
func (s *Service) index(ctx context.Context, chunks []*models.DocumentChunk) error {
	if err := s.vectors.Init(ctx, s.embeddings.Dimension()); err != nil {
		return fmt.Errorf("failed to initialize vector store: %w", err)
	}

	// Each run replaces the indexed set. Clearing first keeps the store
	// consistent with chunk storage when the document shrinks or re-chunks.
	if err := s.vectors.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear vector store: %w", err)
	}

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}

		vectors, err := s.embeddings.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed chunk batch %d-%d: %w", start, end, err)
		}

		if err := s.vectors.Upsert(ctx, batch, vectors); err != nil {
			return fmt.Errorf("failed to upsert chunk batch %d-%d: %w", start, end, err)
		}

		s.logger.Debug().
			Int("from", start).
			Int("to", end).
			Msg("Chunk batch indexed")
	}

	s.logger.Info().Int("chunks", len(chunks)).Msg("Vector index updated")
	return nil
}
