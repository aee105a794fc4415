package vector

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/common"
	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
	"github.com/draphael123/notebooklm-marketing/internal/storage/badger"
)

// NewVectorStore creates the configured vector store backend. Returns nil
// (with no error) when the backend is "none"; callers treat a nil store as
// vector search unavailable.
func NewVectorStore(cfg *common.VectorConfig, db *badger.BadgerDB, logger arbor.ILogger) (interfaces.VectorStore, error) {
	switch cfg.Backend {
	case common.VectorBackendNone, "":
		logger.Debug().Msg("No vector backend configured")
		return nil, nil

	case common.VectorBackendQdrant:
		return NewQdrantStore(&cfg.Qdrant, logger)

	case common.VectorBackendLocal:
		if db == nil {
			return nil, fmt.Errorf("local vector backend requires badger storage")
		}
		return NewLocalStore(db, logger), nil

	default:
		return nil, fmt.Errorf("unsupported vector backend '%s': must be 'none', 'qdrant', or 'local'", cfg.Backend)
	}
}
