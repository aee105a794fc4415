package retrieval

import (
	"context"
	"sync"

	"github.com/draphael123/notebooklm-marketing/internal/models"
)

// dedupPrefixLen is the number of leading content characters used as the
// merge key. Chunks sharing a prefix this long are treated as duplicates.
const dedupPrefixLen = 100

// retrieveHybrid runs vector and simple retrieval concurrently and merges
// the results. Each branch is independently fault-tolerant; a branch that
// panics or degrades simply contributes what it can. The merge deduplicates
// by content prefix, preferring the relevance-flagged duplicate, and
// truncates to limit.
func (s *Service) retrieveHybrid(ctx context.Context, question string, intent models.Intent, limit int) []*models.DocumentChunk {
	var vectorChunks, simpleChunks []*models.DocumentChunk

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		vectorChunks = s.retrieveVector(ctx, question, intent, limit)
	}()
	go func() {
		defer wg.Done()
		simpleChunks = s.retrieveSimple(ctx, intent)
	}()
	wg.Wait()

	return mergeChunks(vectorChunks, simpleChunks, limit)
}

// mergeChunks combines both result sets in order, deduplicating by a
// fixed-length content prefix. When both a relevant and a non-relevant chunk
// share a key, the relevant one wins regardless of arrival order.
func mergeChunks(vectorChunks, simpleChunks []*models.DocumentChunk, limit int) []*models.DocumentChunk {
	combined := make([]*models.DocumentChunk, 0, len(vectorChunks)+len(simpleChunks))
	combined = append(combined, vectorChunks...)
	combined = append(combined, simpleChunks...)

	seen := make(map[string]int, len(combined))
	merged := make([]*models.DocumentChunk, 0, len(combined))

	for _, chunk := range combined {
		key := dedupKey(chunk.Content)
		if pos, ok := seen[key]; ok {
			if chunk.Metadata.IsRelevant && !merged[pos].Metadata.IsRelevant {
				merged[pos] = chunk
			}
			continue
		}
		seen[key] = len(merged)
		merged = append(merged, chunk)
	}

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

func dedupKey(content string) string {
	if len(content) > dedupPrefixLen {
		return content[:dedupPrefixLen]
	}
	return content
}
