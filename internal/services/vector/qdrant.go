// Package vector provides nearest-neighbor index backends: a Qdrant REST
// client and a local badgerhold-backed cosine scan. Backend selection is
// configuration; callers depend on interfaces.VectorStore.
package vector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/common"
	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
	"github.com/draphael123/notebooklm-marketing/internal/models"
)

const defaultQdrantTimeout = 15 * time.Second

// QdrantStore is a minimal REST client to Qdrant. It assumes cosine distance
// and creates the collection if missing.
type QdrantStore struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
	logger     arbor.ILogger
}

// NewQdrantStore creates a Qdrant-backed vector store.
func NewQdrantStore(cfg *common.QdrantConfig, logger arbor.ILogger) (*QdrantStore, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("Qdrant URL is required for the qdrant vector backend (set vector.qdrant.url in config)")
	}
	if cfg.Collection == "" {
		return nil, fmt.Errorf("Qdrant collection name is required (set vector.qdrant.collection in config)")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultQdrantTimeout
	}

	return &QdrantStore{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// Init creates the collection if it does not exist. Qdrant returns 200 when
// the collection already exists with the same schema.
func (s *QdrantStore) Init(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid vector dimension %d", dimension)
	}

	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body)
}

// Upsert writes chunk vectors to the collection, keyed by chunk index.
func (s *QdrantStore) Upsert(ctx context.Context, chunks []*models.DocumentChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d != %d", len(chunks), len(vectors))
	}

	points := make([]map[string]any, len(chunks))
	for i, chunk := range chunks {
		points[i] = map[string]any{
			"id":     chunk.Metadata.ChunkIndex,
			"vector": vectors[i],
			"payload": map[string]any{
				"chunk_id":    chunk.ID,
				"content":     chunk.Content,
				"category":    string(chunk.Metadata.Category),
				"program":     string(chunk.Metadata.Program),
				"topic":       chunk.Metadata.Topic,
				"is_relevant": chunk.Metadata.IsRelevant,
				"chunk_index": chunk.Metadata.ChunkIndex,
			},
		}
	}

	body := map[string]any{"points": points}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body)
}

// DeleteAll removes every point from the collection. An empty filter
// matches all points.
func (s *QdrantStore) DeleteAll(ctx context.Context) error {
	body := map[string]any{"filter": map[string]any{}}
	return s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/delete?wait=true", s.url, s.collection), body, nil)
}

// QueryNearest returns the topK closest matches under the filter.
func (s *QdrantStore) QueryNearest(ctx context.Context, vector []float32, topK int, filter *interfaces.ChunkFilter) ([]interfaces.VectorMatch, error) {
	if topK <= 0 {
		topK = 5
	}

	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	if qf := buildQdrantFilter(filter); qf != nil {
		req["filter"] = qf
	}

	var resp struct {
		Result []struct {
			Score   float32        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}

	matches := make([]interfaces.VectorMatch, 0, len(resp.Result))
	for _, r := range resp.Result {
		match := interfaces.VectorMatch{Score: r.Score}
		if v, ok := r.Payload["content"].(string); ok {
			match.Content = v
		}
		if v, ok := r.Payload["category"].(string); ok {
			match.Metadata.Category = models.Category(v)
		}
		if v, ok := r.Payload["program"].(string); ok {
			match.Metadata.Program = models.Program(v)
		}
		if v, ok := r.Payload["topic"].(string); ok {
			match.Metadata.Topic = v
		}
		if v, ok := r.Payload["is_relevant"].(bool); ok {
			match.Metadata.IsRelevant = v
		}
		if v, ok := r.Payload["chunk_index"].(float64); ok {
			match.Metadata.ChunkIndex = int(v)
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// IsAvailable probes the collections endpoint.
func (s *QdrantStore) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/collections", s.url), nil)
	if err != nil {
		return false
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 300
}

// buildQdrantFilter translates a ChunkFilter into Qdrant must clauses.
func buildQdrantFilter(filter *interfaces.ChunkFilter) map[string]any {
	if filter == nil {
		return nil
	}

	var must []map[string]any
	if filter.Category != "" {
		must = append(must, map[string]any{
			"key":   "category",
			"match": map[string]any{"value": string(filter.Category)},
		})
	}
	if filter.Program != "" {
		must = append(must, map[string]any{
			"key":   "program",
			"match": map[string]any{"value": string(filter.Program)},
		})
	}
	if filter.RelevantOnly {
		must = append(must, map[string]any{
			"key":   "is_relevant",
			"match": map[string]any{"value": true},
		})
	}

	if len(must) == 0 {
		return nil
	}
	return map[string]any{"must": must}
}

func (s *QdrantStore) putJSON(ctx context.Context, url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *QdrantStore) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
