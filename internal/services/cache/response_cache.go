// Package cache provides an in-memory TTL cache for query responses, keyed
// by the normalized question.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/common"
	"github.com/draphael123/notebooklm-marketing/internal/models"
)

type entry struct {
	response  *models.QueryResponse
	expiresAt time.Time
}

// ResponseCache stores answered queries for their configured TTL. It is safe
// for concurrent use; insertion is last-write-wins, which is acceptable since
// entries are idempotent per question. When disabled by configuration, Get
// always misses and Put is a no-op.
type ResponseCache struct {
	enabled bool
	ttl     time.Duration
	logger  arbor.ILogger

	mu      sync.Mutex
	entries map[string]entry
}

// NewResponseCache creates a response cache from configuration.
func NewResponseCache(cfg *common.CacheConfig, logger arbor.ILogger) *ResponseCache {
	c := &ResponseCache{
		enabled: cfg.Enabled,
		ttl:     cfg.TTL,
		logger:  logger,
		entries: make(map[string]entry),
	}

	logger.Debug().
		Bool("enabled", cfg.Enabled).
		Dur("ttl", cfg.TTL).
		Msg("Response cache initialized")

	return c
}

// Get returns a copy of the cached response for question, flagged as cached,
// or nil on a miss. Expired entries are treated as absent and evicted.
func (c *ResponseCache) Get(question string) *models.QueryResponse {
	if !c.enabled {
		return nil
	}

	key := cacheKey(question)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}

	response := e.response.Clone()
	response.Cached = true
	return response
}

// Put stores a copy of response for question.
func (c *ResponseCache) Put(question string, response *models.QueryResponse) {
	if !c.enabled || response == nil {
		return
	}

	key := cacheKey(question)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		response:  response.Clone(),
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Clear drops all entries.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of entries currently stored, expired or not.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey normalizes the question (trim, lowercase) and hashes it so keys
// are fixed-length and collision-resistant.
func cacheKey(question string) string {
	normalized := strings.ToLower(strings.TrimSpace(question))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
