// Package ratelimit implements fixed-window request counting per client.
package ratelimit

import (
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/common"
)

// Result is the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

type window struct {
	count   int
	resetAt time.Time
}

// Limiter counts requests per client in fixed windows. The counter increments
// on every allowed check, resets when the window expires, and denies without
// incrementing once the configured maximum is reached. Safe for concurrent
// use. When disabled by configuration every check allows with unbounded
// remaining.
type Limiter struct {
	enabled     bool
	maxRequests int
	windowSize  time.Duration
	logger      arbor.ILogger

	mu      sync.Mutex
	windows map[string]*window
}

// NewLimiter creates a rate limiter from configuration.
func NewLimiter(cfg *common.RateLimitConfig, logger arbor.ILogger) *Limiter {
	l := &Limiter{
		enabled:     cfg.Enabled,
		maxRequests: cfg.MaxRequests,
		windowSize:  cfg.Window,
		logger:      logger,
		windows:     make(map[string]*window),
	}

	logger.Debug().
		Bool("enabled", cfg.Enabled).
		Int("max_requests", cfg.MaxRequests).
		Dur("window", cfg.Window).
		Msg("Rate limiter initialized")

	return l
}

// Check records a request for clientID and reports whether it is allowed.
// ResetAt is stable across calls within the same window.
func (l *Limiter) Check(clientID string) Result {
	if !l.enabled {
		return Result{Allowed: true, Remaining: -1}
	}

	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[clientID]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(l.windowSize)}
		l.windows[clientID] = w
	}

	if w.count >= l.maxRequests {
		return Result{Allowed: false, Remaining: 0, ResetAt: w.resetAt}
	}

	w.count++
	return Result{
		Allowed:   true,
		Remaining: l.maxRequests - w.count,
		ResetAt:   w.resetAt,
	}
}

// Limit returns the configured per-window maximum, or -1 when disabled.
func (l *Limiter) Limit() int {
	if !l.enabled {
		return -1
	}
	return l.maxRequests
}
