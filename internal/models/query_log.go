package models

import "time"

// Feedback values recorded against a query log entry.
const (
	FeedbackPositive = "positive"
	FeedbackNegative = "negative"
)

// QueryRecord is an analytics record emitted for every answered question.
// Emission is fire-and-forget; failures never affect the response.
type QueryRecord struct {
	ID           string        `json:"id"`
	Question     string        `json:"question"`
	Intent       Intent        `json:"intent"`
	SourcesUsed  []string      `json:"sources_used"`
	ResponseTime time.Duration `json:"response_time"`
	ClientID     string        `json:"client_id,omitempty"`
	Cached       bool          `json:"cached"`
	Feedback     string        `json:"feedback,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}
