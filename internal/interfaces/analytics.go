package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/draphael123/notebooklm-marketing/internal/models"
)

// ErrRecordNotFound is returned by QueryLogStorage.GetRecord when no record
// exists with the given ID.
var ErrRecordNotFound = errors.New("query record not found")

// QueryLogStorage persists analytics records
type QueryLogStorage interface {
	SaveRecord(record *models.QueryRecord) error
	GetRecord(id string) (*models.QueryRecord, error)
	ListRecords(since, until time.Time, limit int) ([]*models.QueryRecord, error)
}

// AnalyticsService receives query records. Emit is a one-way send: it never
// blocks the caller and its failures are absorbed, so answering a question
// can never be delayed or failed by analytics.
type AnalyticsService interface {
	// Emit queues a record for background persistence
	Emit(record *models.QueryRecord)

	// RecordFeedback attaches user feedback to a previously emitted record
	RecordFeedback(ctx context.Context, recordID, feedback string) error

	// List returns persisted records within the time range
	List(ctx context.Context, since, until time.Time, limit int) ([]*models.QueryRecord, error)

	// Close drains the queue and stops the background writer
	Close() error
}
