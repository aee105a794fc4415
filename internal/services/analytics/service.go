// Package analytics persists query records in the background. Emission is
// fire-and-forget: a slow or failing store can never delay or fail a query
// response.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/common"
	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
	"github.com/draphael123/notebooklm-marketing/internal/models"
)

const emitQueueSize = 256

// ErrInvalidFeedback is returned by RecordFeedback for feedback values other
// than the known positive and negative markers.
var ErrInvalidFeedback = errors.New("invalid feedback value")

// Service implements interfaces.AnalyticsService with a buffered channel
// drained by a background writer goroutine.
type Service struct {
	storage interfaces.QueryLogStorage
	logger  arbor.ILogger

	queue     chan *models.QueryRecord
	done      chan struct{}
	closeOnce sync.Once
}

// NewService creates an analytics service and starts its background writer.
func NewService(storage interfaces.QueryLogStorage, logger arbor.ILogger) *Service {
	s := &Service{
		storage: storage,
		logger:  logger,
		queue:   make(chan *models.QueryRecord, emitQueueSize),
		done:    make(chan struct{}),
	}

	go s.writeLoop()
	return s
}

// Emit queues a record for persistence. When the queue is full the record is
// dropped with a log line rather than blocking the caller.
func (s *Service) Emit(record *models.QueryRecord) {
	if record == nil {
		return
	}
	if record.ID == "" {
		record.ID = common.NewRecordID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	select {
	case s.queue <- record:
	default:
		s.logger.Warn().Str("record_id", record.ID).Msg("Analytics queue full, dropping record")
	}
}

// RecordFeedback attaches user feedback to a persisted record.
func (s *Service) RecordFeedback(ctx context.Context, recordID, feedback string) error {
	if feedback != models.FeedbackPositive && feedback != models.FeedbackNegative {
		return fmt.Errorf("%w: '%s' must be '%s' or '%s'", ErrInvalidFeedback, feedback, models.FeedbackPositive, models.FeedbackNegative)
	}

	record, err := s.storage.GetRecord(recordID)
	if err != nil {
		return err
	}

	record.Feedback = feedback
	return s.storage.SaveRecord(record)
}

// List returns persisted records within the time range, newest first.
func (s *Service) List(ctx context.Context, since, until time.Time, limit int) ([]*models.QueryRecord, error) {
	return s.storage.ListRecords(since, until, limit)
}

// Close drains queued records and stops the background writer.
func (s *Service) Close() error {
	s.closeOnce.Do(func() {
		close(s.queue)
		<-s.done
	})
	return nil
}

func (s *Service) writeLoop() {
	defer close(s.done)

	for record := range s.queue {
		if err := s.storage.SaveRecord(record); err != nil {
			s.logger.Warn().Err(err).Str("record_id", record.ID).Msg("Failed to persist query record")
		}
	}
}
