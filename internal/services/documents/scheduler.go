package documents

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
)

// Scheduler re-runs document processing on a cron schedule, picking up
// changes to the source document without a restart.
type Scheduler struct {
	documents interfaces.DocumentService
	cron      *cron.Cron
	logger    arbor.ILogger

	mu           sync.Mutex
	running      bool
	isProcessing bool
}

// NewScheduler creates a processing scheduler.
func NewScheduler(documents interfaces.DocumentService, logger arbor.ILogger) *Scheduler {
	return &Scheduler{
		documents: documents,
		cron:      cron.New(),
		logger:    logger,
	}
}

// Start begins scheduled processing with the given cron expression.
func (s *Scheduler) Start(cronExpr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}
	if cronExpr == "" {
		cronExpr = "0 */6 * * *" // Default: every 6 hours
	}

	if _, err := s.cron.AddFunc(cronExpr, s.runProcessing); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().Str("cron_expr", cronExpr).Msg("Document processing scheduler started")
	return nil
}

// Stop halts the scheduler. A processing run already in flight completes.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.cron.Stop()
	s.running = false
	s.logger.Info().Msg("Document processing scheduler stopped")
}

// runProcessing executes one processing run, skipping if one is in flight.
func (s *Scheduler) runProcessing() {
	s.mu.Lock()
	if s.isProcessing {
		s.mu.Unlock()
		s.logger.Warn().Msg("Skipping scheduled processing, previous run still in progress")
		return
	}
	s.isProcessing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isProcessing = false
		s.mu.Unlock()
	}()

	chunks, err := s.documents.Process(context.Background())
	if err != nil {
		s.logger.Error().Err(err).Msg("Scheduled document processing failed")
		return
	}
	s.logger.Info().Int("chunks", len(chunks)).Msg("Scheduled document processing completed")
}
