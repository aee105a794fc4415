package badger

import (
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
	"github.com/draphael123/notebooklm-marketing/internal/models"
)

// QueryLogStorage implements the QueryLogStorage interface for Badger
type QueryLogStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewQueryLogStorage creates a new QueryLogStorage instance
func NewQueryLogStorage(db *BadgerDB, logger arbor.ILogger) interfaces.QueryLogStorage {
	return &QueryLogStorage{
		db:     db,
		logger: logger,
	}
}

func (s *QueryLogStorage) SaveRecord(record *models.QueryRecord) error {
	if record.ID == "" {
		return fmt.Errorf("record ID is required")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	if err := s.db.Store().Upsert(record.ID, record); err != nil {
		return fmt.Errorf("failed to save query record: %w", err)
	}
	return nil
}

func (s *QueryLogStorage) GetRecord(id string) (*models.QueryRecord, error) {
	var record models.QueryRecord
	if err := s.db.Store().Get(id, &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("%w: %s", interfaces.ErrRecordNotFound, id)
		}
		return nil, fmt.Errorf("failed to get query record: %w", err)
	}
	return &record, nil
}

// ListRecords returns records created within [since, until], newest first.
// Zero time bounds mean unbounded; limit <= 0 means no limit.
func (s *QueryLogStorage) ListRecords(since, until time.Time, limit int) ([]*models.QueryRecord, error) {
	var query *badgerhold.Query
	if !since.IsZero() {
		query = badgerhold.Where("CreatedAt").Ge(since)
		if !until.IsZero() {
			query = query.And("CreatedAt").Le(until)
		}
	} else if !until.IsZero() {
		query = badgerhold.Where("CreatedAt").Le(until)
	}

	var records []models.QueryRecord
	if err := s.db.Store().Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to list query records: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	result := make([]*models.QueryRecord, len(records))
	for i := range records {
		result[i] = &records[i]
	}
	return result, nil
}
