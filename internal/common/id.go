package common

import (
	"fmt"

	"github.com/google/uuid"
)

// NewChunkID generates a chunk identifier, stable within a processing run.
// Format: chunk-<index>
func NewChunkID(index int) string {
	return fmt.Sprintf("chunk-%d", index)
}

// NewRecordID generates a unique analytics record ID with the "qlog_" prefix.
func NewRecordID() string {
	return "qlog_" + uuid.New().String()
}
