package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// IngestRun is the bookkeeping row persisted for each pipeline run.
type IngestRun struct {
	ID           uuid.UUID `db:"id"            json:"id"`
	StartedAt    time.Time `db:"started_at"    json:"started_at"`
	FinishedAt   time.Time `db:"finished_at"   json:"finished_at"`
	Status       string    `db:"status"        json:"status"`
	RecordsSeen  int       `db:"records_seen"  json:"records_seen"`
	Skipped      int       `db:"skipped"       json:"skipped"`
	Duplicates   int       `db:"duplicates"    json:"duplicates"`
	Loaded       int       `db:"loaded"        json:"loaded"`
	ErrorMessage *string   `db:"error_message" json:"error_message,omitempty"`
}
