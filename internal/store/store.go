package store

import (
	"context"
	"errors"

	"github.com/ghpulse/ghpulse/pkg/models"
)

var ErrNotFound = errors.New("resource not found")

// Store is the data access interface. All database operations go through here.
type Store interface {
	Ping(ctx context.Context) error

	// UpsertEvents writes one chunk of normalized rows in a single
	// transaction, keyed on event_id with full-row replace on conflict.
	UpsertEvents(ctx context.Context, events []models.Event) error

	InsertIngestRun(ctx context.Context, run *models.IngestRun) error

	QualityReport(ctx context.Context) (*models.QualityReport, error)

	EventTypeBreakdown(ctx context.Context, limit int) ([]models.EventTypeCount, error)
	TopRepositories(ctx context.Context, limit int) ([]models.RepoActivity, error)
	TopContributors(ctx context.Context, limit int) ([]models.ContributorActivity, error)
	HourlyActivity(ctx context.Context) ([]models.HourlyActivity, error)
}
