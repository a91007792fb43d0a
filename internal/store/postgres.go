package store

import (
	"context"
	"fmt"

	"github.com/ghpulse/ghpulse/pkg/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// --- Events ---

const upsertEventSQL = `
	INSERT INTO github_events (
		event_id, event_type, repo_name, repo_owner, actor_login, org_login,
		created_at, is_public, payload, raw_record, processed_at,
		hour_of_day, day_of_week, month, year
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	ON CONFLICT (event_id) DO UPDATE SET
		event_type   = EXCLUDED.event_type,
		repo_name    = EXCLUDED.repo_name,
		repo_owner   = EXCLUDED.repo_owner,
		actor_login  = EXCLUDED.actor_login,
		org_login    = EXCLUDED.org_login,
		created_at   = EXCLUDED.created_at,
		is_public    = EXCLUDED.is_public,
		payload      = EXCLUDED.payload,
		raw_record   = EXCLUDED.raw_record,
		processed_at = EXCLUDED.processed_at,
		hour_of_day  = EXCLUDED.hour_of_day,
		day_of_week  = EXCLUDED.day_of_week,
		month        = EXCLUDED.month,
		year         = EXCLUDED.year`

// UpsertEvents writes one chunk of events atomically. The whole chunk is
// committed in a single transaction; on any failure the transaction rolls
// back and no row of the chunk is visible.
func (s *PostgresStore) UpsertEvents(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin upsert transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(upsertEventSQL,
			e.EventID, e.EventType, e.RepoName, e.RepoOwner, e.ActorLogin, e.OrgLogin,
			e.CreatedAt, e.IsPublic, e.Payload, e.RawRecord, e.ProcessedAt,
			e.HourOfDay, e.DayOfWeek, e.Month, e.Year)
	}

	results := tx.SendBatch(ctx, batch)
	for range events {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("upsert event: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close upsert batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit upsert transaction: %w", err)
	}
	return nil
}

// --- Ingest runs ---

func (s *PostgresStore) InsertIngestRun(ctx context.Context, run *models.IngestRun) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO ingest_runs (id, started_at, finished_at, status, records_seen, skipped, duplicates, loaded, error_message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		run.ID, run.StartedAt, run.FinishedAt, run.Status,
		run.RecordsSeen, run.Skipped, run.Duplicates, run.Loaded, run.ErrorMessage)
	if err != nil {
		return fmt.Errorf("insert ingest run: %w", err)
	}
	return nil
}

// --- Quality checks ---

func (s *PostgresStore) QualityReport(ctx context.Context) (*models.QualityReport, error) {
	report := &models.QualityReport{EventsByType: map[string]int64{}}

	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM github_events`,
	).Scan(&report.TotalEvents); err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT event_type, COUNT(*) FROM github_events GROUP BY event_type ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("count events by type: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var eventType string
		var count int64
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("scan type count: %w", err)
		}
		report.EventsByType[eventType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read type counts: %w", err)
	}

	if err := s.pool.QueryRow(ctx,
		`SELECT MIN(created_at), MAX(created_at) FROM github_events`,
	).Scan(&report.FirstEventAt, &report.LastEventAt); err != nil {
		return nil, fmt.Errorf("event date range: %w", err)
	}

	if err := s.pool.QueryRow(ctx,
		`SELECT
			COUNT(DISTINCT repo_name),
			COUNT(DISTINCT actor_login),
			COUNT(DISTINCT event_type)
		 FROM github_events`,
	).Scan(&report.UniqueRepos, &report.UniqueActors, &report.UniqueEventTypes); err != nil {
		return nil, fmt.Errorf("distinct counts: %w", err)
	}

	return report, nil
}

// --- Read-side aggregations ---

func (s *PostgresStore) EventTypeBreakdown(ctx context.Context, limit int) ([]models.EventTypeCount, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT
			event_type,
			COUNT(*) AS count,
			ROUND(COUNT(*) * 100.0 / SUM(COUNT(*)) OVER (), 2) AS percentage
		 FROM github_events
		 GROUP BY event_type
		 ORDER BY count DESC
		 LIMIT $1`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("event type breakdown: %w", err)
	}
	defer rows.Close()

	var counts []models.EventTypeCount
	for rows.Next() {
		var c models.EventTypeCount
		if err := rows.Scan(&c.EventType, &c.Count, &c.Percentage); err != nil {
			return nil, fmt.Errorf("scan event type count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (s *PostgresStore) TopRepositories(ctx context.Context, limit int) ([]models.RepoActivity, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT
			repo_name,
			COUNT(*) AS total_events,
			COUNT(DISTINCT event_type) AS event_types,
			COUNT(DISTINCT actor_login) AS unique_contributors,
			MIN(created_at) AS first_event_at,
			MAX(created_at) AS last_event_at
		 FROM github_events
		 WHERE repo_name <> ''
		 GROUP BY repo_name
		 ORDER BY total_events DESC
		 LIMIT $1`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("top repositories: %w", err)
	}
	defer rows.Close()

	var repos []models.RepoActivity
	for rows.Next() {
		var r models.RepoActivity
		if err := rows.Scan(&r.RepoName, &r.TotalEvents, &r.EventTypes,
			&r.UniqueContributors, &r.FirstEventAt, &r.LastEventAt); err != nil {
			return nil, fmt.Errorf("scan repo activity: %w", err)
		}
		repos = append(repos, r)
	}
	return repos, rows.Err()
}

func (s *PostgresStore) TopContributors(ctx context.Context, limit int) ([]models.ContributorActivity, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT
			actor_login,
			COUNT(*) AS total_events,
			COUNT(DISTINCT event_type) AS event_types,
			COUNT(DISTINCT repo_name) AS repos
		 FROM github_events
		 WHERE actor_login <> ''
		 GROUP BY actor_login
		 ORDER BY total_events DESC
		 LIMIT $1`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("top contributors: %w", err)
	}
	defer rows.Close()

	var actors []models.ContributorActivity
	for rows.Next() {
		var a models.ContributorActivity
		if err := rows.Scan(&a.ActorLogin, &a.TotalEvents, &a.EventTypes, &a.Repos); err != nil {
			return nil, fmt.Errorf("scan contributor activity: %w", err)
		}
		actors = append(actors, a)
	}
	return actors, rows.Err()
}

func (s *PostgresStore) HourlyActivity(ctx context.Context) ([]models.HourlyActivity, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT hour_of_day, COUNT(*) FROM github_events GROUP BY hour_of_day ORDER BY hour_of_day`)
	if err != nil {
		return nil, fmt.Errorf("hourly activity: %w", err)
	}
	defer rows.Close()

	var hours []models.HourlyActivity
	for rows.Next() {
		var h models.HourlyActivity
		if err := rows.Scan(&h.HourOfDay, &h.Count); err != nil {
			return nil, fmt.Errorf("scan hourly activity: %w", err)
		}
		hours = append(hours, h)
	}
	return hours, rows.Err()
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return limit
}
