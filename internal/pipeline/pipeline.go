package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ghpulse/ghpulse/internal/cache"
	"github.com/ghpulse/ghpulse/internal/store"
	"github.com/ghpulse/ghpulse/pkg/models"
	"github.com/google/uuid"
)

// ErrVerificationFailed is returned when the post-load quality report
// comes back empty: the load reported success but the store has no rows,
// which indicates silent data loss upstream.
var ErrVerificationFailed = fmt.Errorf("post-load verification failed: store reports zero events")

// Pipeline runs one collection pass: validate, fingerprint, deduplicate,
// transform, batch-load, verify. Each Run owns its own deduplicator; a
// Pipeline may be reused across runs but not concurrently.
type Pipeline struct {
	store       store.Store
	cache       cache.Cache
	transformer *Transformer
	batchSize   int
}

type Option func(*Pipeline)

// WithBatchSize overrides the loader chunk size.
func WithBatchSize(n int) Option {
	return func(p *Pipeline) { p.batchSize = n }
}

// WithFingerprintCache enables the optional cross-run duplicate filter.
func WithFingerprintCache(c cache.Cache) Option {
	return func(p *Pipeline) { p.cache = c }
}

// WithClock pins the processed_at timestamp, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.transformer = NewTransformerWithClock(now) }
}

func New(s store.Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:       s,
		transformer: NewTransformer(),
		batchSize:   DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result summarizes one pipeline run.
type Result struct {
	RunID       uuid.UUID
	RecordsSeen int
	Skipped     int
	Duplicates  int
	Loaded      int
	Report      *models.QualityReport
}

// Run processes a finite collection of raw records and loads the
// survivors into the store. Record-level defects and duplicates are
// counted, never fatal; store failures abort with the committed count
// preserved in the result. A run that loads nothing, or whose post-load
// report is empty, is an error.
func (p *Pipeline) Run(ctx context.Context, records []models.RawRecord) (*Result, error) {
	started := time.Now().UTC()
	res := &Result{RunID: uuid.New(), RecordsSeen: len(records)}

	dedup := NewDeduplicator()
	rows := make([]models.Event, 0, len(records))
	fingerprints := make([]string, 0, len(records))

	for i := range records {
		rec := &records[i]

		if !Validate(rec) {
			res.Skipped++
			continue
		}

		fp := Fingerprint(rec)
		if !dedup.Admit(fp) {
			res.Duplicates++
			continue
		}
		if p.cache != nil {
			seen, err := p.cache.SeenFingerprint(ctx, fp)
			if err != nil {
				slog.Warn("fingerprint cache lookup failed", "error", err)
			} else if seen {
				res.Duplicates++
				continue
			}
		}

		row := p.transformer.Transform(rec)
		if row == nil {
			res.Skipped++
			continue
		}

		rows = append(rows, *row)
		fingerprints = append(fingerprints, fp)
	}

	loader := NewLoader(p.store, p.batchSize)
	loadRes, loadErr := loader.Load(ctx, rows)
	res.Loaded = loadRes.RowsCommitted

	// Committed chunks stay committed even when a later chunk fails, so
	// their fingerprints are marked either way.
	p.markFingerprints(ctx, fingerprints[:loadRes.RowsCommitted])

	if loadErr != nil {
		p.recordRun(ctx, res, started, loadErr)
		return res, fmt.Errorf("load events: %w", loadErr)
	}

	report, err := p.store.QualityReport(ctx)
	if err != nil {
		err = fmt.Errorf("quality report: %w", err)
		p.recordRun(ctx, res, started, err)
		return res, err
	}
	res.Report = report

	if !report.Healthy() {
		p.recordRun(ctx, res, started, ErrVerificationFailed)
		return res, ErrVerificationFailed
	}

	p.recordRun(ctx, res, started, nil)

	slog.Info("pipeline run complete",
		"run_id", res.RunID,
		"records_seen", res.RecordsSeen,
		"skipped", res.Skipped,
		"duplicates", res.Duplicates,
		"loaded", res.Loaded,
		"total_events", report.TotalEvents,
	)
	return res, nil
}

func (p *Pipeline) markFingerprints(ctx context.Context, fingerprints []string) {
	if p.cache == nil || len(fingerprints) == 0 {
		return
	}
	if err := p.cache.MarkFingerprints(ctx, fingerprints); err != nil {
		slog.Warn("fingerprint cache mark failed", "error", err)
	}
}

// recordRun persists run bookkeeping. Bookkeeping failure is logged,
// never escalated over the run's own outcome.
func (p *Pipeline) recordRun(ctx context.Context, res *Result, started time.Time, runErr error) {
	run := &models.IngestRun{
		ID:          res.RunID,
		StartedAt:   started,
		FinishedAt:  time.Now().UTC(),
		Status:      models.RunStatusCompleted,
		RecordsSeen: res.RecordsSeen,
		Skipped:     res.Skipped,
		Duplicates:  res.Duplicates,
		Loaded:      res.Loaded,
	}
	if runErr != nil {
		run.Status = models.RunStatusFailed
		msg := runErr.Error()
		run.ErrorMessage = &msg
	}
	if err := p.store.InsertIngestRun(ctx, run); err != nil {
		slog.Warn("record ingest run failed", "run_id", run.ID, "error", err)
	}
}
