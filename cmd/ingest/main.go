// Package main is the entrypoint for one ghpulse ingestion pass: collect
// raw events, deduplicate, normalize, batch-load into Postgres, verify.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ghpulse/ghpulse/internal/analysis"
	"github.com/ghpulse/ghpulse/internal/cache"
	"github.com/ghpulse/ghpulse/internal/collector"
	"github.com/ghpulse/ghpulse/internal/config"
	"github.com/ghpulse/ghpulse/internal/pipeline"
	"github.com/ghpulse/ghpulse/internal/store"
	"github.com/ghpulse/ghpulse/pkg/models"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("ingest failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded",
		"repos", len(cfg.Collector.Repos),
		"archive_date", cfg.Collector.ArchiveDate,
		"batch_size", cfg.Pipeline.BatchSize,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	slog.Info("database connected")

	if err := store.RunMigrations(cfg.Database.URL, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied")

	pgStore := store.NewPostgresStore(pool)

	opts := []pipeline.Option{pipeline.WithBatchSize(cfg.Pipeline.BatchSize)}
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL, cfg.Redis.FingerprintTTL)
		if err != nil {
			return fmt.Errorf("create redis cache: %w", err)
		}
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		opts = append(opts, pipeline.WithFingerprintCache(redisCache))
		slog.Info("redis connected, cross-run dedup enabled")
	}

	records, err := collect(ctx, cfg.Collector)
	if err != nil {
		return fmt.Errorf("collect events: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no events collected")
	}
	slog.Info("collection complete", "records", len(records))

	result, err := pipeline.New(pgStore, opts...).Run(ctx, records)
	if err != nil {
		return fmt.Errorf("pipeline run %s: %w", result.RunID, err)
	}

	insights, err := analysis.NewAnalyzer(pgStore).Insights(ctx)
	if err != nil {
		return fmt.Errorf("generate insights: %w", err)
	}
	for _, line := range insights {
		slog.Info("insight", "summary", line)
	}

	return nil
}

// collect gathers raw records from the events API for each configured
// repository, then tops up from the hourly archive when a date is set and
// the target has not been reached. Per-repo failures are logged and
// skipped; the pipeline decides whether the final haul is sufficient.
func collect(ctx context.Context, cfg config.CollectorConfig) ([]models.RawRecord, error) {
	var records []models.RawRecord

	if len(cfg.Repos) > 0 {
		client := collector.NewHTTPClient(cfg.GitHubBaseURL, cfg.GitHubToken, cfg.Timeout)
		for _, repo := range cfg.Repos {
			if len(records) >= cfg.TargetRecords {
				break
			}
			events, err := client.RepositoryEvents(ctx, repo, cfg.PagesPerRepo)
			if err != nil {
				slog.Warn("repository fetch failed", "repo", repo, "error", err)
				continue
			}
			slog.Info("repository fetched", "repo", repo, "events", len(events))
			records = append(records, events...)
		}
	}

	if cfg.ArchiveDate != "" && len(records) < cfg.TargetRecords {
		day, err := time.Parse("2006-01-02", cfg.ArchiveDate)
		if err != nil {
			return records, fmt.Errorf("parse archive date: %w", err)
		}
		archive := collector.NewArchiveClient(cfg.ArchiveBaseURL, cfg.Timeout)
		for hour := 0; hour < cfg.ArchiveHours && len(records) < cfg.TargetRecords; hour++ {
			events, err := archive.Hour(ctx, day, hour, cfg.TargetRecords-len(records))
			if err != nil {
				slog.Warn("archive hour fetch failed", "date", cfg.ArchiveDate, "hour", hour, "error", err)
				continue
			}
			slog.Info("archive hour fetched", "date", cfg.ArchiveDate, "hour", hour, "events", len(events))
			records = append(records, events...)
		}
	}

	if len(records) > cfg.TargetRecords {
		records = records[:cfg.TargetRecords]
	}
	return records, nil
}
