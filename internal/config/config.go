package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the ghpulse commands.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Collector CollectorConfig
	Pipeline  PipelineConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig is optional: an empty URL disables the cross-run
// fingerprint cache and API rate limiting.
type RedisConfig struct {
	URL            string
	FingerprintTTL time.Duration
}

type CollectorConfig struct {
	GitHubBaseURL  string
	GitHubToken    string
	Repos          []string
	PagesPerRepo   int
	TargetRecords  int
	ArchiveBaseURL string
	ArchiveDate    string
	ArchiveHours   int
	Timeout        time.Duration
}

type PipelineConfig struct {
	BatchSize int
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any required value is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("GHPULSE_PORT", 8080),
			Env:  envString("GHPULSE_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:            os.Getenv("REDIS_URL"),
			FingerprintTTL: envDuration("FINGERPRINT_CACHE_TTL", 7*24*time.Hour),
		},
		Collector: CollectorConfig{
			GitHubBaseURL:  envString("GITHUB_API_BASE_URL", "https://api.github.com"),
			GitHubToken:    os.Getenv("GITHUB_TOKEN"),
			Repos:          envList("GHPULSE_REPOS"),
			PagesPerRepo:   envInt("GHPULSE_PAGES_PER_REPO", 5),
			TargetRecords:  envInt("GHPULSE_TARGET_RECORDS", 100000),
			ArchiveBaseURL: envString("GHARCHIVE_BASE_URL", "https://data.gharchive.org"),
			ArchiveDate:    os.Getenv("GHARCHIVE_DATE"),
			ArchiveHours:   envInt("GHARCHIVE_HOURS", 1),
			Timeout:        envDuration("COLLECTOR_TIMEOUT", 2*time.Minute),
		},
		Pipeline: PipelineConfig{
			BatchSize: envInt("PIPELINE_BATCH_SIZE", 10000),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Pipeline.BatchSize <= 0 {
		return fmt.Errorf("PIPELINE_BATCH_SIZE must be positive, got %d", c.Pipeline.BatchSize)
	}

	if c.Collector.TargetRecords <= 0 {
		return fmt.Errorf("GHPULSE_TARGET_RECORDS must be positive, got %d", c.Collector.TargetRecords)
	}

	if c.Collector.ArchiveDate != "" {
		if _, err := time.Parse("2006-01-02", c.Collector.ArchiveDate); err != nil {
			return fmt.Errorf("GHARCHIVE_DATE must be YYYY-MM-DD, got %q", c.Collector.ArchiveDate)
		}
		if c.Collector.ArchiveHours < 1 || c.Collector.ArchiveHours > 24 {
			return fmt.Errorf("GHARCHIVE_HOURS must be between 1 and 24, got %d", c.Collector.ArchiveHours)
		}
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
