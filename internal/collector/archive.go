package collector

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ghpulse/ghpulse/pkg/models"
)

// Archive dumps can carry individual lines in the low megabytes.
const maxLineBytes = 16 * 1024 * 1024

// ArchiveClient downloads hourly gzipped NDJSON dumps from the public
// event archive.
type ArchiveClient struct {
	baseURL string
	client  *http.Client
}

func NewArchiveClient(baseURL string, timeout time.Duration) *ArchiveClient {
	return &ArchiveClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Hour downloads one hourly dump and decodes up to maxEvents records.
// Malformed lines are tolerated and counted, matching the pipeline's
// skip-don't-fail policy for record-level defects.
func (c *ArchiveClient) Hour(ctx context.Context, day time.Time, hour int, maxEvents int) ([]models.RawRecord, error) {
	if hour < 0 || hour > 23 {
		return nil, fmt.Errorf("hour out of range: %d", hour)
	}

	u := fmt.Sprintf("%s/%s-%d.json.gz", c.baseURL, day.Format("2006-01-02"), hour)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFeedError, resp.StatusCode)
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	defer gz.Close()

	var (
		events    []models.RawRecord
		malformed int
	)
	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if maxEvents > 0 && len(events) >= maxEvents {
			break
		}
		var rec models.RawRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			malformed++
			continue
		}
		events = append(events, rec)
	}
	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("reading archive stream: %w", err)
	}

	if malformed > 0 {
		slog.Warn("archive hour contained malformed lines",
			"url", u, "malformed", malformed, "decoded", len(events))
	}
	return events, nil
}
