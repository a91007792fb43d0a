package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ghpulse/ghpulse/pkg/models"
)

// Sentinel errors for collector failures.
var (
	ErrFeedUnreachable = errors.New("activity feed unreachable")
	ErrFeedTimeout     = errors.New("activity feed timeout")
	ErrFeedError       = errors.New("activity feed error")
	ErrRateLimited     = errors.New("activity feed rate limit exhausted")
)

const perPage = 100

// Client is the interface for fetching raw records from the public
// activity feed. It supplies the pipeline's input contract and nothing
// more; retry policy is the caller's concern.
type Client interface {
	RepositoryEvents(ctx context.Context, repo string, pages int) ([]models.RawRecord, error)
}

// HTTPClient implements Client against the GitHub REST API.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient creates a new events API client. token may be empty;
// authenticated requests get a higher rate limit.
func NewHTTPClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// RepositoryEvents fetches up to pages*100 recent events for one
// "owner/name" repository, newest first. It stops early on an empty page
// or when the remaining rate-limit budget runs low, returning what it
// has; an exhausted limit on the first page is an error.
func (c *HTTPClient) RepositoryEvents(ctx context.Context, repo string, pages int) ([]models.RawRecord, error) {
	if pages <= 0 {
		pages = 1
	}

	var events []models.RawRecord
	for page := 1; page <= pages; page++ {
		u := fmt.Sprintf("%s/repos/%s/events?per_page=%d&page=%d", c.baseURL, repo, perPage, page)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return events, fmt.Errorf("building request: %w", err)
		}
		c.setHeaders(req)

		resp, err := c.client.Do(req)
		if err != nil {
			return events, classifyError(err)
		}

		pageEvents, remaining, err := decodeEventsPage(resp)
		if err != nil {
			if errors.Is(err, ErrRateLimited) && len(events) > 0 {
				return events, nil
			}
			return events, err
		}
		if len(pageEvents) == 0 {
			break
		}
		events = append(events, pageEvents...)

		if remaining >= 0 && remaining < 10 {
			break
		}
	}
	return events, nil
}

func decodeEventsPage(resp *http.Response) ([]models.RawRecord, int, error) {
	defer resp.Body.Close()

	remaining := -1
	if v := resp.Header.Get("X-RateLimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			remaining = n
		}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var events []models.RawRecord
		if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
			return nil, remaining, fmt.Errorf("decoding events page: %w", err)
		}
		return events, remaining, nil
	case resp.StatusCode == http.StatusForbidden && remaining == 0:
		return nil, remaining, ErrRateLimited
	default:
		return nil, remaining, fmt.Errorf("%w: status %d", ErrFeedError, resp.StatusCode)
	}
}

func (c *HTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}
}

func classifyError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrFeedTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrFeedUnreachable, err)
}
