package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"nbadfs/ingestion/internal/gameday"
	"nbadfs/ingestion/internal/metrics"
	"nbadfs/ingestion/internal/models"

	"github.com/rs/zerolog/log"
)

// Client is the stats feed API client. It wraps the schedule, roster,
// and daily box-score sources behind one HTTP endpoint with bounded
// retry and rate limiting. Responses are treated as opaque structured
// records; all reconciliation happens downstream.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter chan struct{} // Rate limiting semaphore
	maxRetries  int
	retryDelay  time.Duration
}

// NewClient creates a new stats feed API client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	// Rate limiter (max 10 concurrent requests)
	rateLimiter := make(chan struct{}, 10)
	for i := 0; i < 10; i++ {
		rateLimiter <- struct{}{}
	}

	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		rateLimiter: rateLimiter,
		maxRetries:  3,
		retryDelay:  1 * time.Second,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// get performs a GET request with retry logic and rate limiting
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, path)
	start := time.Now()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := c.retryDelay * time.Duration(1<<uint(attempt-1))
			log.Info().
				Str("url", url).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying API request after backoff")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		// Rate limiting: acquire semaphore
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.rateLimiter:
		}

		body, retryable, err := c.doRequest(ctx, url)
		c.rateLimiter <- struct{}{}

		if err == nil {
			metrics.APICallsTotal.WithLabelValues(path, "ok").Inc()
			metrics.APICallDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
			return body, nil
		}

		lastErr = err
		if !retryable {
			metrics.APICallsTotal.WithLabelValues(path, "error").Inc()
			return nil, err
		}

		log.Warn().
			Err(err).
			Str("url", url).
			Int("attempt", attempt+1).
			Msg("Retryable API error")
	}

	metrics.APICallsTotal.WithLabelValues(path, "error").Inc()
	return nil, lastErr
}

// doRequest performs a single attempt and reports whether a failure is
// worth retrying
func (c *Client) doRequest(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "nbadfs-ingestion/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network errors are retryable
		return nil, true, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, false, nil

	case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return nil, true, fmt.Errorf("API returned retryable status %d: %s", resp.StatusCode, string(body))

	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, false, fmt.Errorf("API authentication failed (status %d): %s", resp.StatusCode, string(body))

	default:
		return nil, false, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}
}

// FetchSchedule fetches the full schedule of events for a season
func (c *Client) FetchSchedule(ctx context.Context, seasonStartYear int) ([]models.ScheduleEventInput, error) {
	path := fmt.Sprintf("schedule/%d", seasonStartYear)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	var events []models.ScheduleEventInput
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schedule: %w", err)
	}

	return events, nil
}

// FetchPlayerSeasons fetches per-player season records for a season
func (c *Client) FetchPlayerSeasons(ctx context.Context, seasonStartYear int) ([]models.PlayerSeasonInput, error) {
	path := fmt.Sprintf("players/%d", seasonStartYear)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch player seasons: %w", err)
	}

	var players []models.PlayerSeasonInput
	if err := json.Unmarshal(body, &players); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player seasons: %w", err)
	}

	return players, nil
}

// FetchBoxScores fetches all raw per-player stat lines for one calendar
// day. One batch call per day; the importer never fetches per game.
func (c *Client) FetchBoxScores(ctx context.Context, day gameday.Day) ([]models.BoxScoreLineInput, error) {
	path := fmt.Sprintf("boxscores/%s", day)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch box scores: %w", err)
	}

	var lines []models.BoxScoreLineInput
	if err := json.Unmarshal(body, &lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal box scores: %w", err)
	}

	return lines, nil
}
