// Package sheet fetches and decodes the published spreadsheet CSV export.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"

	"github.com/couchcryptid/incident-data-etl/internal/domain"
	"github.com/couchcryptid/incident-data-etl/internal/observability"
)

// Backoff bounds between fetch attempts.
const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Client implements pipeline.Source over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
	attempts   int
	backoff    time.Duration
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a sheet client. attempts below 1 are treated as 1.
func NewClient(url string, timeout time.Duration, attempts int, logger *slog.Logger, metrics *observability.Metrics) *Client {
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		attempts: attempts,
		backoff:  initialBackoff,
		logger:   logger,
		metrics:  metrics,
	}
}

// statusError is a non-200 response.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.code, e.body)
}

func (e *statusError) retryable() bool {
	return e.code >= 500 || e.code == http.StatusTooManyRequests
}

// Fetch downloads and decodes the export. Network errors, 429 and 5xx
// responses are retried with exponential backoff; other statuses fail at once.
// Errors wrap domain.ErrSourceUnavailable, or domain.ErrConfigurationMissing
// when no URL is configured.
func (c *Client) Fetch(ctx context.Context) (domain.Sheet, error) {
	if c.url == "" {
		return domain.Sheet{}, fmt.Errorf("SOURCE_CSV_URL not set: %w", domain.ErrConfigurationMissing)
	}

	backoff := c.backoff
	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		sheet, err := c.fetchOnce(ctx)
		if err == nil {
			c.metrics.SourceRequests.WithLabelValues("success").Inc()
			return sheet, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			c.metrics.SourceRequests.WithLabelValues("error").Inc()
			return domain.Sheet{}, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, ctx.Err())
		}

		var se *statusError
		if errors.As(err, &se) && !se.retryable() {
			break
		}
		if attempt == c.attempts {
			break
		}

		c.metrics.SourceRequests.WithLabelValues("retry").Inc()
		c.logger.Warn("source fetch failed, retrying", "error", err, "attempt", attempt, "backoff", backoff)
		if !retry.SleepWithContext(ctx, backoff) {
			return domain.Sheet{}, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, ctx.Err())
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}

	c.metrics.SourceRequests.WithLabelValues("error").Inc()
	return domain.Sheet{}, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context) (domain.Sheet, error) {
	start := time.Now()
	defer func() {
		c.metrics.SourceFetchDuration.Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.Sheet{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Sheet{}, fmt.Errorf("source request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Sheet{}, &statusError{code: resp.StatusCode, body: string(body)}
	}

	sheet, err := Decode(resp.Body)
	if err != nil {
		return domain.Sheet{}, fmt.Errorf("decode export: %w", err)
	}
	return sheet, nil
}
