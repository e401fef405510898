// Package hevy is a read-only client for the Hevy-style workout API. It
// fetches the full paged workout history so the sync path can hand it to the
// ingestion adapter as one payload.
package hevy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/liftstats/internal/models"
)

const maxRetries = 3

// statusError is a non-200 response. Client errors (4xx) are permanent and
// skip the retry loop.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("request failed (status %d): %s", e.code, e.body)
}

func (e *statusError) permanent() bool {
	return e.code >= 400 && e.code < 500
}

// Client talks to the remote workout API.
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a client for the given API base URL. pageSize values
// outside [1, 10] fall back to the API maximum of 10.
func NewClient(baseURL, apiKey string, pageSize int, log *slog.Logger) *Client {
	if pageSize < 1 || pageSize > 10 {
		pageSize = 10
	}
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		log: log,
	}
}

// FetchPage retrieves one page of workouts. Retries up to 3 times with
// exponential backoff on transport errors and 5xx responses; a 4xx response
// (bad API key, unknown page) fails immediately.
func (c *Client) FetchPage(ctx context.Context, page int) (models.HevyWorkoutsPage, error) {
	url := fmt.Sprintf("%s/v1/workouts?page=%d&pageSize=%d", c.baseURL, page, c.pageSize)

	var lastErr error
	for attempt := range maxRetries {
		if attempt > 0 {
			c.log.Info("retrying workout page", "page", page, "attempt", attempt+1)
			select {
			case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
			case <-ctx.Done():
				return models.HevyWorkoutsPage{}, ctx.Err()
			}
		}

		result, err := c.fetchOnce(ctx, url)
		if err == nil {
			return result, nil
		}
		var se *statusError
		if errors.As(err, &se) && se.permanent() {
			return models.HevyWorkoutsPage{}, fmt.Errorf("fetching page %d: %w", page, err)
		}
		lastErr = err
		c.log.Warn("workout page fetch failed", "page", page, "error", err)
	}
	return models.HevyWorkoutsPage{}, fmt.Errorf("fetching page %d after %d attempts: %w", page, maxRetries, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, url string) (models.HevyWorkoutsPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.HevyWorkoutsPage{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.HevyWorkoutsPage{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return models.HevyWorkoutsPage{}, &statusError{code: resp.StatusCode, body: string(body)}
	}

	var page models.HevyWorkoutsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return models.HevyWorkoutsPage{}, fmt.Errorf("decoding page: %w", err)
	}
	return page, nil
}

// FetchAll walks every page and returns the combined workout list. A page
// that fails all retries aborts the whole fetch so a partial history never
// looks complete.
func (c *Client) FetchAll(ctx context.Context) ([]models.HevyWorkout, error) {
	first, err := c.FetchPage(ctx, 1)
	if err != nil {
		return nil, err
	}

	workouts := first.Workouts
	for page := 2; page <= first.PageCount; page++ {
		p, err := c.FetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, p.Workouts...)
	}
	c.log.Info("fetched workout history", "pages", first.PageCount, "workouts", len(workouts))
	return workouts, nil
}
