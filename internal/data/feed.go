package data

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"battery-arbitrage/internal/model"
)

// DefaultFeedURL is Elering's public Nord Pool spot price endpoint.
const DefaultFeedURL = "https://dashboard.elering.ee/api/nps/price"

// FeedClient downloads hourly spot prices from an Elering-compatible JSON feed.
type FeedClient struct {
	BaseURL string
	Area    string
	Client  *http.Client
	Logger  zerolog.Logger
}

// NewFeedClient creates a client. Empty baseURL and area default to the
// Elering endpoint and "ee".
func NewFeedClient(baseURL, area string, logger zerolog.Logger) *FeedClient {
	if baseURL == "" {
		baseURL = DefaultFeedURL
	}
	if area == "" {
		area = "ee"
	}
	return &FeedClient{
		BaseURL: baseURL,
		Area:    strings.ToLower(area),
		Client:  &http.Client{Timeout: 30 * time.Second},
		Logger:  logger,
	}
}

// FeedError is a non-200 answer from the feed.
type FeedError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string
}

func (e *FeedError) Error() string {
	return e.Message
}

type feedResponse struct {
	Success bool                        `json:"success"`
	Data    map[string][]feedPricePoint `json:"data"`
}

type feedPricePoint struct {
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
}

// Fetch returns the prices in [start, end) converted to loc, sorted by time.
func (c *FeedClient) Fetch(ctx context.Context, start, end time.Time, loc *time.Location) ([]model.PricePoint, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("start and end are required")
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("start must be before end")
	}
	if loc == nil {
		loc = time.Local
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("start", start.UTC().Format(time.RFC3339))
	q.Set("end", end.UTC().Format(time.RFC3339))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	began := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.Logger.Debug().
		Str("url", u.String()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(began)).
		Msg("price feed response")

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &FeedError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, &FeedError{
			StatusCode: resp.StatusCode,
			Code:       "FEED_ERROR",
			Message:    fmt.Sprintf("price feed returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var body feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !body.Success {
		return nil, &FeedError{StatusCode: resp.StatusCode, Code: "FEED_ERROR", Message: "price feed reported failure"}
	}

	raw := body.Data[c.Area]
	out := make([]model.PricePoint, 0, len(raw))
	for _, p := range raw {
		out = append(out, model.PricePoint{Timestamp: time.Unix(p.Timestamp, 0).In(loc), Price: p.Price})
	}
	sortPoints(out)

	c.Logger.Info().Str("area", c.Area).Int("points", len(out)).Msg("prices fetched")
	return out, nil
}
