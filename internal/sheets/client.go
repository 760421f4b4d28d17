// Package sheets wraps the spreadsheet-database service's record API. The
// wire format (bases, tables, records, fields, linked-record arrays) is owned
// by the service; this package only shapes requests and decodes responses.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/alexonufrak/dashboard-api/internal/logging"
)

// Client talks to the spreadsheet-database service for a single base.
type Client struct {
	baseURL    string
	baseID     string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Config holds the settings for a Client.
type Config struct {
	BaseURL string
	BaseID  string
	Token   string

	// RequestsPerSecond caps outbound request rate; the service enforces
	// 5 req/s per base, so that is the default.
	RequestsPerSecond int

	Logger *slog.Logger
}

// NewClient creates a Client for the configured base.
func NewClient(config Config) *Client {
	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	return &Client{
		baseURL: config.BaseURL,
		baseID:  config.BaseID,
		token:   config.Token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		logger:  config.Logger,
	}
}

// tableURL builds the URL for a table, optionally with a record ID appended.
func (c *Client) tableURL(table, recordID string) string {
	u := fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(table))
	if recordID != "" {
		u += "/" + url.PathEscape(recordID)
	}
	return u
}

// doRequest performs one throttled request, retrying once when the service
// answers 429 with a Retry-After delay.
func (c *Client) doRequest(ctx context.Context, method, rawURL string, body []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	respBody, retry, retryAfter, err := c.attempt(ctx, method, rawURL, body)
	if !retry {
		return respBody, err
	}

	logging.LogOperation(c.logger, "sheets_rate_limited",
		slog.String("url", rawURL),
		slog.Duration("retry_after", retryAfter))

	select {
	case <-time.After(retryAfter):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	respBody, _, _, err = c.attempt(ctx, method, rawURL, body)
	return respBody, err
}

// attempt performs a single request. retry signals the caller to back off
// for retryAfter and try again.
func (c *Client) attempt(ctx context.Context, method, rawURL string, body []byte) (respBody []byte, retry bool, retryAfter time.Duration, err error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, false, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, 0, err
	}
	defer logging.SafeCloseWithLogging(resp.Body, c.logger, "sheets_response_body")

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, 0, err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		delay := 30 * time.Second
		if header := resp.Header.Get("Retry-After"); header != "" {
			if secs, parseErr := strconv.Atoi(header); parseErr == nil && secs >= 0 {
				delay = time.Duration(secs) * time.Second
			}
		}
		return nil, true, delay, newAPIError(resp.StatusCode, b)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, 0, newAPIError(resp.StatusCode, b)
	}

	return b, false, 0, nil
}

func (c *Client) decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding sheets response: %w", err)
	}
	return nil
}
