// Package fetch retrieves JSON from the data explorer's REST API.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single request when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	StatusText string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d %s: %s", e.StatusCode, e.StatusText, e.URL)
}

// Options configures a Client.
type Options struct {
	Timeout time.Duration

	// Retries is the number of retries after a failed attempt. Zero
	// disables automatic retries.
	Retries int

	Logger zerolog.Logger
}

// Client issues GET requests and decodes JSON responses.
type Client struct {
	http *retryablehttp.Client
	log  zerolog.Logger
}

// NewClient creates a Client.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	retries := opts.Retries
	if retries < 0 {
		retries = 0
	}

	log := opts.Logger.With().Str("component", "fetch").Logger()

	rc := retryablehttp.NewClient()
	rc.RetryMax = retries
	rc.HTTPClient.Timeout = timeout
	// Hand the final response back so its status can be reported.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = leveledLogger{log: log}

	return &Client{http: rc, log: log}
}

// GetJSON fetches url and decodes the JSON body into out. out may be nil to
// discard the body. A non-2xx response yields a *StatusError.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	c.log.Debug().Str("url", url).Int("status", resp.StatusCode).Msg("response received")

	if resp.StatusCode/100 != 2 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
			URL:        requestURL(resp, url),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", url, err)
	}
	return nil
}

// statusText strips the numeric code from resp.Status ("404 Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func requestURL(resp *http.Response, fallback string) string {
	if resp.Request != nil && resp.Request.URL != nil {
		return resp.Request.URL.String()
	}
	return fallback
}
