// Package fetch issues bounded outbound HTTP requests: every call carries a
// hard timeout, and the retry wrapper backs off linearly between attempts.
// Callers treat any failure as absence of data, never as a fatal condition.
package fetch

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const maxBodyBytes = 512 * 1024

// backoffUnit is multiplied by the attempt number between retries.
const backoffUnit = 500 * time.Millisecond

var browserUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
}

// RandomUserAgent returns one of the rotated browser user-agent strings.
func RandomUserAgent() string {
	return browserUserAgents[rand.Intn(len(browserUserAgents))]
}

// Options customizes a single fetch.
type Options struct {
	// Headers are set verbatim on the request.
	Headers map[string]string
	// UserAgent overrides the rotated default.
	UserAgent string
}

// Client performs bounded HTTP GETs with shared transport settings.
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a fetch client. The transport-level timeouts bound DNS
// and TLS setup independently of the per-request deadline.
func NewClient(logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		logger: logger,
	}
}

// Get fetches url with the given per-request timeout. The request is
// cancelled when the timeout elapses; a timeout is indistinguishable from a
// network error at this layer. Non-2xx statuses are errors.
func (c *Client) Get(ctx context.Context, url string, opts Options, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = RandomUserAgent()
	}
	req.Header.Set("User-Agent", ua)
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body %s: %w", url, err)
	}
	return body, nil
}

// GetWithRetry fetches url, retrying up to retries additional attempts on
// any failure. The wait between attempts grows linearly: 500ms after the
// first failure, 1s after the second, and so on. The last error is returned
// when every attempt is exhausted.
func (c *Client) GetWithRetry(ctx context.Context, url string, opts Options, timeout time.Duration, retries int) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			delay := backoffUnit * time.Duration(attempt)
			c.logger.Debug("Retrying fetch",
				zap.String("url", url),
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay))

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, lastErr
			case <-timer.C:
			}
		}

		body, err := c.Get(ctx, url, opts, timeout)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}
