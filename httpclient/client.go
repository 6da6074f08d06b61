package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	// DefaultTTL is the cache lifetime applied when the caller does not
	// request a specific one
	DefaultTTL = time.Second * 5

	// DefaultRatePerSecond is the process-wide outbound call rate
	DefaultRatePerSecond = 5

	// DefaultTimeout is the per-call network timeout
	DefaultTimeout = time.Second * 10

	// Total attempts per call, including the first one
	maxAttempts = 3

	// Backoff unit between attempts (0.5s, then 1s)
	backoffStep = time.Millisecond * 500
)

// Client is the shared resilient HTTP client used by every venue adapter.
// It owns a TTL response cache and a global rate limiter, and retries
// transient failures before surfacing them
type Client struct {
	logger *slog.Logger

	client  *http.Client
	cache   *gocache.Cache
	limiter *rate.Limiter
}

// New creates a new resilient client instance
func New(opts ...Option) *Client {
	c := &Client{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
		// Expired entries are evicted lazily, on lookup
		cache:   gocache.New(DefaultTTL, 0),
		limiter: rate.NewLimiter(rate.Limit(DefaultRatePerSecond), 1),
	}

	// Apply the options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetJSON performs a cached, throttled, retried GET request,
// decoding the JSON response into out
func (c *Client) GetJSON(
	ctx context.Context,
	rawURL string,
	params url.Values,
	ttl time.Duration,
	out any,
) error {
	target := rawURL
	if len(params) > 0 {
		target = rawURL + "?" + params.Encode()
	}

	cacheKey := fmt.Sprintf("%s:%s", http.MethodGet, target)

	body, err := c.execute(ctx, cacheKey, ttl, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(body, out)
}

// PostJSON performs a cached, throttled, retried POST request with a JSON
// payload, decoding the JSON response into out
func (c *Client) PostJSON(
	ctx context.Context,
	rawURL string,
	payload any,
	ttl time.Duration,
	out any,
) error {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("unable to marshal request payload: %w", err)
	}

	cacheKey := fmt.Sprintf("%s:%s:%s", http.MethodPost, rawURL, reqBody)

	body, err := c.execute(ctx, cacheKey, ttl, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}

		req.Header.Set("Content-Type", "application/json")

		return req, nil
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(body, out)
}

// execute runs the cache -> throttle -> retry pipeline for a single
// logical call, returning the raw response body
func (c *Client) execute(
	ctx context.Context,
	cacheKey string,
	ttl time.Duration,
	makeRequest func(context.Context) (*http.Request, error),
) ([]byte, error) {
	// Check the cache first
	if cached, ok := c.cache.Get(cacheKey); ok {
		body, _ := cached.([]byte)

		return body, nil
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	// Wait out the global throttle before hitting the network
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("unable to pass rate limiter: %w", err)
	}

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		body, err := c.doOnce(ctx, makeRequest)
		if err == nil {
			c.cache.Set(cacheKey, body, ttl)

			return body, nil
		}

		lastErr = err

		c.logger.Debug(
			"request attempt failed",
			"key", cacheKey,
			"attempt", attempt,
			"err", err,
		)

		if attempt == maxAttempts {
			break
		}

		// Back off before the next attempt
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoffStep * time.Duration(attempt)):
		}
	}

	// Failures are never cached
	return nil, lastErr
}

// doOnce performs a single network attempt
func (c *Client) doOnce(
	ctx context.Context,
	makeRequest func(context.Context) (*http.Request, error),
) ([]byte, error) {
	req, err := makeRequest(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("invalid status code received: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read response body: %w", err)
	}

	return body, nil
}
