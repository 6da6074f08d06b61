package httpclient

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type Option func(c *Client)

// WithLogger specifies the logger for the client
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithRatePerSecond specifies the global outbound call rate.
// The limiter has no burst allowance, so this is effectively a
// minimum inter-call interval shared by all callers
func WithRatePerSecond(r float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(r), 1)
	}
}

// WithTimeout specifies the per-call network timeout
func WithTimeout(t time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = t
	}
}

// WithTransport specifies the underlying HTTP transport
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.client.Transport = rt
	}
}
