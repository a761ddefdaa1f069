package coverart

import (
	"log/slog"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// Option customises a Client.
type Option func(*Client)

// WithCache sets the response cache. Without one every lookup goes upstream.
func WithCache(cache Cache) Option { return func(c *Client) { c.cache = cache } }

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option { return func(c *Client) { c.http = client } }

// WithLogger sets the logger used for breaker state changes.
func WithLogger(log *slog.Logger) Option { return func(c *Client) { c.log = log } }

// WithBreakerSettings overrides the circuit breaker settings. Name and
// OnStateChange are filled in when empty.
func WithBreakerSettings(settings gobreaker.Settings) Option {
	return func(c *Client) { c.settings = &settings }
}

func defaultBreakerSettings() gobreaker.Settings {
	return gobreaker.Settings{
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
}
