package coverart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
)

// DefaultBaseURL is the public Discogs API.
const DefaultBaseURL = "https://api.discogs.com"

// Config holds Discogs credentials. Discogs rejects requests without a
// User-Agent, so UserAgent is required.
type Config struct {
	BaseURL   string
	Key       string
	Secret    string
	UserAgent string
	Timeout   time.Duration
}

// StatusError reports a non-200 response from the search endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("coverart: discogs returned %d: %s", e.Code, e.Body)
}

// Client looks up cover thumbnails.
type Client struct {
	cfg      Config
	http     *http.Client
	cache    Cache
	log      *slog.Logger
	settings *gobreaker.Settings
	breaker  *gobreaker.CircuitBreaker[[]byte]
}

// New creates a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.UserAgent) == "" {
		return nil, fmt.Errorf("coverart: user agent is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	c := &Client{cfg: cfg, log: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: cfg.Timeout}
	}
	settings := defaultBreakerSettings()
	if c.settings != nil {
		settings = *c.settings
	}
	if settings.Name == "" {
		settings.Name = "discogs"
	}
	if settings.OnStateChange == nil {
		settings.OnStateChange = func(name string, from, to gobreaker.State) {
			c.log.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		}
	}
	// client errors are the caller's problem, not upstream health
	settings.IsSuccessful = func(err error) bool {
		var status *StatusError
		if errors.As(err, &status) {
			return status.Code < http.StatusInternalServerError
		}
		return err == nil
	}
	settings.IsExcluded = func(err error) bool {
		return errors.Is(err, context.Canceled)
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](settings)
	return c, nil
}

type searchResponse struct {
	Results []struct {
		Thumb string `json:"thumb"`
	} `json:"results"`
}

// Covers returns up to n thumbnail URLs for artist, in search result order.
func (c *Client) Covers(ctx context.Context, artist string, n int) ([]string, error) {
	if n <= 0 || strings.TrimSpace(artist) == "" {
		return nil, nil
	}
	body, err := c.search(ctx, artist)
	if err != nil {
		return nil, err
	}
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("coverart: decode search for %q: %w", artist, err)
	}
	out := make([]string, 0, n)
	for _, r := range resp.Results {
		if len(out) == n {
			break
		}
		out = append(out, r.Thumb)
	}
	return out, nil
}

func (c *Client) search(ctx context.Context, artist string) ([]byte, error) {
	key := "search:" + strings.ToLower(artist)
	if c.cache != nil {
		if body, ok, err := c.cache.Get(ctx, key); err != nil {
			c.log.Warn("cover cache read failed", "artist", artist, "err", err)
		} else if ok {
			return body, nil
		}
	}
	body, err := c.breaker.Execute(func() ([]byte, error) { return c.fetch(ctx, artist) })
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body); err != nil {
			c.log.Warn("cover cache write failed", "artist", artist, "err", err)
		}
	}
	return body, nil
}

func (c *Client) fetch(ctx context.Context, artist string) ([]byte, error) {
	query := url.Values{}
	query.Set("artist", artist)
	query.Set("key", c.cfg.Key)
	query.Set("secret", c.cfg.Secret)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/database/search?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coverart: search %q: %w", artist, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("coverart: read search %q: %w", artist, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body[:min(len(body), 200)]))}
	}
	return body, nil
}

// BreakerState reports the circuit breaker state.
func (c *Client) BreakerState() gobreaker.State { return c.breaker.State() }
