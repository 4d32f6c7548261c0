// Package hibp provides a Have I Been Pwned breach directory client
package hibp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"footprint/internal/platform/cache"
	perr "footprint/internal/platform/errors"
	"footprint/internal/platform/logger"
)

const (
	baseURLDefault = "https://haveibeenpwned.com/api/v3"
	defaultTimeout = 10 * time.Second
	defaultUA      = "footprint-checker"

	// rate limited responses get exactly one retry after this wait
	rateLimitWait = 2 * time.Second
)

// Breach is one breach record as returned by the directory
type Breach struct {
	Name        string   `json:"Name"`
	Domain      string   `json:"Domain"`
	BreachDate  string   `json:"BreachDate"`
	PwnCount    int64    `json:"PwnCount"`
	Description string   `json:"Description"`
	DataClasses []string `json:"DataClasses"`
}

// Options configures the Client
type Options struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration
}

// Client queries the breach directory with response caching
type Client struct {
	http  *http.Client
	opts  Options
	cache *cache.TTL
	log   logger.Logger
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options, c *cache.TTL) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		cache: c,
		log:   *logger.Named("hibp"),
		sleep: time.Sleep,
	}
}

// Fetch returns the breaches for email, consulting the cache first.
// A missing API key disables the source; the empty result is cached so
// repeated lookups stay cheap
func (c *Client) Fetch(ctx context.Context, email string) ([]Breach, error) {
	key := "hibp_" + email
	if v, ok := c.cache.Get(key); ok {
		return v.([]Breach), nil
	}

	if c.opts.APIKey == "" {
		c.log.Warn().Msg("no api key configured, skipping breach lookup")
		out := []Breach{}
		c.cache.Set(key, out)
		return out, nil
	}

	out, err := c.fetch(ctx, email, true)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, out)
	return out, nil
}

func (c *Client) fetch(ctx context.Context, email string, mayRetry bool) ([]Breach, error) {
	u := c.opts.BaseURL + "/breachedaccount/" + url.PathEscape(email) + "?truncateResponse=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "hibp new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("hibp-api-key", c.opts.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "hibp request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		var out []Breach
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "hibp decode failed")
		}
		return out, nil

	case http.StatusNotFound:
		// account not present in the directory
		return []Breach{}, nil

	case http.StatusTooManyRequests:
		if mayRetry {
			c.log.Warn().Dur("wait", rateLimitWait).Msg("rate limited, retrying once")
			c.sleep(rateLimitWait)
			return c.fetch(ctx, email, false)
		}
		return nil, perr.TooManyRequestsf("hibp rate limited")

	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, perr.Unavailablef("hibp unexpected status %d body %s", resp.StatusCode, string(body))
	}
}
