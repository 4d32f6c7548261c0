// Package emailrep provides an email reputation client
package emailrep

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"footprint/internal/platform/cache"
	perr "footprint/internal/platform/errors"
	"footprint/internal/platform/logger"
)

const (
	baseURLDefault = "https://emailrep.io"
	defaultTimeout = 10 * time.Second
	defaultUA      = "footprint-checker"
)

// Details holds the reputation flags the scorer reads
type Details struct {
	Blacklisted       bool `json:"blacklisted"`
	MaliciousActivity bool `json:"malicious_activity"`
	CredentialsLeaked bool `json:"credentials_leaked"`
	DataBreach        bool `json:"data_breach"`
	SpamTrap          bool `json:"spam"`
}

// Reputation is the assessment for one address
type Reputation struct {
	Email      string  `json:"email"`
	Reputation string  `json:"reputation"`
	Suspicious bool    `json:"suspicious"`
	References int     `json:"references"`
	Details    Details `json:"details"`
}

// Options configures the Client
type Options struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration
}

// Client queries reputation with response caching
type Client struct {
	http  *http.Client
	opts  Options
	cache *cache.TTL
	log   logger.Logger
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
		log:   *logger.Named("emailrep"),
	}
}

// Fetch returns the reputation for email, cache first.
// A nil Reputation with nil error means the service had no opinion
// (any non-2xx); only transport failures surface as errors.
// No-opinion outcomes are not cached, so the next request retries upstream
func (c *Client) Fetch(ctx context.Context, email string) (*Reputation, error) {
	key := "emailrep_" + email
	if v, ok := c.cache.Get(key); ok {
		return v.(*Reputation), nil
	}

	u := c.opts.BaseURL + "/" + url.PathEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "emailrep new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.opts.APIKey != "" {
		req.Header.Set("Key", c.opts.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "emailrep request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug().Int("status", resp.StatusCode).Msg("no reputation available")
		return nil, nil
	}

	var out Reputation
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "emailrep decode failed")
	}

	c.cache.Set(key, &out)
	return &out, nil
}
