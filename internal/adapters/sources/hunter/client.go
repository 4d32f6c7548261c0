// Package hunter provides a contact discovery client keyed by email domain
package hunter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"footprint/internal/platform/cache"
	perr "footprint/internal/platform/errors"
	"footprint/internal/platform/logger"
)

const (
	baseURLDefault = "https://api.hunter.io/v2"
	defaultTimeout = 15 * time.Second
	defaultUA      = "footprint-checker"
)

// Contact is one discovered address with its confidence score
type Contact struct {
	Value      string `json:"value"`
	Confidence int    `json:"confidence"`
}

// Result is the combined, normalized outcome of both discovery calls
type Result struct {
	Domain             string
	EmailsFound        int
	Confidence         int
	Country            string
	Disposable         bool
	Webmail            bool
	DiscoverEmails     []Contact
	DomainSearchEmails []Contact
}

// Options configures the Client
type Options struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration
}

// Client queries contact discovery with response caching
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
		log:   *logger.Named("hunter"),
	}
}

// domainSearchWire mirrors the subset of the domain-search response we read
type domainSearchWire struct {
	Data struct {
		Domain     string `json:"domain"`
		Disposable bool   `json:"disposable"`
		Webmail    bool   `json:"webmail"`
		Country    string `json:"country"`
		Emails     []struct {
			Value      string `json:"value"`
			Confidence int    `json:"confidence"`
		} `json:"emails"`
	} `json:"data"`
	Meta struct {
		Results int `json:"results"`
	} `json:"meta"`
}

// discoverWire mirrors the subset of the discover response we read
type discoverWire struct {
	Data struct {
		Emails []struct {
			Value      string `json:"value"`
			Confidence int    `json:"confidence"`
		} `json:"emails"`
	} `json:"data"`
}

// DomainOf extracts the domain part of an email address
func DomainOf(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 && i+1 < len(email) {
		return email[i+1:]
	}
	return ""
}

// Fetch returns discovery data for the email's domain, cache first.
// The two upstream calls are independently tolerant: a failed or empty
// sub-call contributes nothing instead of failing the lookup
func (c *Client) Fetch(ctx context.Context, email string) (Result, error) {
	domain := DomainOf(email)
	if domain == "" {
		return Result{}, perr.InvalidArgf("hunter: no domain in email")
	}

	key := "hunter_" + email
	if v, ok := c.cache.Get(key); ok {
		return v.(Result), nil
	}

	if c.opts.APIKey == "" {
		c.log.Warn().Msg("no api key configured, skipping contact discovery")
		out := Result{Domain: domain}
		c.cache.Set(key, out)
		return out, nil
	}

	res := Result{Domain: domain}

	if ds, ok := c.domainSearch(ctx, domain); ok {
		res.EmailsFound = ds.Meta.Results
		res.Country = ds.Data.Country
		res.Disposable = ds.Data.Disposable
		res.Webmail = ds.Data.Webmail
		for _, e := range ds.Data.Emails {
			res.DomainSearchEmails = append(res.DomainSearchEmails, Contact{Value: e.Value, Confidence: e.Confidence})
			if e.Confidence > res.Confidence {
				res.Confidence = e.Confidence
			}
		}
	}

	if dv, ok := c.discover(ctx, domain); ok {
		for _, e := range dv.Data.Emails {
			res.DiscoverEmails = append(res.DiscoverEmails, Contact{Value: e.Value, Confidence: e.Confidence})
		}
	}

	c.cache.Set(key, res)
	return res, nil
}

func (c *Client) domainSearch(ctx context.Context, domain string) (domainSearchWire, bool) {
	var wire domainSearchWire
	u := c.opts.BaseURL + "/domain-search?domain=" + url.QueryEscape(domain) + "&api_key=" + url.QueryEscape(c.opts.APIKey)
	if !c.getJSON(ctx, u, "domain-search", &wire) {
		return domainSearchWire{}, false
	}
	return wire, true
}

func (c *Client) discover(ctx context.Context, domain string) (discoverWire, bool) {
	var wire discoverWire
	u := c.opts.BaseURL + "/discover?domain=" + url.QueryEscape(domain) + "&api_key=" + url.QueryEscape(c.opts.APIKey)
	if !c.getJSON(ctx, u, "discover", &wire) {
		return discoverWire{}, false
	}
	return wire, true
}

// getJSON performs one tolerant GET; any failure logs and reports !ok
func (c *Client) getJSON(ctx context.Context, u, call string, dst any) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("call", call).Msg("request failed")
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return false
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Str("call", call).Msg("unexpected status")
		return false
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		c.log.Warn().Err(err).Str("call", call).Msg("decode failed")
		return false
	}
	return true
}
