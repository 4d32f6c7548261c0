// Package xposed provides a secondary breach directory client with risk analytics
package xposed

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
	baseURLDefault = "https://api.xposedornot.com/v1"
	defaultTimeout = 10 * time.Second
	defaultUA      = "footprint-checker"
)

// Analytics summarizes the directory's risk assessment for an account
type Analytics struct {
	RiskLabel          string `json:"risk_label"`
	RiskScore          int    `json:"risk_score"`
	PlaintextPasswords int    `json:"plaintext_passwords"`
}

// Result is the combined outcome of the check and analytics calls
type Result struct {
	Breaches  []string
	Analytics *Analytics
}

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client queries the directory with response caching. No API key is required
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
		log:   *logger.Named("xposed"),
	}
}

// checkWire mirrors the check-email response: a single nested list of breach names
type checkWire struct {
	Breaches [][]string `json:"breaches"`
}

// analyticsWire mirrors the subset of breach-analytics we read
type analyticsWire struct {
	Metrics struct {
		Risk []struct {
			RiskLabel string `json:"risk_label"`
			RiskScore int    `json:"risk_score"`
		} `json:"risk"`
		PasswordsStrength []struct {
			PlainText int `json:"PlainText"`
		} `json:"passwords_strength"`
	} `json:"metrics"`
}

// Fetch returns the breach names and risk analytics for email, cache first.
// Analytics is best-effort: any failure there degrades to a nil Analytics
// rather than failing the whole lookup
func (c *Client) Fetch(ctx context.Context, email string) (Result, error) {
	key := "xposed_" + email
	if v, ok := c.cache.Get(key); ok {
		return v.(Result), nil
	}

	breaches, err := c.checkEmail(ctx, email)
	if err != nil {
		return Result{}, err
	}

	res := Result{Breaches: breaches}
	if len(breaches) > 0 {
		res.Analytics = c.analytics(ctx, email)
	}

	c.cache.Set(key, res)
	return res, nil
}

func (c *Client) checkEmail(ctx context.Context, email string) ([]string, error) {
	u := c.opts.BaseURL + "/check-email/" + url.PathEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "xposed new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "xposed request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		var wire checkWire
		if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "xposed decode failed")
		}
		var names []string
		for _, group := range wire.Breaches {
			names = append(names, group...)
		}
		if names == nil {
			names = []string{}
		}
		return names, nil

	case http.StatusNotFound:
		return []string{}, nil

	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, perr.Unavailablef("xposed unexpected status %d body %s", resp.StatusCode, string(body))
	}
}

// analytics never fails the caller; a nil return means no assessment available
func (c *Client) analytics(ctx context.Context, email string) *Analytics {
	u := c.opts.BaseURL + "/breach-analytics?email=" + url.QueryEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("analytics request failed")
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Msg("analytics unavailable")
		return nil
	}

	var wire analyticsWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		c.log.Warn().Err(err).Msg("analytics decode failed")
		return nil
	}

	out := &Analytics{}
	if len(wire.Metrics.Risk) > 0 {
		out.RiskLabel = wire.Metrics.Risk[0].RiskLabel
		out.RiskScore = wire.Metrics.Risk[0].RiskScore
	}
	if len(wire.Metrics.PasswordsStrength) > 0 {
		out.PlaintextPasswords = wire.Metrics.PasswordsStrength[0].PlainText
	}
	return out
}
