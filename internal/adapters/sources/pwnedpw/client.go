// Package pwnedpw checks password exposure using the k-anonymity range API.
// Only the first five hex characters of the SHA-1 digest ever leave the process
package pwnedpw

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	perr "footprint/internal/platform/errors"
	"footprint/internal/platform/logger"
)

const (
	baseURLDefault = "https://api.pwnedpasswords.com"
	defaultTimeout = 10 * time.Second
	defaultUA      = "footprint-checker"
)

// Result is the exposure outcome for one password
type Result struct {
	Pwned bool
	Count int
}

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client queries the range API. Results are never cached: a password is
// not a stable cache key we want to hold in memory
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
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
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("pwnedpw"),
	}
}

// Check reports whether password appears in the corpus and how many times.
// The digest suffix comparison happens locally over the returned range
func (c *Client) Check(ctx context.Context, password string) (Result, error) {
	sum := sha1.Sum([]byte(password))
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	prefix, suffix := digest[:5], digest[5:]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+"/range/"+prefix, nil)
	if err != nil {
		return Result{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "pwnedpw new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Add-Padding", "true")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "pwnedpw request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Result{}, perr.Unavailablef("pwnedpw unexpected status %d", resp.StatusCode)
	}

	// each line is "SUFFIX:COUNT"
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		rest, ok := strings.CutPrefix(line, suffix+":")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			continue
		}
		if n > 0 {
			return Result{Pwned: true, Count: n}, nil
		}
		return Result{}, nil
	}
	if err := sc.Err(); err != nil {
		return Result{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "pwnedpw read failed")
	}

	return Result{}, nil
}
