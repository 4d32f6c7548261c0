package hibp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"footprint/internal/platform/cache"
	perr "footprint/internal/platform/errors"
)

func TestFetch_DecodesAndCaches(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/breachedaccount/user@example.com" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("truncateResponse") != "false" {
			t.Errorf("truncateResponse = %q", r.URL.RawQuery)
		}
		if r.Header.Get("hibp-api-key") != "k" {
			t.Errorf("missing api key header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"Name":"Adobe","Domain":"adobe.com","BreachDate":"2013-10-04","PwnCount":152445165,"DataClasses":["Email addresses"]}]`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, APIKey: "k"}, cache.New(time.Minute))

	out, err := c.Fetch(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Adobe" || out[0].PwnCount != 152445165 {
		t.Fatalf("out = %+v", out)
	}

	// second lookup is served from cache
	if _, err := c.Fetch(context.Background(), "user@example.com"); err != nil {
		t.Fatalf("Fetch(cached): %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("upstream hit %d times, want 1", hits.Load())
	}
}

func TestFetch_NotFoundIsClean(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, APIKey: "k"}, cache.New(time.Minute))

	out, err := c.Fetch(context.Background(), "clean@example.com")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("out = %#v, want empty non-nil", out)
	}

	// the clean outcome is cached; a second lookup stays local
	if _, err := c.Fetch(context.Background(), "clean@example.com"); err != nil {
		t.Fatalf("Fetch(cached): %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("upstream hit %d times, want 1", hits.Load())
	}
}

func TestFetch_NoKeySkipsUpstream(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL}, cache.New(time.Minute))

	out, err := c.Fetch(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("out = %+v", out)
	}
	if hits.Load() != 0 {
		t.Fatalf("upstream dialed %d times without a key", hits.Load())
	}
}

func TestFetch_RateLimitRetriesOnce(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, APIKey: "k"}, cache.New(time.Minute))

	var slept []time.Duration
	c.sleep = func(d time.Duration) { slept = append(slept, d) }

	out, err := c.Fetch(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("out = %+v", out)
	}
	if hits.Load() != 2 {
		t.Fatalf("upstream hit %d times, want 2", hits.Load())
	}
	if len(slept) != 1 || slept[0] != 2*time.Second {
		t.Fatalf("slept = %v, want one 2s wait", slept)
	}
}

func TestFetch_RateLimitTwiceFails(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, APIKey: "k"}, cache.New(time.Minute))
	c.sleep = func(time.Duration) {}

	_, err := c.Fetch(context.Background(), "user@example.com")
	if !perr.IsCode(err, perr.ErrorCodeTooManyRequests) {
		t.Fatalf("err = %v, want too many requests", err)
	}
}

func TestFetch_ServerErrorSurfaces(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, APIKey: "k"}, cache.New(time.Minute))

	_, err := c.Fetch(context.Background(), "user@example.com")
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v, want unavailable", err)
	}

	// failures are not cached; the next lookup dials again
	if _, err := c.Fetch(context.Background(), "user@example.com"); err == nil {
		t.Fatal("second lookup should still fail, not hit a cached error")
	}
}
