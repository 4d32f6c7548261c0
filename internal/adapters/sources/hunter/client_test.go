package hunter

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

func TestDomainOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"user@example.com", "example.com"},
		{"a@b@c.io", "c.io"},
		{"no-at-sign", ""},
		{"trailing@", ""},
	}
	for _, tc := range cases {
		if got := DomainOf(tc.in); got != tc.want {
			t.Fatalf("DomainOf(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFetch_CombinesBothCalls(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("domain") != "example.com" {
			t.Errorf("domain = %q", r.URL.RawQuery)
		}
		if r.URL.Query().Get("api_key") != "k" {
			t.Errorf("api_key missing: %q", r.URL.RawQuery)
		}
		switch r.URL.Path {
		case "/domain-search":
			_, _ = w.Write([]byte(`{
				"data":{"domain":"example.com","disposable":false,"webmail":false,"country":"US",
					"emails":[{"value":"hr@example.com","confidence":80},{"value":"it@example.com","confidence":95}]},
				"meta":{"results":2}}`))
		case "/discover":
			_, _ = w.Write([]byte(`{"data":{"emails":[{"value":"press@example.com","confidence":70}]}}`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, APIKey: "k"}, cache.New(time.Minute))

	out, err := c.Fetch(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if out.Domain != "example.com" || out.Country != "US" {
		t.Fatalf("out = %+v", out)
	}
	if len(out.DomainSearchEmails) != 2 || len(out.DiscoverEmails) != 1 {
		t.Fatalf("contacts = %d/%d", len(out.DomainSearchEmails), len(out.DiscoverEmails))
	}
	if out.Confidence != 95 {
		t.Fatalf("confidence = %d, want max contact confidence 95", out.Confidence)
	}
}

func TestFetch_SubCallsIndependent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/domain-search":
			w.WriteHeader(http.StatusInternalServerError)
		case "/discover":
			_, _ = w.Write([]byte(`{"data":{"emails":[{"value":"press@example.com","confidence":70}]}}`))
		}
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, APIKey: "k"}, cache.New(time.Minute))

	out, err := c.Fetch(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("one failed sub-call must not fail the lookup: %v", err)
	}
	if len(out.DiscoverEmails) != 1 || len(out.DomainSearchEmails) != 0 {
		t.Fatalf("out = %+v", out)
	}
}

func TestFetch_NoKeySkipsUpstream(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL}, cache.New(time.Minute))

	out, err := c.Fetch(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if out.Domain != "example.com" || len(out.DiscoverEmails) != 0 {
		t.Fatalf("out = %+v", out)
	}
	if hits.Load() != 0 {
		t.Fatalf("upstream dialed %d times without a key", hits.Load())
	}
}

func TestFetch_NoDomainRejected(t *testing.T) {
	t.Parallel()

	c := NewClient(Options{APIKey: "k"}, cache.New(time.Minute))

	if _, err := c.Fetch(context.Background(), "not-an-email"); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v, want invalid argument", err)
	}
}

func TestFetch_CachesResult(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, APIKey: "k"}, cache.New(time.Minute))

	for i := 0; i < 3; i++ {
		if _, err := c.Fetch(context.Background(), "user@example.com"); err != nil {
			t.Fatalf("Fetch: %v", err)
		}
	}
	// two sub-calls on the first lookup, cache after that
	if hits.Load() != 2 {
		t.Fatalf("upstream hit %d times, want 2", hits.Load())
	}
}
