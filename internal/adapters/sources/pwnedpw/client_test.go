package pwnedpw

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "footprint/internal/platform/errors"
)

func digestParts(password string) (prefix, suffix string) {
	sum := sha1.Sum([]byte(password))
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	return digest[:5], digest[5:]
}

func TestCheck_OnlyPrefixLeaves(t *testing.T) {
	t.Parallel()

	prefix, suffix := digestParts("hunter2")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/range/"+prefix {
			t.Errorf("path = %q, want /range/%s", r.URL.Path, prefix)
		}
		if strings.Contains(r.URL.String(), suffix) {
			t.Errorf("digest suffix leaked in request: %q", r.URL.String())
		}
		if r.Header.Get("Add-Padding") != "true" {
			t.Errorf("missing Add-Padding header")
		}
		_, _ = w.Write([]byte("0018A45C4D1DEF81644B54AB7F969B88D65:1\r\n" + suffix + ":17302\r\nFFFFF0000000000000000000000000000000:2\r\n"))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})

	out, err := c.Check(context.Background(), "hunter2")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !out.Pwned || out.Count != 17302 {
		t.Fatalf("out = %+v", out)
	}
}

func TestCheck_NotInRange(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("0018A45C4D1DEF81644B54AB7F969B88D65:3\r\n"))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})

	out, err := c.Check(context.Background(), "correct horse battery staple")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if out.Pwned || out.Count != 0 {
		t.Fatalf("out = %+v", out)
	}
}

func TestCheck_PaddingZeroCount(t *testing.T) {
	t.Parallel()

	_, suffix := digestParts("hunter2")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// padded entries carry a zero count and must read as not pwned
		_, _ = w.Write([]byte(suffix + ":0\r\n"))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})

	out, err := c.Check(context.Background(), "hunter2")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if out.Pwned {
		t.Fatalf("padded zero-count entry reported as pwned: %+v", out)
	}
}

func TestCheck_ServerErrorSurfaces(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})

	if _, err := c.Check(context.Background(), "hunter2"); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v, want unavailable", err)
	}
}
