package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "footprint/internal/platform/errors"
)

type checkIn struct {
	Email string `json:"email" validate:"required,email"`
}

func TestJSONHandler(t *testing.T) {
	t.Parallel()

	h := JSONHandler[checkIn](func(_ *http.Request, in checkIn) (any, error) {
		return map[string]string{"echo": in.Email}, nil
	})

	// valid body
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"user@example.com"}`))
	rr := httptest.NewRecorder()
	h(rr, req)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"echo":"user@example.com"`) {
		t.Fatalf("code=%d body=%q", rr.Code, rr.Body.String())
	}

	// validation failure surfaces as 400 with the wire error field
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope"}`))
	rr = httptest.NewRecorder()
	h(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("invalid email => %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"error"`) {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestJSONHandler_HandlerError(t *testing.T) {
	t.Parallel()

	h := JSONHandler[checkIn](func(_ *http.Request, _ checkIn) (any, error) {
		return nil, perr.Unavailablef("External API temporarily unavailable")
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"user@example.com"}`))
	rr := httptest.NewRecorder()
	h(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("code = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "External API temporarily unavailable") {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestJSONHandlerNoBody(t *testing.T) {
	t.Parallel()

	h := JSONHandlerNoBody(func(*http.Request) (any, error) {
		return map[string]bool{"ok": true}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h(rr, req)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"ok":true`) {
		t.Fatalf("code=%d body=%q", rr.Code, rr.Body.String())
	}
}
