// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"footprint/internal/modkit/httpkit"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	Version     string
	StartedAt   time.Time
	PG          any

	// external source keys present in config, reported but never dialed here
	HIBPConfigured   bool
	HunterConfigured bool
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
}

// HealthResponse is the health payload
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Version   string         `json:"version"`
	Services  HealthServices `json:"services"`
	Uptime    int64          `json:"uptime"`
}

// HealthServices reports per dependency status
type HealthServices struct {
	Database     string            `json:"database"`
	ExternalAPIs ExternalAPIStatus `json:"external_apis"`
}

// ExternalAPIStatus reports source availability by configuration
type ExternalAPIStatus struct {
	HaveIBeenPwned string `json:"haveibeenpwned"`
	HunterIO       string `json:"hunter_io"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // ok fail skipped unknown
	Error  string `json:"error,omitempty"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"`
}

func (h *handlers) health(_ *http.Request) (any, error) {
	db := "not configured"
	if h.deps.PG != nil {
		db = "connected"
		if p, ok := h.deps.PG.(Pinger); ok {
			ctx, cancel := stdctx.WithTimeout(stdctx.Background(), 2*time.Second)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				db = "error"
			}
		}
	}

	avail := func(configured bool) string {
		if configured {
			return "available"
		}
		return "not configured"
	}

	return HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.deps.Version,
		Services: HealthServices{
			Database: db,
			ExternalAPIs: ExternalAPIStatus{
				HaveIBeenPwned: avail(h.deps.HIBPConfigured),
				HunterIO:       avail(h.deps.HunterConfigured),
			},
		},
		Uptime: int64(time.Since(h.deps.StartedAt) / time.Second),
	}, nil
}

func (h *handlers) ready(_ *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(stdctx.Background(), 2*time.Second)
	defer cancel()

	check := func(name string, c any) ReadyCheck {
		if c == nil {
			return ReadyCheck{Name: name, Status: "skipped"}
		}
		if p, ok := c.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
			}
			return ReadyCheck{Name: name, Status: "ok"}
		}
		return ReadyCheck{Name: name, Status: "unknown"}
	}

	pg := check("pg", h.deps.PG)

	overall := "ok"
	if pg.Status == "fail" {
		overall = "fail"
	}

	return ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{pg},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}
