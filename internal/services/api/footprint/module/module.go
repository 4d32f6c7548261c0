// Package module wires footprint into the API using modkit
package module

import (
	"net/http"
	"time"

	modkit "footprint/internal/modkit"
	"footprint/internal/modkit/httpkit"
	"footprint/internal/platform/cache"
	str "footprint/internal/platform/strings"

	"footprint/internal/adapters/sources/emailrep"
	"footprint/internal/adapters/sources/hibp"
	"footprint/internal/adapters/sources/hunter"
	"footprint/internal/adapters/sources/pwnedpw"
	"footprint/internal/adapters/sources/xposed"

	fphttp "footprint/internal/services/api/footprint/http"
	fprepo "footprint/internal/services/api/footprint/repo"
	fpsvc "footprint/internal/services/api/footprint/service"
)

// Module implements the footprint module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc fpsvc.Service
}

// New constructs the footprint module. Source adapters share one TTL cache
// and are configured from the SOURCE_ config scope
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("footprint"),
		modkit.WithPrefix("/footprint"),
	}, opts...)...)

	srcCfg := deps.Cfg.Prefix("SOURCE_")
	shared := cache.New(srcCfg.MayDuration("CACHE_TTL", 10*time.Minute))

	src := fpsvc.Sources{
		Breaches: hibp.NewClient(hibp.Options{
			BaseURL: srcCfg.MayString("HIBP_BASE_URL", ""),
			APIKey:  srcCfg.MayString("HIBP_API_KEY", ""),
		}, shared),
		Secondary: xposed.NewClient(xposed.Options{
			BaseURL: srcCfg.MayString("XPOSED_BASE_URL", ""),
		}, shared),
		Discovery: hunter.NewClient(hunter.Options{
			BaseURL: srcCfg.MayString("HUNTER_BASE_URL", ""),
			APIKey:  srcCfg.MayString("HUNTER_API_KEY", ""),
		}, shared),
		Reputation: emailrep.NewClient(emailrep.Options{
			BaseURL: srcCfg.MayString("EMAILREP_BASE_URL", ""),
			APIKey:  srcCfg.MayString("EMAILREP_API_KEY", ""),
		}, shared),
		Passwords: pwnedpw.NewClient(pwnedpw.Options{
			BaseURL: srcCfg.MayString("PWNEDPW_BASE_URL", ""),
		}),
	}

	svc := fpsvc.New(src, deps.PG, fprepo.NewPG())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Checker: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		fphttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module port set
func (m *Module) Ports() any { return m.ports }
