// Package api provides the HTTP API for the application
package api

import (
	"footprint/internal/platform/config"
	"footprint/internal/platform/logger"
	phttp "footprint/internal/platform/net/http"
	"footprint/internal/platform/store"

	"footprint/internal/modkit"
	"footprint/internal/modkit/httpkit"
	"footprint/internal/modkit/module"

	footprintmod "footprint/internal/services/api/footprint/module"
	metamod "footprint/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	mods := []module.Module{
		metamod.New(deps),
		footprintmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
