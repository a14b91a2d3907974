// Package api provides the HTTP API for the application
package api

import (
	"ifcb/internal/adapters/raw"
	"ifcb/internal/core/pid"
	"ifcb/internal/platform/config"
	"ifcb/internal/platform/logger"
	phttp "ifcb/internal/platform/net/http"
	"ifcb/internal/platform/net/http/bind"
	"ifcb/internal/platform/net/middleware"
	"ifcb/internal/platform/store"

	"ifcb/internal/modkit"
	"ifcb/internal/modkit/httpkit"
	"ifcb/internal/modkit/module"

	binsmod "ifcb/internal/services/api/bins/module"
	metamod "ifcb/internal/services/api/meta/module"
	pidsmod "ifcb/internal/services/api/pids/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	DataDir        *raw.DataDirectory
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	registerValidations()

	// liveness probe outside the versioned tree, before any route registration
	r.Use(middleware.Heartbeat("/health"))

	mods := []module.Module{
		metamod.New(deps),
		pidsmod.New(deps),
		binsmod.New(deps, opt.DataDir),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}

// registerValidations installs the pid tag so DTOs can validate identifier fields
func registerValidations() {
	_ = bind.RegisterValidation("pid", "{0} must be a valid pid", func(fl bind.FieldLevel) bool {
		_, err := pid.Parse(fl.Field().String())
		return err == nil
	})
}
