// Package module wires bins into the API using modkit
package module

import (
	"net/http"

	"ifcb/internal/adapters/raw"
	modkit "ifcb/internal/modkit"
	"ifcb/internal/modkit/httpkit"
	str "ifcb/internal/platform/strings"
	binshttp "ifcb/internal/services/api/bins/http"
	binssvc "ifcb/internal/services/api/bins/service"
)

// Module implements the bins module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc binssvc.Service
}

// New constructs the bins module over a raw data directory
func New(deps modkit.Deps, dir *raw.DataDirectory, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("bins"), modkit.WithPrefix("/bins")}, opts...)...)

	svc := binssvc.New(dir)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptBinPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		binshttp.Register(r, m.svc)
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
