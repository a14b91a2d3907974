// Package module implements the bin index worker module
package module

import (
	"ifcb/internal/adapters/raw"
	"ifcb/internal/modkit"
	"ifcb/internal/modkit/httpkit"
	str "ifcb/internal/platform/strings"
	"ifcb/internal/services/index/domain"
	"ifcb/internal/services/index/repo"
	"ifcb/internal/services/index/service"
)

// Ports exposed by the index module
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements the index worker module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new index module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	dir := raw.NewDataDirectory(opts.Root,
		raw.WithWhitelist(str.IfEmpty(opts.Whitelist, raw.DefaultWhitelist)...),
		raw.WithBlacklist(str.IfEmpty(opts.Blacklist, raw.DefaultBlacklist)...),
	)

	var targets repo.TargetWriter
	if deps.CH != nil {
		targets = repo.NewCH(deps.CH)
	}

	svc := service.New(deps.PG, repo.NewPG(), targets, dir, deps.Log, service.Config{
		Refresh:   opts.Refresh,
		BatchSize: opts.BatchSize,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Runner: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "index" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
