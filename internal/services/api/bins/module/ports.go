package module

import (
	"context"

	"ifcb/internal/services/api/bins/domain"
	binssvc "ifcb/internal/services/api/bins/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptBinPort struct{ svc binssvc.Service }

// List walks the data directory and returns one page of bins
func (a adaptBinPort) List(ctx context.Context, in domain.ListInput) ([]domain.ListItem, int, error) {
	return a.svc.List(ctx, in)
}

// Summary resolves one bin and derives its counts and metrics
func (a adaptBinPort) Summary(ctx context.Context, lid string) (domain.Summary, error) {
	return a.svc.Summary(ctx, lid)
}

// Target returns one record of a bin keyed by column name
func (a adaptBinPort) Target(ctx context.Context, lid string, n int) (domain.Target, error) {
	return a.svc.Target(ctx, lid, n)
}
