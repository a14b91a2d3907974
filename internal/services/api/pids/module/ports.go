package module

import (
	"context"

	"ifcb/internal/services/api/pids/domain"
	pidssvc "ifcb/internal/services/api/pids/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptPidPort struct{ svc pidssvc.Service }

// Parse resolves a raw pid string into its named fields
func (a adaptPidPort) Parse(ctx context.Context, raw string) (domain.Parsed, error) {
	return a.svc.Parse(ctx, raw)
}
