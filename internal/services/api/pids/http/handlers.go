// Package http provides http transport for pids
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"ifcb/internal/modkit/httpkit"
	svc "ifcb/internal/services/api/pids/service"
)

// Register mounts pid endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// parse a pid into its named fields
	httpkit.Get(r, "/{pid}", h.parse)
}

type handlers struct{ svc svc.Service }

func (h *handlers) parse(r *stdhttp.Request) (any, error) {
	return h.svc.Parse(r.Context(), chi.URLParam(r, "pid"))
}
