// Package http provides http transport for bins
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ifcb/internal/modkit/httpkit"
	perr "ifcb/internal/platform/errors"
	"ifcb/internal/platform/net/http/bind"
	"ifcb/internal/services/api/bins/domain"
	svc "ifcb/internal/services/api/bins/service"
)

// Register mounts bin endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// paged listing in chronological order
	httpkit.Get(r, "/", h.list)

	// one bin's counts, metrics, and header
	httpkit.Get(r, "/{lid}", h.summary)

	// one record keyed by column name
	httpkit.Get(r, "/{lid}/targets/{n}", h.target)
}

type handlers struct{ svc svc.Service }

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	in, err := bind.ParseQuery[domain.ListInput](r)
	if err != nil {
		return nil, err
	}
	items, total, err := h.svc.List(r.Context(), in)
	if err != nil {
		return nil, err
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 {
		size = svc.DefaultPageSize
	}
	return httpkit.List(items, total, page, size), nil
}

func (h *handlers) summary(r *stdhttp.Request) (any, error) {
	return h.svc.Summary(r.Context(), chi.URLParam(r, "lid"))
}

func (h *handlers) target(r *stdhttp.Request) (any, error) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 0 {
		return nil, perr.InvalidArgf("target must be a non negative integer")
	}
	return h.svc.Target(r.Context(), chi.URLParam(r, "lid"), n)
}
