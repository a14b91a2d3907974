package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "ifcb/internal/platform/errors"
	phttp "ifcb/internal/platform/net/http"
)

func newRouter() (Router, *chi.Mux) {
	mux := chi.NewRouter()
	return phttp.AdaptChi(mux), mux
}

func TestGetEnvelopesResult(t *testing.T) {
	r, mux := newRouter()
	Get(r, "/ping", func(*http.Request) (any, error) {
		return map[string]string{"pong": "ok"}, nil
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if env.StatusCode != http.StatusOK {
		t.Fatalf("envelope status = %d", env.StatusCode)
	}
}

func TestGetMapsErrors(t *testing.T) {
	r, mux := newRouter()
	Get(r, "/missing", func(*http.Request) (any, error) {
		return nil, perr.NotFoundf("no such bin")
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetPassesThroughResponses(t *testing.T) {
	r, mux := newRouter()
	Get(r, "/list", func(*http.Request) (any, error) {
		return List([]int{1, 2, 3}, 3, 1, 10), nil
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/list", nil))

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if env.Page == nil || env.Page.Total != 3 {
		t.Fatalf("pagination block missing: %+v", env.Page)
	}
}

func TestMountAPIV1Prefixes(t *testing.T) {
	r, mux := newRouter()
	MountAPIV1(r, nil, func(api Router) {
		Get(api, "/pids/{pid}", func(req *http.Request) (any, error) {
			return chi.URLParam(req, "pid"), nil
		})
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/pids/D20160714T023910_IFCB101", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pids/x", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unversioned path should 404, got %d", rec.Code)
	}
}

func TestMountUnderAppliesMiddleware(t *testing.T) {
	r, mux := newRouter()
	seen := false
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			seen = true
			next.ServeHTTP(w, req)
		})
	}
	MountUnder(r, "/bins", []func(http.Handler) http.Handler{mw}, func(sub Router) {
		Get(sub, "/", func(*http.Request) (any, error) { return "ok", nil })
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bins/", nil))
	if !seen {
		t.Fatalf("middleware did not run")
	}
}
