package modkit

import (
	"net/http"
	"testing"

	"ifcb/internal/modkit/httpkit"
)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()

	if b.Name != "" {
		t.Fatalf("default Name = %q, want empty", b.Name)
	}
	if b.Prefix != "" {
		t.Fatalf("default Prefix = %q, want empty", b.Prefix)
	}
	if b.Ports != nil {
		t.Fatalf("default Ports non-nil")
	}
	if len(b.Mw) != 0 {
		t.Fatalf("default Mw length = %d, want 0", len(b.Mw))
	}

	// Subrouter default is identity; should return what it was given
	var r httpkit.Router
	if r2 := b.Subrouter(r); r2 != r {
		t.Fatalf("default Subrouter should be identity")
	}

	// Register default is no-op; ensure it doesn't panic
	defer func() {
		if v := recover(); v != nil {
			t.Fatalf("default Register panicked: %v", v)
		}
	}()
	b.Register(r)
}

func TestBuild_WithOptions(t *testing.T) {
	t.Parallel()

	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }

	registered := false
	type ports struct{ N int }

	b := Build(
		WithName("bins"),
		WithPrefix("/bins"),
		WithMiddlewares(mwA, mwB),
		WithPorts(ports{N: 7}),
		WithRegister(func(httpkit.Router) { registered = true }),
	)

	if b.Name != "bins" || b.Prefix != "/bins" {
		t.Fatalf("Name/Prefix = %q/%q", b.Name, b.Prefix)
	}
	if len(b.Mw) != 2 {
		t.Fatalf("Mw length = %d, want 2", len(b.Mw))
	}
	if p, ok := b.Ports.(ports); !ok || p.N != 7 {
		t.Fatalf("Ports = %#v", b.Ports)
	}

	var r httpkit.Router
	b.Register(r)
	if !registered {
		t.Fatalf("Register hook not invoked")
	}
}
