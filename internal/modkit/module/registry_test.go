package module

import (
	"testing"

	phttp "ifcb/internal/platform/net/http"
)

type pinger interface{ Ping() string }

type pingPort struct{}

func (pingPort) Ping() string { return "pong" }

// portsModule is a minimal Module for registry and port lookup tests
type portsModule struct{ ports any }

func (m portsModule) MountRoutes(phttp.Router) {}
func (m portsModule) Ports() any               { return m.ports }
func (m portsModule) Name() string             { return "ports-test" }

func TestRegistryRoundTrip(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register("bins", pingPort{})

	got, ok := PortsAs[pinger]("bins")
	if !ok {
		t.Fatalf("PortsAs did not find bins")
	}
	if got.Ping() != "pong" {
		t.Fatalf("Ping = %q", got.Ping())
	}

	if _, ok := PortsAs[pinger]("missing"); ok {
		t.Fatalf("PortsAs found a module that was never registered")
	}
}

func TestPortsOfDirect(t *testing.T) {
	m := portsModule{ports: pingPort{}}

	got, ok := PortsOf[pinger](m)
	if !ok {
		t.Fatalf("PortsOf did not match the direct implementation")
	}
	if got.Ping() != "pong" {
		t.Fatalf("Ping = %q", got.Ping())
	}
}

func TestPortsOfWalksStructFields(t *testing.T) {
	m := portsModule{ports: struct{ P pinger }{P: pingPort{}}}

	got, ok := PortsOf[pinger](m)
	if !ok {
		t.Fatalf("PortsOf did not find the port field")
	}
	if got.Ping() != "pong" {
		t.Fatalf("Ping = %q", got.Ping())
	}

	if _, ok := PortsOf[interface{ Nope() }](m); ok {
		t.Fatalf("PortsOf matched an interface nothing implements")
	}
}

func TestMustPortsOfPanics(t *testing.T) {
	m := portsModule{ports: nil}
	defer func() {
		if recover() == nil {
			t.Fatalf("MustPortsOf did not panic for a missing port")
		}
	}()
	MustPortsOf[pinger](m)
}
