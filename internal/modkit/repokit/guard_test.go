package repokit

import (
	"context"
	"errors"
	"testing"
)

type okPing struct{}

func (okPing) Ping(context.Context) error { return nil }

type badPing struct{}

func (badPing) Ping(context.Context) error { return errors.New("down") }

type fakeGuard struct{ err error }

func (g fakeGuard) Guard(context.Context) error { return g.err }

func TestMustPing(t *testing.T) {
	t.Parallel()

	MustPing(context.Background(), "pg", okPing{})

	defer func() {
		if recover() == nil {
			t.Fatalf("MustPing should panic when ping fails")
		}
	}()
	MustPing(context.Background(), "pg", badPing{})
}

func TestMustGuard(t *testing.T) {
	t.Parallel()

	MustGuard(context.Background(), fakeGuard{})

	defer func() {
		if recover() == nil {
			t.Fatalf("MustGuard should panic when guard fails")
		}
	}()
	MustGuard(context.Background(), fakeGuard{err: errors.New("down")})
}
