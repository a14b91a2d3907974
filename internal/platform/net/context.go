// Package net provides request-context helpers and the wire envelope shared
// by transports
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequest annotates the context with a request id, stored under chi's key
// so chi-aware middleware sees the same value
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID returns the request id on the context, if any
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}
