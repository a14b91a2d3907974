package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Parse(ctx context.Context, raw string) (Parsed, error)
}
