package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	List(ctx context.Context, in ListInput) ([]ListItem, int, error)
	Summary(ctx context.Context, lid string) (Summary, error)
	Target(ctx context.Context, lid string, n int) (Target, error)
}
