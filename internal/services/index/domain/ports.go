package domain

import "context"

// RunnerPort drives an indexing pass over a data directory
type RunnerPort interface {
	Run(ctx context.Context) (Stats, error)
}
