package repositories

import (
	"context"
)

// UnitOfWork defines the interface for atomic operations
type UnitOfWork interface {
	// Do executes the given function within a transaction scope; the
	// transaction handle travels in the returned context. Any error
	// rolls everything back, leaving no partial state or orphan rows.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
