package repositories

import (
	"context"

	"github.com/google/uuid"

	"marketly.backend/internal/domain/entities"
)

// PlatformFeeRepository defines platform fee lookups and administration.
type PlatformFeeRepository interface {
	// GetActive returns the single active fee row for the transaction
	// type, or ErrNotFound when none is active.
	GetActive(ctx context.Context, txType entities.TransactionType) (*entities.PlatformFee, error)
	Create(ctx context.Context, fee *entities.PlatformFee) error
	// Activate marks the row active and deactivates all siblings of the
	// same transaction type in one transaction.
	Activate(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*entities.PlatformFee, error)
}
