package repositories

import (
	"context"

	"github.com/google/uuid"

	"marketly.backend/internal/domain/entities"
)

// MerchantRepository defines merchant data operations
type MerchantRepository interface {
	Create(ctx context.Context, merchant *entities.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error)
	// GetByIDForUpdate locks the merchant row for the duration of the
	// surrounding transaction; used by status transitions.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Merchant, error)
	GetByOwnerUserID(ctx context.Context, userID uuid.UUID) (*entities.Merchant, error)
	Update(ctx context.Context, merchant *entities.Merchant) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, status *entities.MerchantStatus, limit, offset int) ([]*entities.Merchant, int64, error)
	ListBranches(ctx context.Context, parentID uuid.UUID) ([]*entities.Merchant, error)
	CountDocuments(ctx context.Context, merchantID uuid.UUID) (int64, error)
	CountPaymentMethods(ctx context.Context, merchantID uuid.UUID) (int64, error)
}

// MerchantStatusLogRepository appends and reads the immutable audit trail
type MerchantStatusLogRepository interface {
	Append(ctx context.Context, log *entities.MerchantStatusLog) error
	ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.MerchantStatusLog, error)
}
