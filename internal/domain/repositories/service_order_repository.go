package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"marketly.backend/internal/domain/entities"
)

// ServiceOrderRepository defines service order data operations
type ServiceOrderRepository interface {
	Create(ctx context.Context, order *entities.ServiceOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ServiceOrder, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.ServiceOrder, error)
	Update(ctx context.Context, order *entities.ServiceOrder) error
	// CountOnDate returns the number of orders created on the given
	// calendar day (global, not per merchant); feeds the order-number
	// sequence. Must run inside the creation transaction.
	CountOnDate(ctx context.Context, date time.Time) (int64, error)
	List(ctx context.Context, merchantID *uuid.UUID, status *entities.OrderStatus, limit, offset int) ([]*entities.ServiceOrder, int64, error)
}
