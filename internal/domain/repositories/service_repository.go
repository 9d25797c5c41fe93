package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"marketly.backend/internal/domain/entities"
)

// ServiceRepository defines service configuration reads. Service
// administration is outside the transaction engine; it only consumes.
type ServiceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error)
	// LockByID takes a row lock on the service so concurrent
	// availability/overlap checks against it are serialized. Must run
	// inside a UnitOfWork transaction.
	LockByID(ctx context.Context, id uuid.UUID) (*entities.Service, error)
	GetSchedule(ctx context.Context, serviceID uuid.UUID, day time.Weekday) ([]*entities.ServiceSchedule, error)
}
