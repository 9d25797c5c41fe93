package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"marketly.backend/internal/domain/entities"
)

// ReservationRepository defines reservation data operations
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entities.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Reservation, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Reservation, error)
	Update(ctx context.Context, reservation *entities.Reservation) error
	// ListOverlapping returns non-cancelled reservations whose
	// [check_in, check_out) interval intersects [checkIn, checkOut).
	ListOverlapping(ctx context.Context, serviceID uuid.UUID, checkIn, checkOut time.Time) ([]*entities.Reservation, error)
	List(ctx context.Context, merchantID *uuid.UUID, status *entities.ReservationStatus, limit, offset int) ([]*entities.Reservation, int64, error)
}
