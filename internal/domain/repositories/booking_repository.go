package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"marketly.backend/internal/domain/entities"
)

// BookingRepository defines booking data operations
type BookingRepository interface {
	Create(ctx context.Context, booking *entities.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Booking, error)
	Update(ctx context.Context, booking *entities.Booking) error
	// ListActiveOnDate returns pending/confirmed bookings for the
	// service on the given date; input to the capacity check.
	ListActiveOnDate(ctx context.Context, serviceID uuid.UUID, date time.Time) ([]*entities.Booking, error)
	List(ctx context.Context, merchantID *uuid.UUID, status *entities.BookingStatus, limit, offset int) ([]*entities.Booking, int64, error)
}
