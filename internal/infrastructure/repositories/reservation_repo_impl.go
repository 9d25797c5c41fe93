package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketly.backend/internal/domain/entities"
	domainerrors "marketly.backend/internal/domain/errors"
	"marketly.backend/internal/infrastructure/models"
	"marketly.backend/pkg/utils"
)

// ReservationRepository implements reservation data operations
type ReservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create creates a new reservation
func (r *ReservationRepository) Create(ctx context.Context, reservation *entities.Reservation) error {
	if reservation.ID == uuid.Nil {
		reservation.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now

	m := r.toModel(reservation)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	reservation.ID = m.ID
	return nil
}

// GetByID gets a reservation by ID
func (r *ReservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Reservation, error) {
	var m models.Reservation
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByIDForUpdate gets a reservation by ID holding a row lock
func (r *ReservationRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Reservation, error) {
	var m models.Reservation
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update persists the reservation's status and timestamps
func (r *ReservationRepository) Update(ctx context.Context, reservation *entities.Reservation) error {
	reservation.UpdatedAt = time.Now()
	m := r.toModel(reservation)

	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Reservation{}).
		Where("id = ?", reservation.ID).
		Select("status", "confirmed_at", "cancelled_at", "checked_in_at", "checked_out_at", "updated_at").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListOverlapping returns non-cancelled reservations whose
// [check_in, check_out) interval intersects [checkIn, checkOut).
// Boundary-touching stays (one's check-out on the other's check-in)
// are excluded by the strict inequalities.
func (r *ReservationRepository) ListOverlapping(ctx context.Context, serviceID uuid.UUID, checkIn, checkOut time.Time) ([]*entities.Reservation, error) {
	var ms []models.Reservation
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("service_id = ? AND status <> ? AND check_in < ? AND check_out > ?",
			serviceID, string(entities.ReservationStatusCancelled), checkOut, checkIn).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	reservations := make([]*entities.Reservation, 0, len(ms))
	for i := range ms {
		reservations = append(reservations, r.toEntity(&ms[i]))
	}
	return reservations, nil
}

// List returns reservations filtered by merchant and status, newest first
func (r *ReservationRepository) List(ctx context.Context, merchantID *uuid.UUID, status *entities.ReservationStatus, limit, offset int) ([]*entities.Reservation, int64, error) {
	db := GetDB(ctx, r.db)
	query := db.WithContext(ctx).Model(&models.Reservation{})
	if merchantID != nil {
		query = query.Where("merchant_id = ?", *merchantID)
	}
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Reservation
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	reservations := make([]*entities.Reservation, 0, len(ms))
	for i := range ms {
		reservations = append(reservations, r.toEntity(&ms[i]))
	}
	return reservations, total, nil
}

func (r *ReservationRepository) toModel(e *entities.Reservation) *models.Reservation {
	return &models.Reservation{
		ID:            e.ID,
		MerchantID:    e.MerchantID,
		ServiceID:     e.ServiceID,
		CustomerID:    e.CustomerID,
		CheckIn:       e.CheckIn,
		CheckOut:      e.CheckOut,
		Nights:        e.Nights,
		GuestCount:    e.GuestCount,
		PricePerNight: e.PricePerNight,
		TotalPrice:    e.TotalPrice,
		FeeRate:       e.FeeRate,
		FeeAmount:     e.FeeAmount,
		TotalAmount:   e.TotalAmount,
		Status:        string(e.Status),
		ConfirmedAt:   e.ConfirmedAt.Ptr(),
		CancelledAt:   e.CancelledAt.Ptr(),
		CheckedInAt:   e.CheckedInAt.Ptr(),
		CheckedOutAt:  e.CheckedOutAt.Ptr(),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (r *ReservationRepository) toEntity(m *models.Reservation) *entities.Reservation {
	return &entities.Reservation{
		ID:            m.ID,
		MerchantID:    m.MerchantID,
		ServiceID:     m.ServiceID,
		CustomerID:    m.CustomerID,
		CheckIn:       m.CheckIn,
		CheckOut:      m.CheckOut,
		Nights:        m.Nights,
		GuestCount:    m.GuestCount,
		PricePerNight: m.PricePerNight,
		TotalPrice:    m.TotalPrice,
		FeeRate:       m.FeeRate,
		FeeAmount:     m.FeeAmount,
		TotalAmount:   m.TotalAmount,
		Status:        entities.ReservationStatus(m.Status),
		ConfirmedAt:   null.TimeFromPtr(m.ConfirmedAt),
		CancelledAt:   null.TimeFromPtr(m.CancelledAt),
		CheckedInAt:   null.TimeFromPtr(m.CheckedInAt),
		CheckedOutAt:  null.TimeFromPtr(m.CheckedOutAt),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
