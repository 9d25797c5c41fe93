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

// BookingRepository implements booking data operations
type BookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create creates a new booking
func (r *BookingRepository) Create(ctx context.Context, booking *entities.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	m := r.toModel(booking)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	booking.ID = m.ID
	return nil
}

// GetByID gets a booking by ID
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	var m models.Booking
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByIDForUpdate gets a booking by ID holding a row lock
func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	var m models.Booking
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

// Update persists the booking's status and timestamps
func (r *BookingRepository) Update(ctx context.Context, booking *entities.Booking) error {
	booking.UpdatedAt = time.Now()
	m := r.toModel(booking)

	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Select("status", "confirmed_at", "cancelled_at", "completed_at", "updated_at").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListActiveOnDate returns pending/confirmed bookings for the service
// on the given date
func (r *BookingRepository) ListActiveOnDate(ctx context.Context, serviceID uuid.UUID, date time.Time) ([]*entities.Booking, error) {
	var ms []models.Booking
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("service_id = ? AND booking_date = ? AND status IN ?",
			serviceID, date,
			[]string{string(entities.BookingStatusPending), string(entities.BookingStatusConfirmed)}).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	bookings := make([]*entities.Booking, 0, len(ms))
	for i := range ms {
		bookings = append(bookings, r.toEntity(&ms[i]))
	}
	return bookings, nil
}

// List returns bookings filtered by merchant and status, newest first
func (r *BookingRepository) List(ctx context.Context, merchantID *uuid.UUID, status *entities.BookingStatus, limit, offset int) ([]*entities.Booking, int64, error) {
	db := GetDB(ctx, r.db)
	query := db.WithContext(ctx).Model(&models.Booking{})
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

	var ms []models.Booking
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	bookings := make([]*entities.Booking, 0, len(ms))
	for i := range ms {
		bookings = append(bookings, r.toEntity(&ms[i]))
	}
	return bookings, total, nil
}

func (r *BookingRepository) toModel(e *entities.Booking) *models.Booking {
	return &models.Booking{
		ID:           e.ID,
		MerchantID:   e.MerchantID,
		ServiceID:    e.ServiceID,
		CustomerID:   e.CustomerID,
		BookingDate:  e.BookingDate,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		PartySize:    e.PartySize,
		Status:       string(e.Status),
		ServicePrice: e.ServicePrice,
		FeeRate:      e.FeeRate,
		FeeAmount:    e.FeeAmount,
		TotalAmount:  e.TotalAmount,
		ConfirmedAt:  e.ConfirmedAt.Ptr(),
		CancelledAt:  e.CancelledAt.Ptr(),
		CompletedAt:  e.CompletedAt.Ptr(),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func (r *BookingRepository) toEntity(m *models.Booking) *entities.Booking {
	return &entities.Booking{
		ID:           m.ID,
		MerchantID:   m.MerchantID,
		ServiceID:    m.ServiceID,
		CustomerID:   m.CustomerID,
		BookingDate:  m.BookingDate,
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		PartySize:    m.PartySize,
		Status:       entities.BookingStatus(m.Status),
		ServicePrice: m.ServicePrice,
		FeeRate:      m.FeeRate,
		FeeAmount:    m.FeeAmount,
		TotalAmount:  m.TotalAmount,
		ConfirmedAt:  null.TimeFromPtr(m.ConfirmedAt),
		CancelledAt:  null.TimeFromPtr(m.CancelledAt),
		CompletedAt:  null.TimeFromPtr(m.CompletedAt),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
