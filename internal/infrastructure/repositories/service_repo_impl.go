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
)

// ServiceRepository implements service configuration reads
type ServiceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository
func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// GetByID gets a service by ID
func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	var m models.Service
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// LockByID gets a service by ID holding a row lock. Serializes the
// availability and overlap checks of concurrent transactions against
// the same service.
func (r *ServiceRepository) LockByID(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	var m models.Service
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

// GetSchedule returns the service's schedule rows for one weekday
func (r *ServiceRepository) GetSchedule(ctx context.Context, serviceID uuid.UUID, day time.Weekday) ([]*entities.ServiceSchedule, error) {
	var ms []models.ServiceSchedule
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("service_id = ? AND day_of_week = ?", serviceID, int(day)).
		Order("start_time ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	schedules := make([]*entities.ServiceSchedule, 0, len(ms))
	for i := range ms {
		m := &ms[i]
		schedules = append(schedules, &entities.ServiceSchedule{
			ID:          m.ID,
			ServiceID:   m.ServiceID,
			DayOfWeek:   time.Weekday(m.DayOfWeek),
			StartTime:   m.StartTime,
			EndTime:     m.EndTime,
			IsAvailable: m.IsAvailable,
		})
	}
	return schedules, nil
}

func (r *ServiceRepository) toEntity(m *models.Service) *entities.Service {
	return &entities.Service{
		ID:                   m.ID,
		MerchantID:           m.MerchantID,
		Name:                 m.Name,
		IsBookable:           m.IsBookable,
		IsSellable:           m.IsSellable,
		IsReservable:         m.IsReservable,
		DurationMinutes:      m.DurationMinutes,
		MaxCapacity:          m.MaxCapacity,
		Price:                m.Price,
		PricePerNight:        m.PricePerNight,
		UnitLabel:            null.StringFromPtr(m.UnitLabel),
		UnitStatus:           entities.UnitStatus(m.UnitStatus),
		RequiresConfirmation: m.RequiresConfirmation,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
