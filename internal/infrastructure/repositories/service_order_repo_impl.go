package repositories

import (
	"context"
	"errors"
	"strings"
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

// ServiceOrderRepository implements service order data operations
type ServiceOrderRepository struct {
	db *gorm.DB
}

// NewServiceOrderRepository creates a new service order repository
func NewServiceOrderRepository(db *gorm.DB) *ServiceOrderRepository {
	return &ServiceOrderRepository{db: db}
}

// Create creates a new order. A duplicate order number maps to
// ErrAlreadyExists so the caller can recount and retry.
func (r *ServiceOrderRepository) Create(ctx context.Context, order *entities.ServiceOrder) error {
	if order.ID == uuid.Nil {
		order.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	m := r.toModel(order)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if isDuplicateKey(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	order.ID = m.ID
	return nil
}

// GetByID gets an order by ID
func (r *ServiceOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ServiceOrder, error) {
	var m models.ServiceOrder
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByIDForUpdate gets an order by ID holding a row lock
func (r *ServiceOrderRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.ServiceOrder, error) {
	var m models.ServiceOrder
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

// Update persists the order's status and timestamps
func (r *ServiceOrderRepository) Update(ctx context.Context, order *entities.ServiceOrder) error {
	order.UpdatedAt = time.Now()
	m := r.toModel(order)

	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.ServiceOrder{}).
		Where("id = ?", order.ID).
		Select("status", "received_at", "completed_at", "cancelled_at", "updated_at").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CountOnDate counts orders created on the given calendar day across
// all merchants; the result feeds the daily order-number sequence.
func (r *ServiceOrderRepository) CountOnDate(ctx context.Context, date time.Time) (int64, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.ServiceOrder{}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Count(&count).Error
	return count, err
}

// List returns orders filtered by merchant and status, newest first
func (r *ServiceOrderRepository) List(ctx context.Context, merchantID *uuid.UUID, status *entities.OrderStatus, limit, offset int) ([]*entities.ServiceOrder, int64, error) {
	db := GetDB(ctx, r.db)
	query := db.WithContext(ctx).Model(&models.ServiceOrder{})
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

	var ms []models.ServiceOrder
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*entities.ServiceOrder, 0, len(ms))
	for i := range ms {
		orders = append(orders, r.toEntity(&ms[i]))
	}
	return orders, total, nil
}

// isDuplicateKey recognizes unique constraint violations across the
// postgres and sqlite drivers.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

func (r *ServiceOrderRepository) toModel(e *entities.ServiceOrder) *models.ServiceOrder {
	return &models.ServiceOrder{
		ID:          e.ID,
		MerchantID:  e.MerchantID,
		ServiceID:   e.ServiceID,
		CustomerID:  e.CustomerID,
		OrderNumber: e.OrderNumber,
		Quantity:    e.Quantity,
		UnitLabel:   e.UnitLabel.Ptr(),
		UnitPrice:   e.UnitPrice,
		TotalPrice:  e.TotalPrice,
		FeeRate:     e.FeeRate,
		FeeAmount:   e.FeeAmount,
		TotalAmount: e.TotalAmount,
		Status:      string(e.Status),
		ReceivedAt:  e.ReceivedAt.Ptr(),
		CompletedAt: e.CompletedAt.Ptr(),
		CancelledAt: e.CancelledAt.Ptr(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (r *ServiceOrderRepository) toEntity(m *models.ServiceOrder) *entities.ServiceOrder {
	return &entities.ServiceOrder{
		ID:          m.ID,
		MerchantID:  m.MerchantID,
		ServiceID:   m.ServiceID,
		CustomerID:  m.CustomerID,
		OrderNumber: m.OrderNumber,
		Quantity:    m.Quantity,
		UnitLabel:   null.StringFromPtr(m.UnitLabel),
		UnitPrice:   m.UnitPrice,
		TotalPrice:  m.TotalPrice,
		FeeRate:     m.FeeRate,
		FeeAmount:   m.FeeAmount,
		TotalAmount: m.TotalAmount,
		Status:      entities.OrderStatus(m.Status),
		ReceivedAt:  null.TimeFromPtr(m.ReceivedAt),
		CompletedAt: null.TimeFromPtr(m.CompletedAt),
		CancelledAt: null.TimeFromPtr(m.CancelledAt),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
