package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketly.backend/internal/domain/entities"
	domainerrors "marketly.backend/internal/domain/errors"
	"marketly.backend/internal/infrastructure/models"
	"marketly.backend/pkg/utils"
)

// PlatformFeeRepository implements platform fee lookups and administration
type PlatformFeeRepository struct {
	db *gorm.DB
}

// NewPlatformFeeRepository creates a new platform fee repository
func NewPlatformFeeRepository(db *gorm.DB) *PlatformFeeRepository {
	return &PlatformFeeRepository{db: db}
}

// GetActive returns the single active fee row for the transaction type
func (r *PlatformFeeRepository) GetActive(ctx context.Context, txType entities.TransactionType) (*entities.PlatformFee, error) {
	var m models.PlatformFee
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("transaction_type = ? AND is_active = ?", string(txType), true).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Create creates a fee row, inactive until activated
func (r *PlatformFeeRepository) Create(ctx context.Context, fee *entities.PlatformFee) error {
	if fee.ID == uuid.Nil {
		fee.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	fee.CreatedAt = now
	fee.UpdatedAt = now

	m := &models.PlatformFee{
		ID:              fee.ID,
		TransactionType: string(fee.TransactionType),
		RatePercentage:  fee.RatePercentage,
		IsActive:        fee.IsActive,
		CreatedAt:       fee.CreatedAt,
		UpdatedAt:       fee.UpdatedAt,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	fee.ID = m.ID
	return nil
}

// Activate makes the row the single active fee for its transaction
// type. Siblings of the same type are deactivated in the same
// transaction so at most one row per type is ever active.
func (r *PlatformFeeRepository) Activate(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.PlatformFee
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&models.PlatformFee{}).
			Where("transaction_type = ? AND id <> ?", m.TransactionType, id).
			Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error; err != nil {
			return err
		}

		return tx.Model(&models.PlatformFee{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{"is_active": true, "updated_at": time.Now()}).Error
	})
}

// Deactivate turns the row off
func (r *PlatformFeeRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.PlatformFee{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List returns all fee rows, newest first
func (r *PlatformFeeRepository) List(ctx context.Context) ([]*entities.PlatformFee, error) {
	var ms []models.PlatformFee
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	fees := make([]*entities.PlatformFee, 0, len(ms))
	for i := range ms {
		fees = append(fees, r.toEntity(&ms[i]))
	}
	return fees, nil
}

func (r *PlatformFeeRepository) toEntity(m *models.PlatformFee) *entities.PlatformFee {
	return &entities.PlatformFee{
		ID:              m.ID,
		TransactionType: entities.TransactionType(m.TransactionType),
		RatePercentage:  m.RatePercentage,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
