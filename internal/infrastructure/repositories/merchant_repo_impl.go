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

// MerchantRepository implements merchant data operations
type MerchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(db *gorm.DB) *MerchantRepository {
	return &MerchantRepository{db: db}
}

// Create creates a new merchant
func (r *MerchantRepository) Create(ctx context.Context, merchant *entities.Merchant) error {
	if merchant.ID == uuid.Nil {
		merchant.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	merchant.CreatedAt = now
	merchant.UpdatedAt = now

	m := r.toModel(merchant)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	merchant.ID = m.ID
	return nil
}

// GetByID gets a merchant by ID
func (r *MerchantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	var m models.Merchant
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByIDForUpdate gets a merchant by ID holding a row lock for the
// duration of the surrounding transaction.
func (r *MerchantRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	var m models.Merchant
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

// GetByOwnerUserID gets the top-level merchant owned by a user
func (r *MerchantRepository) GetByOwnerUserID(ctx context.Context, userID uuid.UUID) (*entities.Merchant, error) {
	var m models.Merchant
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("owner_user_id = ? AND parent_id IS NULL", userID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update persists the merchant's mutable columns
func (r *MerchantRepository) Update(ctx context.Context, merchant *entities.Merchant) error {
	merchant.UpdatedAt = time.Now()
	m := r.toModel(merchant)

	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Merchant{}).
		Where("id = ?", merchant.ID).
		Select("type", "status", "name", "contact_email", "description", "address",
			"business_type_id", "can_sell_products", "can_take_bookings", "can_rent_units",
			"email_verified_at", "status_reason", "submitted_at", "approved_at",
			"rejected_at", "suspended_at", "updated_at").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a merchant
func (r *MerchantRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Merchant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List returns merchants filtered by status, newest first
func (r *MerchantRepository) List(ctx context.Context, status *entities.MerchantStatus, limit, offset int) ([]*entities.Merchant, int64, error) {
	db := GetDB(ctx, r.db)
	query := db.WithContext(ctx).Model(&models.Merchant{})
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Merchant
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	merchants := make([]*entities.Merchant, 0, len(ms))
	for i := range ms {
		merchants = append(merchants, r.toEntity(&ms[i]))
	}
	return merchants, total, nil
}

// ListBranches returns the branches under an organization
func (r *MerchantRepository) ListBranches(ctx context.Context, parentID uuid.UUID) ([]*entities.Merchant, error) {
	var ms []models.Merchant
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	branches := make([]*entities.Merchant, 0, len(ms))
	for i := range ms {
		branches = append(branches, r.toEntity(&ms[i]))
	}
	return branches, nil
}

// CountDocuments counts verification documents uploaded by the merchant
func (r *MerchantRepository) CountDocuments(ctx context.Context, merchantID uuid.UUID) (int64, error) {
	var count int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.MerchantDocument{}).
		Where("merchant_id = ?", merchantID).
		Count(&count).Error
	return count, err
}

// CountPaymentMethods counts active payment methods for the merchant
func (r *MerchantRepository) CountPaymentMethods(ctx context.Context, merchantID uuid.UUID) (int64, error) {
	var count int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.MerchantPaymentMethod{}).
		Where("merchant_id = ? AND is_active = ?", merchantID, true).
		Count(&count).Error
	return count, err
}

func (r *MerchantRepository) toModel(e *entities.Merchant) *models.Merchant {
	return &models.Merchant{
		ID:              e.ID,
		OwnerUserID:     e.OwnerUserID,
		ParentID:        e.ParentID,
		Type:            string(e.Type),
		Status:          string(e.Status),
		Name:            e.Name,
		ContactEmail:    e.ContactEmail,
		Description:     e.Description.Ptr(),
		Address:         e.Address.Ptr(),
		BusinessTypeID:  e.BusinessTypeID,
		CanSellProducts: e.CanSellProducts,
		CanTakeBookings: e.CanTakeBookings,
		CanRentUnits:    e.CanRentUnits,
		EmailVerifiedAt: e.EmailVerifiedAt.Ptr(),
		StatusReason:    e.StatusReason.Ptr(),
		SubmittedAt:     e.SubmittedAt.Ptr(),
		ApprovedAt:      e.ApprovedAt.Ptr(),
		RejectedAt:      e.RejectedAt.Ptr(),
		SuspendedAt:     e.SuspendedAt.Ptr(),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (r *MerchantRepository) toEntity(m *models.Merchant) *entities.Merchant {
	return &entities.Merchant{
		ID:              m.ID,
		OwnerUserID:     m.OwnerUserID,
		ParentID:        m.ParentID,
		Type:            entities.MerchantType(m.Type),
		Status:          entities.MerchantStatus(m.Status),
		Name:            m.Name,
		ContactEmail:    m.ContactEmail,
		Description:     null.StringFromPtr(m.Description),
		Address:         null.StringFromPtr(m.Address),
		BusinessTypeID:  m.BusinessTypeID,
		CanSellProducts: m.CanSellProducts,
		CanTakeBookings: m.CanTakeBookings,
		CanRentUnits:    m.CanRentUnits,
		EmailVerifiedAt: null.TimeFromPtr(m.EmailVerifiedAt),
		StatusReason:    null.StringFromPtr(m.StatusReason),
		SubmittedAt:     null.TimeFromPtr(m.SubmittedAt),
		ApprovedAt:      null.TimeFromPtr(m.ApprovedAt),
		RejectedAt:      null.TimeFromPtr(m.RejectedAt),
		SuspendedAt:     null.TimeFromPtr(m.SuspendedAt),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		DeletedAt:       null.NewTime(m.DeletedAt.Time, m.DeletedAt.Valid),
	}
}
