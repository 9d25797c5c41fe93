package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"marketly.backend/internal/domain/entities"
	"marketly.backend/internal/infrastructure/models"
	"marketly.backend/pkg/utils"
)

// MerchantStatusLogRepository implements the append-only audit trail
type MerchantStatusLogRepository struct {
	db *gorm.DB
}

// NewMerchantStatusLogRepository creates a new status log repository
func NewMerchantStatusLogRepository(db *gorm.DB) *MerchantStatusLogRepository {
	return &MerchantStatusLogRepository{db: db}
}

// Append writes one log entry. Entries are never updated or deleted.
func (r *MerchantStatusLogRepository) Append(ctx context.Context, log *entities.MerchantStatusLog) error {
	if log.ID == uuid.Nil {
		log.ID = utils.GenerateUUIDv7()
	}
	log.CreatedAt = time.Now()

	m := &models.MerchantStatusLog{
		ID:         log.ID,
		MerchantID: log.MerchantID,
		ToStatus:   string(log.ToStatus),
		Reason:     log.Reason.Ptr(),
		ChangedBy:  log.ChangedBy,
		CreatedAt:  log.CreatedAt,
	}
	if log.FromStatus != nil {
		from := string(*log.FromStatus)
		m.FromStatus = &from
	}

	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Create(m).Error
}

// ListByMerchant returns a merchant's full audit trail, oldest first
func (r *MerchantStatusLogRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.MerchantStatusLog, error) {
	var ms []models.MerchantStatusLog
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	logs := make([]*entities.MerchantStatusLog, 0, len(ms))
	for i := range ms {
		m := &ms[i]
		log := &entities.MerchantStatusLog{
			ID:         m.ID,
			MerchantID: m.MerchantID,
			ToStatus:   entities.MerchantStatus(m.ToStatus),
			Reason:     null.StringFromPtr(m.Reason),
			ChangedBy:  m.ChangedBy,
			CreatedAt:  m.CreatedAt,
		}
		if m.FromStatus != nil {
			from := entities.MerchantStatus(*m.FromStatus)
			log.FromStatus = &from
		}
		logs = append(logs, log)
	}
	return logs, nil
}
