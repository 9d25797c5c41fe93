package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketly.backend/internal/domain/entities"
	domainerrors "marketly.backend/internal/domain/errors"
	"marketly.backend/internal/infrastructure/models"
	"marketly.backend/pkg/utils"
)

// NotificationOutboxRepository implements the transactional outbox for
// notification payloads.
type NotificationOutboxRepository struct {
	db *gorm.DB
}

// NewNotificationOutboxRepository creates a new outbox repository
func NewNotificationOutboxRepository(db *gorm.DB) *NotificationOutboxRepository {
	return &NotificationOutboxRepository{db: db}
}

// Save writes a pending payload. Called inside the transaction that
// produced the notification.
func (r *NotificationOutboxRepository) Save(ctx context.Context, n *entities.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = utils.GenerateUUIDv7()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	m := &models.NotificationOutbox{
		ID:         n.ID,
		Event:      string(n.Event),
		MerchantID: n.MerchantID,
		UserID:     n.UserID,
		ToStatus:   string(n.ToStatus),
		CreatedAt:  n.CreatedAt,
	}
	if n.FromStatus != nil {
		from := string(*n.FromStatus)
		m.FromStatus = &from
	}
	if n.Reason != "" {
		m.Reason = &n.Reason
	}

	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Create(m).Error
}

// MarkDispatched records that the payload reached the queue.
func (r *NotificationOutboxRepository) MarkDispatched(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).
		Model(&models.NotificationOutbox{}).
		Where("id = ? AND dispatched_at IS NULL", id).
		Update("dispatched_at", &now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListPending returns undispatched payloads, oldest first.
func (r *NotificationOutboxRepository) ListPending(ctx context.Context, limit int) ([]*entities.Notification, error) {
	var ms []models.NotificationOutbox
	db := GetDB(ctx, r.db)
	q := db.WithContext(ctx).
		Where("dispatched_at IS NULL").
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	ns := make([]*entities.Notification, 0, len(ms))
	for i := range ms {
		m := &ms[i]
		n := &entities.Notification{
			ID:         m.ID,
			Event:      entities.NotificationEvent(m.Event),
			MerchantID: m.MerchantID,
			UserID:     m.UserID,
			ToStatus:   entities.MerchantStatus(m.ToStatus),
			CreatedAt:  m.CreatedAt,
		}
		if m.FromStatus != nil {
			from := entities.MerchantStatus(*m.FromStatus)
			n.FromStatus = &from
		}
		if m.Reason != nil {
			n.Reason = *m.Reason
		}
		ns = append(ns, n)
	}
	return ns, nil
}
