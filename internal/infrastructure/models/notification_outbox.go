package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationOutbox struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Event        string     `gorm:"type:varchar(100);not null"`
	MerchantID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID       *uuid.UUID `gorm:"type:uuid"`
	FromStatus   *string    `gorm:"type:varchar(50)"`
	ToStatus     string     `gorm:"type:varchar(50);not null"`
	Reason       *string    `gorm:"type:text"`
	CreatedAt    time.Time
	DispatchedAt *time.Time `gorm:"index"`
}

func (NotificationOutbox) TableName() string {
	return "notification_outbox"
}
