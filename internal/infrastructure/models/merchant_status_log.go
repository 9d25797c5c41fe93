package models

import (
	"time"

	"github.com/google/uuid"
)

type MerchantStatusLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MerchantID uuid.UUID  `gorm:"type:uuid;not null;index"`
	FromStatus *string    `gorm:"type:varchar(50)"`
	ToStatus   string     `gorm:"type:varchar(50);not null"`
	Reason     *string    `gorm:"type:text"`
	ChangedBy  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
}
