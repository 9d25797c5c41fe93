package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Booking struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MerchantID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ServiceID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	BookingDate  time.Time       `gorm:"type:date;not null;index"`
	StartTime    string          `gorm:"type:varchar(5);not null"`
	EndTime      string          `gorm:"type:varchar(5);not null"`
	PartySize    int             `gorm:"not null;default:1"`
	Status       string          `gorm:"type:varchar(50);not null;default:'pending'"`
	ServicePrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FeeRate      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	FeeAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ConfirmedAt  *time.Time
	CancelledAt  *time.Time
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
