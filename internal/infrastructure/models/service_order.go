package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ServiceOrder struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MerchantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ServiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitLabel   *string         `gorm:"type:varchar(50)"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FeeRate     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	FeeAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status      string          `gorm:"type:varchar(50);not null;default:'pending'"`
	ReceivedAt  *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
