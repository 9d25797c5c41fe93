package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PlatformFee struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	TransactionType string          `gorm:"type:varchar(50);not null;index"`
	RatePercentage  decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	IsActive        bool            `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
