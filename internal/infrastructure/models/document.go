package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MerchantDocument struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MerchantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type       string    `gorm:"type:varchar(50);not null"`
	FileURL    string    `gorm:"type:text;not null"`
	CreatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (MerchantDocument) TableName() string {
	return "merchant_documents"
}

type MerchantPaymentMethod struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MerchantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Method     string    `gorm:"type:varchar(50);not null"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (MerchantPaymentMethod) TableName() string {
	return "merchant_payment_methods"
}
