package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Merchant struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OwnerUserID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ParentID        *uuid.UUID `gorm:"type:uuid;index"`
	Type            string     `gorm:"type:varchar(50);not null"`
	Status          string     `gorm:"type:varchar(50);not null;default:'pending'"`
	Name            string     `gorm:"type:varchar(255);not null"`
	ContactEmail    string     `gorm:"type:varchar(255);not null"`
	Description     *string    `gorm:"type:text"`
	Address         *string    `gorm:"type:text"`
	BusinessTypeID  *uuid.UUID `gorm:"type:uuid"`
	CanSellProducts bool       `gorm:"not null;default:false"`
	CanTakeBookings bool       `gorm:"not null;default:false"`
	CanRentUnits    bool       `gorm:"not null;default:false"`
	EmailVerifiedAt *time.Time
	StatusReason    *string `gorm:"type:text"`
	SubmittedAt     *time.Time
	ApprovedAt      *time.Time
	RejectedAt      *time.Time
	SuspendedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
