package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MerchantID           uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name                 string           `gorm:"type:varchar(255);not null"`
	IsBookable           bool             `gorm:"not null;default:false"`
	IsSellable           bool             `gorm:"not null;default:false"`
	IsReservable         bool             `gorm:"not null;default:false"`
	DurationMinutes      int              `gorm:"not null;default:0"`
	MaxCapacity          *int             ``
	Price                decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	PricePerNight        *decimal.Decimal `gorm:"type:decimal(12,2)"`
	UnitLabel            *string          `gorm:"type:varchar(50)"`
	UnitStatus           string           `gorm:"type:varchar(50);default:'available'"`
	RequiresConfirmation bool             `gorm:"not null;default:true"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

type ServiceSchedule struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ServiceID   uuid.UUID `gorm:"type:uuid;not null;index"`
	DayOfWeek   int       `gorm:"not null"` // 0=Sunday..6=Saturday
	StartTime   string    `gorm:"type:varchar(5);not null"`
	EndTime     string    `gorm:"type:varchar(5);not null"`
	IsAvailable bool      `gorm:"not null;default:true"`
}
