package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email           string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name            string    `gorm:"type:varchar(255)"`
	Role            string    `gorm:"type:varchar(50);not null;default:'customer'"`
	PasswordHash    string    `gorm:"type:varchar(255)"`
	IsEmailVerified bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
