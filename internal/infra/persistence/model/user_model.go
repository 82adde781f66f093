package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table.
// Listings and saved items are stored as jsonb arrays of product ids.
type UserModel struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Email        string      `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string      `gorm:"type:varchar(255);not null"`
	Name         string      `gorm:"type:varchar(100);not null"`
	College      string      `gorm:"type:varchar(200);not null"`
	Department   string      `gorm:"type:varchar(200)"`
	Year         string      `gorm:"type:varchar(32)"`
	Phone        string      `gorm:"type:varchar(30)"`
	Gender       string      `gorm:"type:varchar(10);not null"`
	ProfileImage string      `gorm:"type:text"`
	Bio          string      `gorm:"type:text"`
	Listings     []uuid.UUID `gorm:"type:jsonb;serializer:json;not null"`
	SavedItems   []uuid.UUID `gorm:"type:jsonb;serializer:json;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
