package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name        string      `gorm:"type:varchar(200);not null"`
	Description string      `gorm:"type:text;not null"`
	Price       float64     `gorm:"type:numeric(12,2);not null"`
	Condition   string      `gorm:"type:varchar(20);not null"`
	Category    string      `gorm:"type:varchar(50);not null;index"`
	Images      []string    `gorm:"type:jsonb;serializer:json;not null"`
	SellerID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	SavedBy     []uuid.UUID `gorm:"type:jsonb;serializer:json;not null"`
	Status      string      `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time   `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
