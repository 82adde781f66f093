package model

import (
	"time"

	"github.com/google/uuid"
)

// ShippingDetailsModel is embedded into the order row as jsonb.
type ShippingDetailsModel struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID               uuid.UUID            `gorm:"type:uuid;primaryKey"`
	OrderID          string               `gorm:"type:varchar(20);uniqueIndex;not null"`
	BuyerID          uuid.UUID            `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID            `gorm:"type:uuid;not null"`
	ShippingDetails  ShippingDetailsModel `gorm:"type:jsonb;serializer:json;not null"`
	PaymentMethod    string               `gorm:"type:varchar(20);not null"`
	PaymentReference string               `gorm:"type:varchar(100)"`
	Status           string               `gorm:"type:varchar(20);not null"`
	OrderDate        time.Time            `gorm:"not null;index"`
	TotalAmount      float64              `gorm:"type:numeric(12,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
