package entity

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus follows Pending -> Confirmed -> Shipped -> Delivered.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// PaymentMethod labels how the buyer pays.
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

// Valid reports whether m is one of the accepted values.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCard || m == PaymentMethodCash
}

// ShippingDetails is copied into the order at checkout time.
type ShippingDetails struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

// Order is a purchase record.
type Order struct {
	ID               uuid.UUID       `json:"id"`
	OrderID          string          `json:"orderId"`
	BuyerID          uuid.UUID       `json:"userId"`
	ProductID        uuid.UUID       `json:"productId"`
	ShippingDetails  ShippingDetails `json:"shippingDetails"`
	PaymentMethod    PaymentMethod   `json:"paymentMethod"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	Status           OrderStatus     `json:"orderStatus"`
	OrderDate        time.Time       `json:"orderDate"`
	TotalAmount      float64         `json:"totalAmount"`
}

const (
	orderIDPrefix    = "ORD"
	orderIDSuffixLen = 9
	base36Alphabet   = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// NewOrderID returns "ORD" followed by nine random base-36 characters in upper case.
// Uniqueness is not checked here; the store rejects duplicates.
func NewOrderID() string {
	var b strings.Builder
	b.Grow(len(orderIDPrefix) + orderIDSuffixLen)
	b.WriteString(orderIDPrefix)

	for range orderIDSuffixLen {
		b.WriteByte(base36Alphabet[rand.IntN(len(base36Alphabet))])
	}

	return strings.ToUpper(b.String())
}
