package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserDevice is a client registered for push notifications.
type UserDevice struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	FCMToken  string    `json:"fcmToken"`
	DeviceID  string    `json:"deviceId"` // Client-supplied identifier, stable across token refreshes.
	Platform  string    `json:"platform"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
