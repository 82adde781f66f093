// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gender is the self-reported gender collected at sign-up.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is one of the accepted values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}

	return false
}

// User is a marketplace account. A user can both sell and buy.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"` // Never leaves the service boundary.
	Name         string      `json:"name"`
	College      string      `json:"college"`
	Department   string      `json:"department,omitempty"`
	Year         string      `json:"year,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	Gender       Gender      `json:"gender"`
	ProfileImage string      `json:"profileImage,omitempty"`
	Bio          string      `json:"bio,omitempty"`
	Listings     []uuid.UUID `json:"listings"`   // Products this user sells.
	SavedItems   []uuid.UUID `json:"savedItems"` // Products this user bookmarked.
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// NormalizeEmail lower-cases and trims an address so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasSaved reports whether the product is in the user's saved items.
func (u *User) HasSaved(productID uuid.UUID) bool {
	return ContainsID(u.SavedItems, productID)
}

// SellerSummary is the subset of a seller's profile joined into product listings.
type SellerSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	College    string    `json:"college"`
	Department string    `json:"department,omitempty"`
	Year       string    `json:"year,omitempty"`
}

// Summary builds the seller view of the user.
func (u *User) Summary() *SellerSummary {
	if u == nil {
		return nil
	}

	return &SellerSummary{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		College:    u.College,
		Department: u.Department,
		Year:       u.Year,
	}
}
