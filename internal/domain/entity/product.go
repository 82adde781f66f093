package entity

import (
	"time"

	"github.com/google/uuid"
)

// Condition describes the wear of a listed item.
type Condition string

const (
	ConditionNew     Condition = "New"
	ConditionLikeNew Condition = "Like New"
	ConditionGood    Condition = "Good"
	ConditionFair    Condition = "Fair"
	ConditionPoor    Condition = "Poor"
)

// Valid reports whether c is one of the accepted values.
func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}

	return false
}

// Category groups listings for browsing.
type Category string

const (
	CategoryTextbooks    Category = "Textbooks"
	CategoryElectronics  Category = "Electronics"
	CategoryFurniture    Category = "Furniture"
	CategoryLabEquipment Category = "Lab Equipment"
	CategoryNotes        Category = "Notes"
	CategoryOther        Category = "Other"
)

// Valid reports whether c is one of the accepted values.
func (c Category) Valid() bool {
	switch c {
	case CategoryTextbooks, CategoryElectronics, CategoryFurniture, CategoryLabEquipment, CategoryNotes, CategoryOther:
		return true
	}

	return false
}

// ProductStatus tracks availability of a listing.
type ProductStatus string

const (
	ProductStatusAvailable ProductStatus = "available"
	ProductStatusSold      ProductStatus = "sold"
	ProductStatusReserved  ProductStatus = "reserved"
)

// Valid reports whether s is one of the accepted values.
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusAvailable, ProductStatusSold, ProductStatusReserved:
		return true
	}

	return false
}

// Product is a listing offered by a seller.
type Product struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Condition   Condition     `json:"condition"`
	Category    Category      `json:"category"`
	Images      []string      `json:"images"`
	SellerID    uuid.UUID     `json:"sellerId"`
	SavedBy     []uuid.UUID   `json:"savedBy"`
	Status      ProductStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// IsOwnedBy reports whether userID is the seller.
func (p *Product) IsOwnedBy(userID uuid.UUID) bool {
	return p.SellerID == userID
}

// IsSavedBy reports whether userID bookmarked the product.
func (p *Product) IsSavedBy(userID uuid.UUID) bool {
	return ContainsID(p.SavedBy, userID)
}

// ProductFilter narrows a product listing. Zero values mean "no constraint".
type ProductFilter struct {
	Query    string    // Case-insensitive substring over name, description and category.
	Category Category  // Exact category match.
	SellerID uuid.UUID // Only listings of this seller.
	SavedBy  uuid.UUID // Only products bookmarked by this user.
}
