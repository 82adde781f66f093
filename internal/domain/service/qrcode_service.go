package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateProductQR renders a PNG QR code linking to the product page
	GenerateProductQR(productID uuid.UUID) ([]byte, error)

	// ParseProductQR extracts the product ID from scanned QR content
	ParseProductQR(qrData string) (uuid.UUID, error)
}
