package qrcode

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"educycle/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const productPathSegment = "product"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance.
// Codes encode the product page URL under baseURL.
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = 256
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// ProductURL returns the link a product QR code points to.
func (s *qrcodeService) ProductURL(productID uuid.UUID) string {
	return s.baseURL + "/" + productPathSegment + "/" + productID.String()
}

// GenerateProductQR renders the product link as a PNG
func (s *qrcodeService) GenerateProductQR(productID uuid.UUID) ([]byte, error) {
	qrCode, err := qrcode.New(s.ProductURL(productID), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseProductQR extracts the product ID from a scanned product link
func (s *qrcodeService) ParseProductQR(qrData string) (uuid.UUID, error) {
	parsed, err := url.Parse(strings.TrimSpace(qrData))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse QR code data: %w", err)
	}

	dir, last := path.Split(strings.TrimRight(parsed.Path, "/"))
	if path.Base(dir) != productPathSegment {
		return uuid.Nil, fmt.Errorf("invalid QR code path: %s", parsed.Path)
	}

	productID, err := uuid.Parse(last)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse product ID: %w", err)
	}

	return productID, nil
}
