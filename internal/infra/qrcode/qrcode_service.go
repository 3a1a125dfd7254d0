package qrcode

import (
	"encoding/json"
	"fmt"
	"strings"

	"bazaar/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// QRCodeData represents the QR code data structure
type QRCodeData struct {
	OrderNumber string `json:"order_number"`
	Total       int64  `json:"total"`
	Type        string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
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

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateOrderQR generates a QR code image encoding an order receipt reference
func (s *qrcodeService) GenerateOrderQR(orderNumber string, total int64) ([]byte, error) {
	// Create QR code data
	data := QRCodeData{
		OrderNumber: orderNumber,
		Total:       total,
		Type:        "order_receipt",
	}

	// Convert to JSON
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	// Generate QR code
	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	// Generate PNG image
	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseOrderQR parses QR code payload data and returns the order number
func (s *qrcodeService) ParseOrderQR(qrData string) (string, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return "", fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	// Validate type
	if data.Type != "order_receipt" {
		return "", fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	if !strings.HasPrefix(data.OrderNumber, "JGR-") {
		return "", fmt.Errorf("invalid order number: %s", data.OrderNumber)
	}

	return data.OrderNumber, nil
}
