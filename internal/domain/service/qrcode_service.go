package service

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateOrderQR generates a QR code image encoding an order receipt reference.
	GenerateOrderQR(orderNumber string, total int64) ([]byte, error)

	// ParseOrderQR parses QR code payload data and returns the order number.
	ParseOrderQR(qrData string) (string, error)
}
