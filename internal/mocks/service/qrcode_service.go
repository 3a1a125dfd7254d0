package service

import (
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockQRCodeService mocks service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

// NewMockQRCodeService creates the mock and verifies expectations at test end.
func NewMockQRCodeService(t *testing.T) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQRCodeService) GenerateOrderQR(orderNumber string, total int64) ([]byte, error) {
	args := m.Called(orderNumber, total)
	png, _ := args.Get(0).([]byte)

	return png, args.Error(1)
}

func (m *MockQRCodeService) ParseOrderQR(qrData string) (string, error) {
	args := m.Called(qrData)

	return args.String(0), args.Error(1)
}
