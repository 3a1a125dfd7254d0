// Package repository holds hand-rolled testify mocks for the persistence interfaces.
package repository

import (
	"context"
	"testing"

	"bazaar/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockTransactionManager mocks repository.TransactionManager.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates the mock and verifies expectations at test end.
func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Execute supports a functional return value so tests can run the callback
// against a mock factory: Return(func(ctx, fn) error { return fn(factory) }).
func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)
	if rf, ok := args.Get(0).(func(context.Context, func(repository.RepositoryFactory) error) error); ok {
		return rf(ctx, fn)
	}

	return args.Error(0)
}

// MockRepositoryFactory mocks repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

// NewMockRepositoryFactory creates the mock and verifies expectations at test end.
func NewMockRepositoryFactory(t *testing.T) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) UserRepo() repository.UserRepository {
	args := m.Called()
	r, _ := args.Get(0).(repository.UserRepository)

	return r
}

func (m *MockRepositoryFactory) AuthRepo() repository.AuthRepository {
	args := m.Called()
	r, _ := args.Get(0).(repository.AuthRepository)

	return r
}

func (m *MockRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	args := m.Called()
	r, _ := args.Get(0).(repository.RefreshTokenRepository)

	return r
}

func (m *MockRepositoryFactory) CatalogRepo() repository.CatalogRepository {
	args := m.Called()
	r, _ := args.Get(0).(repository.CatalogRepository)

	return r
}

func (m *MockRepositoryFactory) ProductRepo() repository.ProductRepository {
	args := m.Called()
	r, _ := args.Get(0).(repository.ProductRepository)

	return r
}

func (m *MockRepositoryFactory) BookingRepo() repository.BookingRepository {
	args := m.Called()
	r, _ := args.Get(0).(repository.BookingRepository)

	return r
}

func (m *MockRepositoryFactory) FinanceRepo() repository.FinanceRepository {
	args := m.Called()
	r, _ := args.Get(0).(repository.FinanceRepository)

	return r
}

func (m *MockRepositoryFactory) OrderRepo() repository.OrderRepository {
	args := m.Called()
	r, _ := args.Get(0).(repository.OrderRepository)

	return r
}

func (m *MockRepositoryFactory) DeviceRepo() repository.DeviceRepository {
	args := m.Called()
	r, _ := args.Get(0).(repository.DeviceRepository)

	return r
}

func (m *MockRepositoryFactory) NotificationRepo() repository.NotificationRepository {
	args := m.Called()
	r, _ := args.Get(0).(repository.NotificationRepository)

	return r
}
