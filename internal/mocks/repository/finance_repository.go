package repository

import (
	"context"
	"testing"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockFinanceRepository mocks repository.FinanceRepository.
type MockFinanceRepository struct {
	mock.Mock
}

// NewMockFinanceRepository creates the mock and verifies expectations at test end.
func NewMockFinanceRepository(t *testing.T) *MockFinanceRepository {
	m := &MockFinanceRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockFinanceRepository) FindPlanByProvider(ctx context.Context, providerID uuid.UUID) (*entity.FinancialPlan, error) {
	args := m.Called(ctx, providerID)
	plan, _ := args.Get(0).(*entity.FinancialPlan)

	return plan, args.Error(1)
}

func (m *MockFinanceRepository) UpsertPlan(ctx context.Context, plan *entity.FinancialPlan) error {
	args := m.Called(ctx, plan)

	return args.Error(0)
}
