package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// SavePlanInput defines the budgeting targets a provider sets for themselves.
type SavePlanInput struct {
	MonthlyIncome int64
	SavingsGoal   int64
	ExpenseLimit  int64
}

// FinanceUsecase defines the interface for provider financial planning.
type FinanceUsecase interface {
	// GetPlan loads the provider's financial plan.
	GetPlan(ctx context.Context, providerID uuid.UUID) (*entity.FinancialPlan, error)

	// SavePlan creates the provider's plan or replaces the existing values.
	SavePlan(ctx context.Context, providerID uuid.UUID, input *SavePlanInput) (*entity.FinancialPlan, error)
}
