// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// financeRepository implements the repository.FinanceRepository interface.
type financeRepository struct {
	db *gorm.DB
}

// NewFinanceRepository is the constructor for financeRepository.
func NewFinanceRepository(db *gorm.DB) repository.FinanceRepository {
	return &financeRepository{
		db: db,
	}
}

// FindPlanByProvider retrieves the provider's plan.
func (repo *financeRepository) FindPlanByProvider(ctx context.Context, providerID uuid.UUID) (*entity.FinancialPlan, error) {
	var planM model.FinancialPlanModel

	if err := repo.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		First(&planM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPlanNotFound
		}

		return nil, errors.Wrap(err, "failed to find financial plan")
	}

	return toFinancialPlanDomain(&planM), nil
}

// UpsertPlan creates the provider's plan or replaces the existing values.
func (repo *financeRepository) UpsertPlan(ctx context.Context, plan *entity.FinancialPlan) error {
	planM := fromFinancialPlanDomain(plan)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "provider_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"monthly_income", "savings_goal", "expense_limit", "updated_at",
			}),
		}).
		Create(planM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid provider reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert financial plan")
	}

	plan.ID = planM.ID
	plan.CreatedAt = planM.CreatedAt
	plan.UpdatedAt = planM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toFinancialPlanDomain converts a GORM FinancialPlanModel to a domain FinancialPlan entity.
func toFinancialPlanDomain(data *model.FinancialPlanModel) *entity.FinancialPlan {
	if data == nil {
		return nil
	}

	return &entity.FinancialPlan{
		ID:            data.ID,
		ProviderID:    data.ProviderID,
		MonthlyIncome: data.MonthlyIncome,
		SavingsGoal:   data.SavingsGoal,
		ExpenseLimit:  data.ExpenseLimit,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromFinancialPlanDomain converts a domain FinancialPlan entity to a GORM FinancialPlanModel.
func fromFinancialPlanDomain(data *entity.FinancialPlan) *model.FinancialPlanModel {
	if data == nil {
		return nil
	}

	return &model.FinancialPlanModel{
		ID:            data.ID,
		ProviderID:    data.ProviderID,
		MonthlyIncome: data.MonthlyIncome,
		SavingsGoal:   data.SavingsGoal,
		ExpenseLimit:  data.ExpenseLimit,
	}
}
