package impl

import (
	"context"
	"log/slog"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// financeService implements the FinanceUsecase interface.
type financeService struct {
	financeRepo repository.FinanceRepository
	userRepo    repository.UserRepository
	logger      *slog.Logger
}

// FinanceServiceParams holds dependencies for financeService, injected by Fx.
type FinanceServiceParams struct {
	fx.In

	FinanceRepo repository.FinanceRepository
	UserRepo    repository.UserRepository
	Logger      *slog.Logger
}

// NewFinanceService is the constructor for financeService.
func NewFinanceService(params FinanceServiceParams) usecase.FinanceUsecase {
	return &financeService{
		financeRepo: params.FinanceRepo,
		userRepo:    params.UserRepo,
		logger:      params.Logger,
	}
}

func (srv *financeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetPlan loads the provider's financial plan.
func (srv *financeService) GetPlan(ctx context.Context, providerID uuid.UUID) (*entity.FinancialPlan, error) {
	plan, err := srv.financeRepo.FindPlanByProvider(ctx, providerID)
	if err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			return nil, domainerrors.ErrPlanNotFound
		}

		return nil, errors.Wrap(err, "failed to find financial plan")
	}

	return plan, nil
}

// SavePlan creates the provider's plan or replaces the existing values.
func (srv *financeService) SavePlan(ctx context.Context, providerID uuid.UUID, input *usecase.SavePlanInput) (*entity.FinancialPlan, error) {
	srv.log(ctx).Debug("Saving financial plan", slog.Any("providerID", providerID))

	if input.MonthlyIncome < 0 || input.SavingsGoal < 0 || input.ExpenseLimit < 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "plan amounts must not be negative")
	}

	user, err := srv.userRepo.FindByID(ctx, providerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user")
	}
	if user.ProviderProfile == nil {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "provider profile required")
	}

	plan := &entity.FinancialPlan{
		ProviderID:    providerID,
		MonthlyIncome: input.MonthlyIncome,
		SavingsGoal:   input.SavingsGoal,
		ExpenseLimit:  input.ExpenseLimit,
	}

	if err := srv.financeRepo.UpsertPlan(ctx, plan); err != nil {
		srv.log(ctx).Error("Failed to save financial plan", slog.Any("error", err), slog.Any("providerID", providerID))

		return nil, errors.Wrap(err, "failed to save financial plan")
	}

	return plan, nil
}
