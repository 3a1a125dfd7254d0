package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	mockRepo "bazaar/internal/mocks/repository"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestFinanceService(t *testing.T) (usecase.FinanceUsecase, *mockRepo.MockFinanceRepository, *mockRepo.MockUserRepository) {
	financeRepo := mockRepo.NewMockFinanceRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)

	service := NewFinanceService(FinanceServiceParams{
		FinanceRepo: financeRepo,
		UserRepo:    userRepo,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return service, financeRepo, userRepo
}

func TestFinanceService_GetPlan_NotFound(t *testing.T) {
	service, financeRepo, _ := createTestFinanceService(t)
	ctx := context.Background()
	providerID := uuid.New()

	financeRepo.On("FindPlanByProvider", ctx, providerID).
		Return(nil, repository.ErrPlanNotFound)

	_, err := service.GetPlan(ctx, providerID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPlanNotFound))
}

func TestFinanceService_SavePlan_Success(t *testing.T) {
	service, financeRepo, userRepo := createTestFinanceService(t)
	ctx := context.Background()
	providerID := uuid.New()

	userRepo.On("FindByID", ctx, providerID).
		Return(&entity.User{ID: providerID, ProviderProfile: &entity.ProviderProfile{UserID: providerID}}, nil)
	financeRepo.On("UpsertPlan", ctx, mock.MatchedBy(func(plan *entity.FinancialPlan) bool {
		return plan.ProviderID == providerID && plan.MonthlyIncome == 45000
	})).Return(nil)

	plan, err := service.SavePlan(ctx, providerID, &usecase.SavePlanInput{
		MonthlyIncome: 45000,
		SavingsGoal:   10000,
		ExpenseLimit:  25000,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10000), plan.SavingsGoal)
}

func TestFinanceService_SavePlan_NegativeAmountRejected(t *testing.T) {
	service, _, _ := createTestFinanceService(t)

	_, err := service.SavePlan(context.Background(), uuid.New(), &usecase.SavePlanInput{
		MonthlyIncome: -1,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestFinanceService_SavePlan_RequiresProviderProfile(t *testing.T) {
	service, _, userRepo := createTestFinanceService(t)
	ctx := context.Background()
	userID := uuid.New()

	userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, CustomerProfile: &entity.CustomerProfile{UserID: userID}}, nil)

	_, err := service.SavePlan(ctx, userID, &usecase.SavePlanInput{MonthlyIncome: 45000})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}
