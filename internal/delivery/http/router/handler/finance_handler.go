package handler

import (
	"log/slog"
	"net/http"

	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/response"
	"bazaar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// FinanceHandlerParams holds dependencies for FinanceHandler, injected by Fx.
type FinanceHandlerParams struct {
	fx.In

	FinanceUC usecase.FinanceUsecase
	Logger    *slog.Logger
}

// FinanceHandler holds dependencies for provider financial plan handlers.
type FinanceHandler struct {
	financeUC usecase.FinanceUsecase
	logger    *slog.Logger
}

// NewFinanceHandler is the constructor for FinanceHandler.
func NewFinanceHandler(params FinanceHandlerParams) *FinanceHandler {
	return &FinanceHandler{
		financeUC: params.FinanceUC,
		logger:    params.Logger,
	}
}

// SavePlanRequest represents the request body for saving a financial plan.
type SavePlanRequest struct {
	MonthlyIncome int64 `json:"monthly_income" validate:"gte=0"`
	SavingsGoal   int64 `json:"savings_goal" validate:"gte=0"`
	ExpenseLimit  int64 `json:"expense_limit" validate:"gte=0"`
}

// GetPlan loads the authenticated provider's financial plan.
func (h *FinanceHandler) GetPlan(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	plan, err := h.financeUC.GetPlan(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, plan)
}

// SavePlan creates or replaces the authenticated provider's financial plan.
func (h *FinanceHandler) SavePlan(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req SavePlanRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid plan input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	plan, err := h.financeUC.SavePlan(c.Request().Context(), userID, &usecase.SavePlanInput{
		MonthlyIncome: req.MonthlyIncome,
		SavingsGoal:   req.SavingsGoal,
		ExpenseLimit:  req.ExpenseLimit,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, plan)
}
