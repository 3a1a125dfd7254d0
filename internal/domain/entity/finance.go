// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// FinancialPlan holds a provider's self-set budgeting targets.
// There is at most one plan per provider; saving replaces the previous values.
type FinancialPlan struct {
	ID            uuid.UUID // The unique ID of the plan row.
	ProviderID    uuid.UUID // The user ID of the provider who owns the plan, unique.
	MonthlyIncome int64     // Expected monthly income.
	SavingsGoal   int64     // Target amount to save each month.
	ExpenseLimit  int64     // Self-imposed monthly spending cap.
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
