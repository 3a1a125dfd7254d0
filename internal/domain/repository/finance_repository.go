// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPlanNotFound is returned when a provider has no financial plan yet.
var ErrPlanNotFound = errors.New("financial plan not found")

// FinanceRepository defines the interface for financial plan persistence.
type FinanceRepository interface {
	// FindPlanByProvider retrieves the provider's plan.
	FindPlanByProvider(ctx context.Context, providerID uuid.UUID) (*entity.FinancialPlan, error)

	// UpsertPlan creates the provider's plan or replaces the existing values.
	UpsertPlan(ctx context.Context, plan *entity.FinancialPlan) error
}
