package model

import (
	"time"

	"github.com/google/uuid"
)

// FinancialPlanModel mirrors the 'financial_plans' table. One row per provider.
type FinancialPlanModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProviderID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	MonthlyIncome int64     `gorm:"not null;default:0"`
	SavingsGoal   int64     `gorm:"not null;default:0"`
	ExpenseLimit  int64     `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (FinancialPlanModel) TableName() string {
	return "financial_plans"
}
