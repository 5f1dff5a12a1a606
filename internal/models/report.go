package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/xpense-app/backend/internal/types"
)

// MonthlyReport is the closing report for one calendar month. Reports
// are created by the monthly review only and never mutated afterwards.
//
// The month is the primary key, so committing the same review twice
// fails on the unique constraint instead of double-booking savings.
type MonthlyReport struct {
	Timestamps
	Month types.Month `json:"month" gorm:"primaryKey" example:"2022-03"`

	Income            decimal.Decimal `json:"income" gorm:"type:DECIMAL(20,8)" example:"50000"`         // Income snapshot at review time
	BudgetLimit       decimal.Decimal `json:"budgetLimit" gorm:"type:DECIMAL(20,8)" example:"20000"`    // Operating budget snapshot at review time
	ActualSpent       decimal.Decimal `json:"actualSpent" gorm:"type:DECIMAL(20,8)" example:"15000"`    // Expense total of the month
	SavedFromBudget   decimal.Decimal `json:"savedFromBudget" gorm:"type:DECIMAL(20,8)" example:"5000"` // Unspent operating budget
	PlannedSavings    decimal.Decimal `json:"plannedSavings" gorm:"type:DECIMAL(20,8)" example:"100000"`
	PlannedInvestment decimal.Decimal `json:"plannedInvestment" gorm:"type:DECIMAL(20,8)" example:"5000"`

	TotalSpent    decimal.Decimal `json:"totalSpent" gorm:"type:DECIMAL(20,8)" example:"15000"`
	TotalSaved    decimal.Decimal `json:"totalSaved" gorm:"type:DECIMAL(20,8)" example:"30000"` // Amount banked into cumulative savings
	TotalInvested decimal.Decimal `json:"totalInvested" gorm:"type:DECIMAL(20,8)" example:"5000"`
}

// Export returns all monthly reports on this instance for export.
func (MonthlyReport) Export() (json.RawMessage, error) {
	var reports []MonthlyReport
	err := DB.Order("month ASC").Find(&reports).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&reports)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
