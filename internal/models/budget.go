package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a named allocation for a single category.
//
// Budgets are not period scoped: their progress counts all-time
// spending in the category until the budget is deleted.
type Budget struct {
	DefaultModel
	Name     string          `json:"name" example:"Weekly Groceries"`
	Category Category        `json:"category" example:"Food"`
	Amount   decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"500"`
}

// BeforeCreate enforces the allocation cap: the sum of all budgets may
// not exceed the profile's monthly budget. A zero or unset monthly
// budget disables the cap.
//
// Updates intentionally skip this check, see BeforeUpdate.
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	if err := b.normalize(); err != nil {
		return err
	}

	profile, err := LoadProfile(tx)
	if err != nil {
		return err
	}

	if !profile.MonthlyBudget.IsPositive() {
		return nil
	}

	var allocated decimal.NullDecimal
	err = tx.Table("budgets").
		Where("deleted_at IS NULL").
		Select("SUM(amount)").
		Row().
		Scan(&allocated)
	if err != nil {
		return err
	}

	if allocated.Decimal.Add(b.Amount).GreaterThan(profile.MonthlyBudget) {
		headroom := profile.MonthlyBudget.Sub(allocated.Decimal)
		if headroom.IsNegative() {
			headroom = decimal.Zero
		}

		return fmt.Errorf("%w: %s is still unallocated", ErrAllocationExceeded, headroom)
	}

	return nil
}

// BeforeUpdate does not re-check the allocation cap: edits can push
// the total over the monthly budget. Keep it until the API contract
// changes.
func (b *Budget) BeforeUpdate(_ *gorm.DB) error {
	return b.normalize()
}

func (b *Budget) normalize() error {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" || b.Category == "" {
		return ErrBudgetNameRequired
	}

	if !b.Category.Valid() {
		return ErrCategoryInvalid
	}

	if !b.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}
