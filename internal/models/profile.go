package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Profile is the singleton financial profile of the user: income, the
// monthly operating budget, goals and the cumulative savings balance.
//
// All numeric setters are unconditional overwrites. Negative values are
// stored as-is since "goal reached" math relies on signed subtraction.
type Profile struct {
	DefaultModel
	Income         decimal.Decimal `json:"income" gorm:"type:DECIMAL(20,8)" example:"50000"`
	MonthlyBudget  decimal.Decimal `json:"monthlyBudget" gorm:"type:DECIMAL(20,8)" example:"20000"`      // Operating allocation per month
	InvestmentGoal decimal.Decimal `json:"investmentGoal" gorm:"type:DECIMAL(20,8)" example:"5000"`      // Planned investment per month
	SavingsGoal    decimal.Decimal `json:"savingsGoal" gorm:"type:DECIMAL(20,8)" example:"100000"`       // Savings target
	Savings        decimal.Decimal `json:"cumulativeSavings" gorm:"type:DECIMAL(20,8)" example:"40000"`  // Banked from prior month reviews

	Currency    Currency `json:"currency" example:"INR"`
	Theme       string   `json:"theme" example:"system"`
	NotifyDaily bool     `json:"notifyDaily" example:"false"` // Daily expense reminder enabled

	LastReviewAt *time.Time `json:"lastReviewAt" example:"2022-04-01T09:12:00Z"` // Last month boundary processed by the reconciler
}

// LoadProfile returns the profile, creating it with app defaults on
// first use.
func LoadProfile(tx *gorm.DB) (Profile, error) {
	var profile Profile
	err := tx.First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrResourceNotFound) {
		profile = Profile{Currency: CurrencyINR, Theme: "system"}
		err = tx.Create(&profile).Error
	}

	return profile, err
}

// AddSavings adds an amount to the cumulative savings balance.
func (p *Profile) AddSavings(tx *gorm.DB, amount decimal.Decimal) error {
	p.Savings = p.Savings.Add(amount)
	return tx.Model(p).Update("savings", p.Savings).Error
}
