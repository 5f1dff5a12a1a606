// Package review implements the monthly rollover. At the first request
// of a new calendar month the just completed month is summarized and
// the user decides whether its leftover is banked into cumulative
// savings.
package review

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/xpense-app/backend/internal/aggregate"
	"github.com/xpense-app/backend/internal/models"
	"github.com/xpense-app/backend/internal/types"
	"gorm.io/gorm"
)

// State describes where the rollover stands.
type State string

const (
	// StateInitialized is returned exactly once on a fresh profile. The
	// review clock starts now and no month is reviewed.
	StateInitialized State = "initialized"

	// StatePending means the previous calendar month awaits a decision.
	StatePending State = "pending"

	// StateIdle means the current month has already been reviewed.
	StateIdle State = "idle"
)

// Review is the summary of the month awaiting a decision.
type Review struct {
	Month types.Month `json:"month" example:"2022-02"`

	Income            decimal.Decimal `json:"income" example:"50000"`
	BudgetLimit       decimal.Decimal `json:"budgetLimit" example:"20000"`      // Operating budget at review time
	ActualSpent       decimal.Decimal `json:"actualSpent" example:"15000"`      // Expense total of the reviewed month
	SavedFromBudget   decimal.Decimal `json:"savedFromBudget" example:"5000"`   // Unspent operating budget, floored at zero
	PotentialSavings  decimal.Decimal `json:"potentialSavings" example:"30000"` // What confirming banks
	PlannedInvestment decimal.Decimal `json:"plannedInvestment" example:"5000"`

	// GoalContributionPercent is how much of the savings goal the banked
	// amount covers. Zero when no goal is set.
	GoalContributionPercent decimal.Decimal `json:"goalContributionPercent" example:"30"`
}

// Check determines the rollover state at the given instant. It is a
// pure function of its inputs and never writes anything.
//
// Only the month immediately before now is ever reviewed. When several
// months passed without a visit, the older ones are skipped, matching a
// review prompt that only ever shows the just completed month.
func Check(profile models.Profile, transactions []models.Transaction, budgets []models.Budget, now time.Time) (State, *Review) {
	if profile.LastReviewAt == nil {
		return StateInitialized, nil
	}

	if types.MonthOf(*profile.LastReviewAt).Equal(types.MonthOf(now)) {
		return StateIdle, nil
	}

	month := types.MonthOf(now).Previous()
	spent := aggregate.Spent(transactions, month.Range())

	limit := aggregate.OperatingBudget(profile, budgets)
	potential := profile.Income.Sub(spent).Sub(profile.InvestmentGoal)
	if potential.IsNegative() {
		potential = decimal.Zero
	}

	review := Review{
		Month:             month,
		Income:            profile.Income,
		BudgetLimit:       limit,
		ActualSpent:       spent,
		SavedFromBudget:   aggregate.BudgetRemaining(spent, limit),
		PotentialSavings:  potential,
		PlannedInvestment: profile.InvestmentGoal,
	}

	if profile.SavingsGoal.IsPositive() {
		review.GoalContributionPercent = potential.Div(profile.SavingsGoal).Mul(decimal.NewFromInt(100))
	}

	return StatePending, &review
}

// Initialize starts the review clock on a fresh profile.
func Initialize(db *gorm.DB, profile *models.Profile, now time.Time) error {
	return advance(db, profile, now)
}

// Confirm banks the pending month. When the potential savings are
// positive they are added to the cumulative savings and a monthly
// report is written, all in one transaction. The month is the report's
// primary key, so a review that already ran cannot bank twice.
func Confirm(db *gorm.DB, profile *models.Profile, r Review, now time.Time) (*models.MonthlyReport, error) {
	var report *models.MonthlyReport

	err := db.Transaction(func(tx *gorm.DB) error {
		if r.PotentialSavings.IsPositive() {
			if err := profile.AddSavings(tx, r.PotentialSavings); err != nil {
				return err
			}

			report = &models.MonthlyReport{
				Month:             r.Month,
				Income:            r.Income,
				BudgetLimit:       r.BudgetLimit,
				ActualSpent:       r.ActualSpent,
				SavedFromBudget:   r.SavedFromBudget,
				PlannedSavings:    profile.SavingsGoal,
				PlannedInvestment: r.PlannedInvestment,
				TotalSpent:        r.ActualSpent,
				TotalSaved:        r.PotentialSavings,
				TotalInvested:     r.PlannedInvestment,
			}
			if err := tx.Create(report).Error; err != nil {
				return err
			}
		}

		return advance(tx, profile, now)
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

// Dismiss skips the pending month. Nothing is banked, the review clock
// still advances so the month is not offered again.
func Dismiss(db *gorm.DB, profile *models.Profile, now time.Time) error {
	return advance(db, profile, now)
}

func advance(db *gorm.DB, profile *models.Profile, now time.Time) error {
	now = now.In(time.UTC)
	err := db.Model(profile).Select("LastReviewAt").Updates(models.Profile{LastReviewAt: &now}).Error
	if err != nil {
		return err
	}

	profile.LastReviewAt = &now
	return nil
}
