// Package aggregate computes the derived financial metrics of the
// tracker. Every function is a pure function of the transactions,
// profile and range passed in, which keeps the math deterministic and
// independent of storage.
package aggregate

import (
	"github.com/shopspring/decimal"
	"github.com/xpense-app/backend/internal/models"
	"github.com/xpense-app/backend/internal/types"
)

var hundred = decimal.NewFromInt(100)

// Spent sums expense transactions within the range.
func Spent(transactions []models.Transaction, r types.Range) decimal.Decimal {
	return sumInRange(transactions, r, models.KindExpense)
}

// Saved sums savings deposits within the range. Only transactions
// explicitly classified as savings count, there is no fallback.
func Saved(transactions []models.Transaction, r types.Range) decimal.Decimal {
	return sumInRange(transactions, r, models.KindSavings)
}

// Invested sums investment contributions within the range. Legacy rows
// in the Investment category count as investments even without a kind.
func Invested(transactions []models.Transaction, r types.Range) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range transactions {
		if !r.Contains(t.Date) {
			continue
		}

		if t.Classification() == models.KindInvestment || t.Category == models.CategoryInvestment {
			sum = sum.Add(t.Amount)
		}
	}

	return sum
}

func sumInRange(transactions []models.Transaction, r types.Range, kind models.Kind) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range transactions {
		if !r.Contains(t.Date) {
			continue
		}

		// The category fallback for investments keeps legacy rows out
		// of the expense bucket.
		if kind == models.KindExpense && t.Category == models.CategoryInvestment {
			continue
		}

		if t.Classification() == kind {
			sum = sum.Add(t.Amount)
		}
	}

	return sum
}

// NetSavings blends explicit savings deposits with the unspent part of
// the operating budget: saved + max(0, monthlyBudget - spent).
func NetSavings(saved, spent, monthlyBudget decimal.Decimal) decimal.Decimal {
	return saved.Add(BudgetRemaining(spent, monthlyBudget))
}

// BudgetRemaining is the operating budget headroom for the range,
// floored at zero.
func BudgetRemaining(spent, monthlyBudget decimal.Decimal) decimal.Decimal {
	remaining := monthlyBudget.Sub(spent)
	if remaining.IsNegative() {
		return decimal.Zero
	}

	return remaining
}

// OperatingBudget returns the monthly budget, falling back to the sum
// of all category budgets when no monthly budget is set.
func OperatingBudget(profile models.Profile, budgets []models.Budget) decimal.Decimal {
	if profile.MonthlyBudget.IsPositive() {
		return profile.MonthlyBudget
	}

	sum := decimal.Zero
	for _, b := range budgets {
		sum = sum.Add(b.Amount)
	}

	return sum
}

// IncomeUsagePercent is the share of income consumed by the monthly
// allocation plus the period's savings and investments. A non-positive
// income yields 0.
func IncomeUsagePercent(saved, invested decimal.Decimal, profile models.Profile) decimal.Decimal {
	if !profile.Income.IsPositive() {
		return decimal.Zero
	}

	allocated := profile.MonthlyBudget.Add(saved).Add(invested)
	return allocated.Div(profile.Income).Mul(hundred)
}

// DailyAverage divides spending by the day count of the range. A day
// count below one counts as one.
func DailyAverage(spent decimal.Decimal, days int) decimal.Decimal {
	if days < 1 {
		days = 1
	}

	return spent.Div(decimal.NewFromInt(int64(days)))
}

// BudgetStatus is the traffic light state of the operating budget.
type BudgetStatus string

const (
	StatusUnder BudgetStatus = "under"
	StatusNear  BudgetStatus = "near" // 80% or more used
	StatusOver  BudgetStatus = "over" // 100% or more used
)

// Status returns the budget state for spending against the operating
// budget. With no budget set everything is under.
func Status(spent, operatingBudget decimal.Decimal) BudgetStatus {
	if !operatingBudget.IsPositive() {
		return StatusUnder
	}

	percentage := spent.Div(operatingBudget).Mul(hundred)
	switch {
	case percentage.GreaterThanOrEqual(hundred):
		return StatusOver
	case percentage.GreaterThanOrEqual(decimal.NewFromInt(80)):
		return StatusNear
	default:
		return StatusUnder
	}
}

// AllTimeSavings is the cumulative banked savings plus every savings
// deposit in the ledger, regardless of period.
func AllTimeSavings(transactions []models.Transaction, profile models.Profile) decimal.Decimal {
	sum := profile.Savings
	for _, t := range transactions {
		if t.Classification() == models.KindSavings {
			sum = sum.Add(t.Amount)
		}
	}

	return sum
}

// AllTimeInvestments sums every investment in the ledger.
func AllTimeInvestments(transactions []models.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range transactions {
		if t.Classification() == models.KindInvestment || t.Category == models.CategoryInvestment {
			sum = sum.Add(t.Amount)
		}
	}

	return sum
}

// GoalProjection is the time-to-goal estimate at the current monthly
// surplus.
type GoalProjection struct {
	Reached          bool `json:"reached"`          // The savings goal is already met
	PaceInsufficient bool `json:"paceInsufficient"` // Income minus budget leaves no monthly surplus
	Months           int  `json:"months" example:"3"`
	Days             int  `json:"days" example:"0"` // Remainder at 30 days per month
}

// TimeToGoal projects how long reaching the savings goal takes when
// income minus the monthly budget is banked every month. The remainder
// is expressed in days using the fixed 30-day month.
func TimeToGoal(allTimeSavings decimal.Decimal, profile models.Profile) GoalProjection {
	remaining := profile.SavingsGoal.Sub(allTimeSavings)
	if remaining.LessThanOrEqual(decimal.Zero) {
		return GoalProjection{Reached: true}
	}

	pace := profile.Income.Sub(profile.MonthlyBudget)
	if pace.LessThanOrEqual(decimal.Zero) {
		return GoalProjection{PaceInsufficient: true}
	}

	months := remaining.Div(pace)
	whole := months.Floor()
	days := months.Sub(whole).Mul(decimal.NewFromInt(30)).Round(0)

	return GoalProjection{
		Months: int(whole.IntPart()),
		Days:   int(days.IntPart()),
	}
}

// Runway returns how many months the cumulative savings cover the
// monthly budget. ok is false when no budget is set.
func Runway(allTimeSavings decimal.Decimal, profile models.Profile) (months decimal.Decimal, ok bool) {
	if !profile.MonthlyBudget.IsPositive() {
		return decimal.Zero, false
	}

	return allTimeSavings.Div(profile.MonthlyBudget), true
}

// Progress is the all-time progress of a category against its budgets.
type Progress struct {
	Spent      decimal.Decimal `json:"spent" example:"120"`
	Limit      decimal.Decimal `json:"limit" example:"500"`
	Percentage decimal.Decimal `json:"percentage" example:"24"`
}

// BudgetProgress reports all-time spending in a category against the
// summed budget limits for it. This is deliberately not period scoped:
// budgets roll over indefinitely unless deleted.
func BudgetProgress(transactions []models.Transaction, budgets []models.Budget, category models.Category) Progress {
	limit := decimal.Zero
	for _, b := range budgets {
		if b.Category == category {
			limit = limit.Add(b.Amount)
		}
	}

	spent := decimal.Zero
	for _, t := range transactions {
		if t.Category == category {
			spent = spent.Add(t.Amount)
		}
	}

	percentage := decimal.Zero
	if limit.IsPositive() {
		percentage = spent.Div(limit).Mul(hundred)
	}

	return Progress{Spent: spent, Limit: limit, Percentage: percentage}
}
