package aggregate

import (
	"github.com/shopspring/decimal"
	"github.com/xpense-app/backend/internal/models"
	"github.com/xpense-app/backend/internal/types"
)

// Summary is the full dashboard view for one range.
type Summary struct {
	Range types.Range `json:"range"`
	Days  int         `json:"days" example:"30"`

	Spent      decimal.Decimal `json:"spent" example:"15000"`
	Saved      decimal.Decimal `json:"saved" example:"5000"`
	Invested   decimal.Decimal `json:"invested" example:"3000"`
	NetSavings decimal.Decimal `json:"netSavings" example:"10000"`

	OperatingBudget decimal.Decimal `json:"operatingBudget" example:"20000"`
	BudgetRemaining decimal.Decimal `json:"budgetRemaining" example:"5000"`
	Status          BudgetStatus    `json:"status" example:"under"`

	DailyAverage decimal.Decimal `json:"dailyAverage" example:"500"`
	DailyTarget  decimal.Decimal `json:"dailyTarget" example:"666.67"` // Operating budget spread over the period

	IncomeUsagePercent decimal.Decimal `json:"incomeUsagePercent" example:"56"`

	AllTimeSavings     decimal.Decimal `json:"allTimeSavings" example:"150000"`
	AllTimeInvestments decimal.Decimal `json:"allTimeInvestments" example:"80000"`
	TotalAssets        decimal.Decimal `json:"totalAssets" example:"230000"`

	Goal GoalProjection `json:"goal"`

	// RunwayMonths is how long the cumulative savings cover the monthly
	// budget. It is null when no monthly budget is set.
	RunwayMonths *decimal.Decimal `json:"runwayMonths" example:"7.5"`

	Commentary string `json:"commentary" example:"You're doing great!"`
}

// Summarize derives the dashboard summary for the range. transactions
// is the complete ledger: the all-time figures need every row, the
// range-scoped ones filter internally. days is the day count to average
// over, which is the nominal period length for period filters and the
// true day count for explicit ranges.
func Summarize(transactions []models.Transaction, profile models.Profile, budgets []models.Budget, r types.Range, days int) Summary {
	spent := Spent(transactions, r)
	saved := Saved(transactions, r)
	operating := OperatingBudget(profile, budgets)

	summary := Summary{
		Range:    r,
		Days:     days,
		Spent:    spent,
		Saved:    saved,
		Invested: Invested(transactions, r),

		OperatingBudget: operating,
		BudgetRemaining: BudgetRemaining(spent, profile.MonthlyBudget),
		Status:          Status(spent, operating),

		DailyAverage: DailyAverage(spent, days),

		AllTimeSavings:     AllTimeSavings(transactions, profile),
		AllTimeInvestments: AllTimeInvestments(transactions),
	}

	summary.NetSavings = NetSavings(saved, spent, profile.MonthlyBudget)
	summary.IncomeUsagePercent = IncomeUsagePercent(saved, summary.Invested, profile)
	summary.TotalAssets = summary.AllTimeSavings.Add(summary.AllTimeInvestments)
	summary.DailyTarget = DailyAverage(operating, days)
	summary.Goal = TimeToGoal(summary.AllTimeSavings, profile)

	if months, ok := Runway(summary.AllTimeSavings, profile); ok {
		summary.RunwayMonths = &months
	}

	var inRange []models.Transaction
	for _, t := range transactions {
		if r.Contains(t.Date) && t.Classification() == models.KindExpense {
			inRange = append(inRange, t)
		}
	}
	summary.Commentary = Commentary(inRange, summary.BudgetRemaining, profile.Currency)

	return summary
}
