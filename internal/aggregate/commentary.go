package aggregate

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xpense-app/backend/internal/models"
)

var (
	lowBalanceThreshold = decimal.NewFromInt(1000)
	bigSpendThreshold   = decimal.NewFromInt(2000)
)

// Commentary produces a one-line remark about the spending in the
// current view. balance is the remaining operating budget.
func Commentary(transactions []models.Transaction, balance decimal.Decimal, currency models.Currency) string {
	if len(transactions) == 0 {
		return "Start tracking your expenses to get personalized insights!"
	}

	totalSpent := decimal.Zero
	for _, t := range transactions {
		totalSpent = totalSpent.Add(t.Amount)
	}
	topCategory := TopCategory(transactions)

	symbol := currency.Symbol()
	if balance.LessThan(lowBalanceThreshold) {
		return fmt.Sprintf("Careful! Your balance is getting low (%s%s). You've spent a lot on %s recently.", symbol, balance.Round(0), topCategory)
	}

	if totalSpent.GreaterThan(bigSpendThreshold) {
		return fmt.Sprintf("Whoa, big spender! You've spent %s%s this month. Maybe cut back on %s?", symbol, totalSpent.Round(0), topCategory)
	}

	return fmt.Sprintf("You're doing great! Your spending on %s is within reasonable limits. Keep saving!", topCategory)
}

// TopCategory returns the category with the highest total among the
// transactions. Ties go to the category seen first.
func TopCategory(transactions []models.Transaction) models.Category {
	var order []models.Category
	totals := make(map[models.Category]decimal.Decimal)

	for _, t := range transactions {
		if _, ok := totals[t.Category]; !ok {
			order = append(order, t.Category)
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	var top models.Category
	max := decimal.Zero
	for _, category := range order {
		if totals[category].GreaterThan(max) {
			top = category
			max = totals[category]
		}
	}

	return top
}

// YearSummary is the year in review: the full year's totals condensed
// into a shareable recap.
type YearSummary struct {
	Year         int             `json:"year" example:"2025"`
	TotalSpent   decimal.Decimal `json:"totalSpent" example:"184000"`
	TotalSaved   decimal.Decimal `json:"totalSaved" example:"60000"`
	TotalCount   int             `json:"totalCount" example:"312"`
	TopCategory  models.Category `json:"topCategory" example:"Food"`
	BiggestSpend decimal.Decimal `json:"biggestSpend" example:"12000"`
	BiggestName  string          `json:"biggestName" example:"Flight Tickets"`
}

// Wrapped condenses a calendar year of the ledger into a recap.
func Wrapped(transactions []models.Transaction, year int) YearSummary {
	summary := YearSummary{Year: year}

	var expenses []models.Transaction
	for _, t := range transactions {
		if t.Date.Year() != year {
			continue
		}

		switch {
		case t.Classification() == models.KindSavings:
			summary.TotalSaved = summary.TotalSaved.Add(t.Amount)
		case t.Classification() == models.KindInvestment || t.Category == models.CategoryInvestment:
			// Legacy rows in the Investment category never count as
			// spending, same as Invested and Spent.
		default:
			expenses = append(expenses, t)
			summary.TotalSpent = summary.TotalSpent.Add(t.Amount)
			summary.TotalCount++

			if t.Amount.GreaterThan(summary.BiggestSpend) {
				summary.BiggestSpend = t.Amount
				summary.BiggestName = t.Name
			}
		}
	}

	summary.TopCategory = TopCategory(expenses)
	return summary
}
