package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xpense-app/backend/internal/models"
	"github.com/xpense-app/backend/internal/types"
)

// NameGroup is one merchant or label within a category, identified by
// its normalized name.
type NameGroup struct {
	Name  string          `json:"name" example:"Morning Coffee"`
	Total decimal.Decimal `json:"total" example:"480"`
	Count int             `json:"count" example:"12"`
}

// CategoryGroup is the spending of one category within the range,
// broken down further by normalized transaction name.
type CategoryGroup struct {
	Category models.Category `json:"category" example:"Food"`
	Total    decimal.Decimal `json:"total" example:"3200"`
	Count    int             `json:"count" example:"25"`
	Share    decimal.Decimal `json:"share" example:"40"` // Percentage of the range's total spending
	Names    []NameGroup     `json:"names"`
}

// Breakdown groups expense spending in the range by category and, within
// each category, by normalized name. Groups are ordered by descending
// total. Ties keep the order in which the groups first appeared, so
// repeated calls over the same ledger return the same slice.
func Breakdown(transactions []models.Transaction, r types.Range) []CategoryGroup {
	type nameKey struct {
		category models.Category
		name     string
	}

	var categoryOrder []models.Category
	categories := make(map[models.Category]*CategoryGroup)

	var nameOrder []nameKey
	names := make(map[nameKey]*NameGroup)

	total := decimal.Zero
	for _, t := range transactions {
		if !r.Contains(t.Date) {
			continue
		}

		if t.Classification() != models.KindExpense || t.Category == models.CategoryInvestment {
			continue
		}

		total = total.Add(t.Amount)

		group, ok := categories[t.Category]
		if !ok {
			group = &CategoryGroup{Category: t.Category}
			categories[t.Category] = group
			categoryOrder = append(categoryOrder, t.Category)
		}
		group.Total = group.Total.Add(t.Amount)
		group.Count++

		key := nameKey{t.Category, models.NormalizeName(t.Name)}
		name, ok := names[key]
		if !ok {
			name = &NameGroup{Name: key.name}
			names[key] = name
			nameOrder = append(nameOrder, key)
		}
		name.Total = name.Total.Add(t.Amount)
		name.Count++
	}

	groups := make([]CategoryGroup, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		group := *categories[category]

		if total.IsPositive() {
			group.Share = group.Total.Div(total).Mul(hundred)
		}

		for _, key := range nameOrder {
			if key.category == category {
				group.Names = append(group.Names, *names[key])
			}
		}

		sort.SliceStable(group.Names, func(i, j int) bool {
			return group.Names[i].Total.GreaterThan(group.Names[j].Total)
		})

		groups = append(groups, group)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total.GreaterThan(groups[j].Total)
	})

	return groups
}

// TrendPoint is the spending total for one bucket of a trend query.
type TrendPoint struct {
	Label string          `json:"label" example:"Mar"`
	Range types.Range     `json:"range"`
	Spent decimal.Decimal `json:"spent" example:"12000"`
	Saved decimal.Decimal `json:"saved" example:"3000"`
}

// Trend returns the spending and saving totals for the trailing buckets
// of the period, oldest first.
func Trend(transactions []models.Transaction, p types.Period, anchor time.Time) []TrendPoint {
	buckets := types.Buckets(p, anchor)

	points := make([]TrendPoint, 0, len(buckets))
	for _, bucket := range buckets {
		points = append(points, TrendPoint{
			Label: bucket.Label,
			Range: bucket.Range,
			Spent: Spent(transactions, bucket.Range),
			Saved: Saved(transactions, bucket.Range),
		})
	}

	return points
}
