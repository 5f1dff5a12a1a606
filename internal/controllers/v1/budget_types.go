package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xpense-app/backend/internal/aggregate"
	"github.com/xpense-app/backend/internal/httputil"
	"github.com/xpense-app/backend/internal/models"
)

type BudgetEditable struct {
	Name     string          `json:"name" example:"Eating out"`
	Category models.Category `json:"category" example:"Food"`

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"5000" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The limit of the budget
}

// model returns the database resource for the API representation of the editable fields
func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		Name:     editable.Name,
		Category: editable.Category,
		Amount:   editable.Amount,
	}
}

type BudgetLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/budgets/d430d7c3-d14c-4712-9336-ee56965a6673"` // The budget itself
}

// Budget is the representation of a Budget in API v1.
type Budget struct {
	models.DefaultModel
	BudgetEditable

	Progress aggregate.Progress `json:"progress"` // All-time spending in the budget's category against its limits

	Links BudgetLinks `json:"links"`
}

// newBudget returns the API v1 representation of the resource. The
// progress figures need the ledger and all budgets of the category.
func newBudget(c *gin.Context, model models.Budget, transactions []models.Transaction, budgets []models.Budget) Budget {
	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			Name:     model.Name,
			Category: model.Category,
			Amount:   model.Amount,
		},
		Progress: aggregate.BudgetProgress(transactions, budgets, model.Category),
		Links: BudgetLinks{
			Self: fmt.Sprintf("%s/budgets/%s", httputil.RequestPathV1(c), model.ID),
		},
	}
}

type BudgetListResponse struct {
	Data  []Budget `json:"data"`                                        // List of budgets
	Error *string  `json:"error" example:"the budget name must be set"` // The error, if any occurred
}

type BudgetCreateResponse struct {
	Error *string          `json:"error" example:"the budget name must be set"` // The error, if any occurred
	Data  []BudgetResponse `json:"data"`                                        // List of created budgets
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Error *string `json:"error" example:"the budget name must be set"` // The error, if any occurred for this budget
	Data  *Budget `json:"data"`                                        // The budget data, if creation was successful
}

type BudgetQueryFilter struct {
	Name     string          `form:"name" filterField:"false"` // Name matches this glob pattern, case insensitive
	Category models.Category `form:"category"`                 // Filter by category
}

func (f BudgetQueryFilter) model() (models.Budget, error) {
	return BudgetEditable{
		Category: f.Category,
	}.model(), nil
}
