package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xpense-app/backend/internal/httputil"
	"github.com/xpense-app/backend/internal/models"
	"github.com/xpense-app/backend/internal/types"
)

type TransactionEditable struct {
	Name string `json:"name" example:"Morning Coffee" default:""` // Name of the expense. Defaults to the category or kind when empty

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"140" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount of the transaction

	Category models.Category `json:"category" example:"Food"`
	Date     time.Time       `json:"date" example:"2022-03-10T18:43:00.271152Z"`       // Date of the transaction. Defaults to the creation time
	Note     string          `json:"note" example:"Big party for everyone" default:""` // A note
	Kind     models.Kind     `json:"kind" example:"expense" default:"expense"`         // What the money did: expense, savings or investment

	FromSavings bool `json:"fromSavings" example:"false" default:"false"` // Legacy savings marker, used when kind is empty
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Name:        editable.Name,
		Amount:      editable.Amount,
		Category:    editable.Category,
		Date:        editable.Date,
		Note:        editable.Note,
		Kind:        editable.Kind,
		FromSavings: editable.FromSavings,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Name:        model.Name,
			Amount:      model.Amount,
			Category:    model.Category,
			Date:        model.Date,
			Note:        model.Note,
			Kind:        model.Kind,
			FromSavings: model.FromSavings,
		},
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/transactions/%s", httputil.RequestPathV1(c), model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data  []Transaction `json:"data"`                                                              // List of transactions
	Error *string       `json:"error" example:"the period must be one of daily, weekly, monthly"` // The error, if any occurred
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the amount must be positive"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                        // List of created transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the amount must be positive"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                        // The transaction data, if creation was successful
}

type TransactionQueryFilter struct {
	Period      types.Period    `form:"period" filterField:"false"`    // Shorthand range: daily, weekly or monthly, anchored at today
	FromDate    time.Time       `form:"fromDate" filterField:"false"`  // Transactions at and after this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided.
	UntilDate   time.Time       `form:"untilDate" filterField:"false"` // Transactions before and at this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided.
	Kind        models.Kind     `form:"kind"`                          // Filter by kind
	Category    models.Category `form:"category"`                      // Filter by category
	FromSavings bool            `form:"fromSavings"`                   // Filter by the legacy savings marker
	Name        string          `form:"name" filterField:"false"`      // Name matches this glob pattern, case insensitive
	Note        string          `form:"note" filterField:"false"`      // Note contains this string
}

func (f TransactionQueryFilter) model() (models.Transaction, error) {
	// This does not set the string or date fields since they are
	// handled in the controller function
	return TransactionEditable{
		Kind:        f.Kind,
		Category:    f.Category,
		FromSavings: f.FromSavings,
	}.model(), nil
}
