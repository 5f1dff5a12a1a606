package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	v1 "github.com/xpense-app/backend/internal/controllers/v1"
	"github.com/xpense-app/backend/internal/models"
	"github.com/xpense-app/backend/test"
)

func (suite *TestSuiteStandard) TestBudgetsOptions() {
	tests := []struct {
		name     string
		id       string // path at the /budgets endpoint
		status   int    // expected status
		pathFunc func(t *testing.T) string
	}{
		{"Does not exist", "b9d3b4cc-7bbc-4d82-97b7-3378e2e4e0a4", http.StatusNotFound, nil},
		{"Invalid UUID", "NotParseableAsUUID", http.StatusBadRequest, nil},
		{"Success", "", http.StatusNoContent, func(t *testing.T) string {
			budget := suite.createTestBudget(v1.BudgetEditable{
				Name:     "Groceries",
				Category: models.CategoryFood,
				Amount:   decimal.NewFromInt(5000),
			})
			return budget.Data.Links.Self
		}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var p string
			if tt.pathFunc != nil {
				p = tt.pathFunc(t)
			} else {
				p = fmt.Sprintf("http://example.com/v1/budgets/%s", tt.id)
			}

			r := test.Request(t, http.MethodOptions, p, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsDatabaseError() {
	tests := []struct {
		name   string // Name of the test
		path   string // Path at the /budgets endpoint
		method string // HTTP method to use
		body   string // The request body
	}{
		{"GET Collection", "", http.MethodGet, ""},
		{"GET Single", "/b9d3b4cc-7bbc-4d82-97b7-3378e2e4e0a4", http.MethodGet, ""},
		{"POST", "", http.MethodPost, `[{ "name": "Groceries", "category": "Food", "amount": 5000 }]`},
		{"PATCH", "/b9d3b4cc-7bbc-4d82-97b7-3378e2e4e0a4", http.MethodPatch, `{ "amount": 100 }`},
		{"DELETE", "/b9d3b4cc-7bbc-4d82-97b7-3378e2e4e0a4", http.MethodDelete, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/budgets%s", tt.path), tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

			var response struct {
				Error string `json:"error"`
			}
			test.DecodeResponse(t, &recorder, &response)
			assert.Equal(t, models.ErrGeneral.Error(), response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsCreate() {
	budget := suite.createTestBudget(v1.BudgetEditable{
		Name:     "Eating out",
		Category: models.CategoryFood,
		Amount:   decimal.NewFromInt(5000),
	})

	suite.Assert().Equal("Eating out", budget.Data.Name)
	suite.Assert().True(budget.Data.Amount.Equal(decimal.NewFromInt(5000)))
	suite.Assert().Contains(budget.Data.Links.Self, fmt.Sprintf("/v1/budgets/%s", budget.Data.ID))
}

func (suite *TestSuiteStandard) TestBudgetsCreateInvalid() {
	reqBody := []v1.BudgetEditable{
		{Name: "", Category: models.CategoryFood, Amount: decimal.NewFromInt(100)},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets", reqBody)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.BudgetCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Error)
	suite.Assert().Equal(models.ErrBudgetNameRequired.Error(), *response.Data[0].Error)
}

// TestBudgetsCreateAllocationCap verifies that a budget pushing the
// allocation past the monthly budget is rejected.
func (suite *TestSuiteStandard) TestBudgetsCreateAllocationCap() {
	suite.patchTestSettings(map[string]any{"monthlyBudget": 500})

	suite.createTestBudget(v1.BudgetEditable{
		Name:     "Groceries",
		Category: models.CategoryFood,
		Amount:   decimal.NewFromInt(400),
	})

	reqBody := []v1.BudgetEditable{
		{Name: "Transport", Category: models.CategoryTransport, Amount: decimal.NewFromInt(150)},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets", reqBody)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.BudgetCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Error)

	// The error reports the remaining headroom
	suite.Assert().Equal("the budget allocation exceeds the monthly budget: 100 is still unallocated", *response.Data[0].Error)
}

// TestBudgetsProgress verifies the all-time progress figures of a
// budget against the spending in its category.
func (suite *TestSuiteStandard) TestBudgetsProgress() {
	budget := suite.createTestBudget(v1.BudgetEditable{
		Name:     "Groceries",
		Category: models.CategoryFood,
		Amount:   decimal.NewFromInt(1000),
	})

	suite.createTestTransaction(v1.TransactionEditable{
		Name:     "Lunch",
		Amount:   decimal.NewFromInt(250),
		Category: models.CategoryFood,
	})

	suite.createTestTransaction(v1.TransactionEditable{
		Name:     "Dinner",
		Amount:   decimal.NewFromInt(150),
		Category: models.CategoryFood,
	})

	r := test.Request(suite.T(), http.MethodGet, budget.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(response.Data.Progress.Spent.Equal(decimal.NewFromInt(400)), "spent is %s, should be 400", response.Data.Progress.Spent)
	suite.Assert().True(response.Data.Progress.Limit.Equal(decimal.NewFromInt(1000)))
	suite.Assert().True(response.Data.Progress.Percentage.Equal(decimal.NewFromInt(40)))
}

func (suite *TestSuiteStandard) TestBudgetsGetFilter() {
	for _, editable := range []v1.BudgetEditable{
		{Name: "Groceries", Category: models.CategoryFood, Amount: decimal.NewFromInt(5000)},
		{Name: "Eating out", Category: models.CategoryFood, Amount: decimal.NewFromInt(2000)},
		{Name: "Commute", Category: models.CategoryTransport, Amount: decimal.NewFromInt(1500)},
	} {
		suite.createTestBudget(editable)
	}

	tests := []struct {
		name  string // Name of the test
		query string // The query string
		len   int    // Number of budgets expected
	}{
		{"No filter", "", 3},
		{"Category", "category=Food", 2},
		{"Name glob", "name=*eat*", 1},
		{"Name glob without match", "name=rent", 0},
		{"Category and name", "category=Food&name=groceries", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.BudgetListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

// TestBudgetsUpdate verifies that a partial update only touches the
// fields in the request body.
func (suite *TestSuiteStandard) TestBudgetsUpdate() {
	budget := suite.createTestBudget(v1.BudgetEditable{
		Name:     "Groceries",
		Category: models.CategoryFood,
		Amount:   decimal.NewFromInt(5000),
	})

	r := test.Request(suite.T(), http.MethodPatch, budget.Data.Links.Self, map[string]any{
		"name": "Supermarket",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal("Supermarket", response.Data.Name)
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromInt(5000)), "amount is %s, should be unchanged at 5000", response.Data.Amount)
}

func (suite *TestSuiteStandard) TestBudgetsUpdateNotFound() {
	r := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/budgets/b9d3b4cc-7bbc-4d82-97b7-3378e2e4e0a4", map[string]any{
		"name": "Supermarket",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetsUpdateInvalidBody() {
	budget := suite.createTestBudget(v1.BudgetEditable{
		Name:     "Groceries",
		Category: models.CategoryFood,
		Amount:   decimal.NewFromInt(5000),
	})

	r := test.Request(suite.T(), http.MethodPatch, budget.Data.Links.Self, `{ invalid json }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetsDelete() {
	budget := suite.createTestBudget(v1.BudgetEditable{
		Name:     "Groceries",
		Category: models.CategoryFood,
		Amount:   decimal.NewFromInt(5000),
	})

	r := test.Request(suite.T(), http.MethodDelete, budget.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// Deleting twice also succeeds, the budget is gone either way
	r = test.Request(suite.T(), http.MethodDelete, budget.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, budget.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
