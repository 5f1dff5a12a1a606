package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	v1 "github.com/xpense-app/backend/internal/controllers/v1"
	"github.com/xpense-app/backend/internal/httputil"
	"github.com/xpense-app/backend/internal/models"
	"github.com/xpense-app/backend/test"
)

func (suite *TestSuiteStandard) TestTransactionsOptions() {
	tests := []struct {
		name     string
		id       string // path at the /transactions endpoint
		status   int    // expected status
		pathFunc func(t *testing.T) string
	}{
		{"Does not exist", "6a463cc8-1938-474a-8aeb-0482b82ffb6f", http.StatusNotFound, nil},
		{"Invalid UUID", "NotParseableAsUUID", http.StatusBadRequest, nil},
		{"Success", "", http.StatusNoContent, func(t *testing.T) string {
			transaction := suite.createTestTransaction(v1.TransactionEditable{
				Amount:   decimal.NewFromInt(140),
				Category: models.CategoryFood,
			})
			return fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.Data.ID)
		}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var p string
			if tt.pathFunc != nil {
				p = tt.pathFunc(t)
			} else {
				p = fmt.Sprintf("http://example.com/v1/transactions/%s", tt.id)
			}

			r := test.Request(t, http.MethodOptions, p, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsDatabaseError() {
	tests := []struct {
		name   string // Name of the test
		path   string // Path at the /transactions endpoint
		method string // HTTP method to use
		body   string // The request body
	}{
		{"GET Collection", "", http.MethodGet, ""},
		{"GET Single", "/29f2b307-3bfd-48b3-a91e-ae3fa841eb84", http.MethodGet, ""},
		{"POST", "", http.MethodPost, `[{ "amount": 140, "category": "Food" }]`},
		{"DELETE", "/29f2b307-3bfd-48b3-a91e-ae3fa841eb84", http.MethodDelete, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/transactions%s", tt.path), tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

			var response struct {
				Error string `json:"error"`
			}
			test.DecodeResponse(t, &recorder, &response)
			assert.Equal(t, models.ErrGeneral.Error(), response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	transaction := suite.createTestTransaction(v1.TransactionEditable{
		Name:     "morning coffee",
		Amount:   decimal.NewFromInt(140),
		Category: models.CategoryFood,
		Kind:     models.KindExpense,
	})

	// The name is normalized on the way in
	suite.Assert().Equal("Morning Coffee", transaction.Data.Name)
	suite.Assert().True(transaction.Data.Amount.Equal(decimal.NewFromInt(140)))
	suite.Assert().Contains(transaction.Data.Links.Self, fmt.Sprintf("/v1/transactions/%s", transaction.Data.ID))
}

// TestTransactionsCreateMixed verifies that a partially invalid request
// creates the valid resources and reports the broken ones in place.
func (suite *TestSuiteStandard) TestTransactionsCreateMixed() {
	reqBody := []v1.TransactionEditable{
		{Name: "Lunch", Amount: decimal.NewFromInt(250), Category: models.CategoryFood},
		{Name: "Free Lunch", Amount: decimal.Zero, Category: models.CategoryFood},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", reqBody)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.TransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().NotNil(response.Data[0].Data)
	suite.Require().NotNil(response.Data[1].Error)
	suite.Assert().Equal(models.ErrAmountNotPositive.Error(), *response.Data[1].Error)
}

func (suite *TestSuiteStandard) TestTransactionsCreateInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", `{ invalid json }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.TransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().NotNil(response.Error)
	suite.Assert().Equal(httputil.ErrInvalidBody.Error(), *response.Error)
	suite.Assert().Nil(response.Data)
}

func (suite *TestSuiteStandard) TestTransactionsCreateNoBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.TransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().NotNil(response.Error)
	suite.Assert().Equal(httputil.ErrRequestBodyEmpty.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestTransactionsGetSingle() {
	transaction := suite.createTestTransaction(v1.TransactionEditable{
		Name:     "Lunch",
		Amount:   decimal.NewFromInt(250),
		Category: models.CategoryFood,
	})

	r := test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Lunch", response.Data.Name)
}

func (suite *TestSuiteStandard) TestTransactionsGetSingleNotFound() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions/d79bd15b-339c-4fc0-8b26-b2b8a4a47d04", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Error)
	suite.Assert().Equal("there is no transaction matching your query", *response.Error)
}

func (suite *TestSuiteStandard) TestTransactionsGetSingleInvalidUUID() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions/definitely-not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestTransactionsGetSorted verifies that the transaction list is
// sorted by date, newest first.
func (suite *TestSuiteStandard) TestTransactionsGetSorted() {
	older := suite.createTestTransaction(v1.TransactionEditable{
		Name:     "Older",
		Amount:   decimal.NewFromInt(100),
		Category: models.CategoryFood,
		Date:     time.Date(2022, 3, 10, 12, 0, 0, 0, time.UTC),
	})

	newer := suite.createTestTransaction(v1.TransactionEditable{
		Name:     "Newer",
		Amount:   decimal.NewFromInt(100),
		Category: models.CategoryFood,
		Date:     time.Date(2022, 3, 20, 12, 0, 0, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal(newer.Data.ID, response.Data[0].ID)
	suite.Assert().Equal(older.Data.ID, response.Data[1].ID)
}

func (suite *TestSuiteStandard) TestTransactionsGetFilter() {
	for _, editable := range []v1.TransactionEditable{
		{Name: "Morning Coffee", Amount: decimal.NewFromInt(140), Category: models.CategoryFood, Kind: models.KindExpense, Note: "with friends", Date: time.Date(2022, 3, 10, 9, 0, 0, 0, time.UTC)},
		{Name: "Train Ticket", Amount: decimal.NewFromInt(35), Category: models.CategoryTransport, Kind: models.KindExpense, Date: time.Date(2022, 3, 12, 8, 30, 0, 0, time.UTC)},
		{Name: "", Amount: decimal.NewFromInt(5000), Category: models.CategoryMisc, Kind: models.KindSavings, Date: time.Date(2022, 3, 15, 18, 0, 0, 0, time.UTC)},
		{Name: "Emergency", Amount: decimal.NewFromInt(800), Category: models.CategoryMisc, FromSavings: true, Date: time.Date(2022, 3, 20, 11, 0, 0, 0, time.UTC)},
	} {
		suite.createTestTransaction(editable)
	}

	tests := []struct {
		name  string // Name of the test
		query string // The query string
		len   int    // Number of transactions expected
	}{
		{"No filter", "", 4},
		{"Kind expense", "kind=expense", 2},
		{"Kind savings", "kind=savings", 1},
		{"Category", "category=Transport", 1},
		{"Name glob", "name=*coffee*", 1},
		{"Name glob without match", "name=coffee", 0},
		{"Note substring", "note=friends", 1},
		{"Legacy savings marker", "fromSavings=true", 1},
		{"From date", "fromDate=2022-03-12T00:00:00Z", 3},
		{"Until date", "untilDate=2022-03-12T00:00:00Z", 2},
		{"Explicit range", "fromDate=2022-03-11T00:00:00Z&untilDate=2022-03-16T00:00:00Z", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetInvalidFilter() {
	tests := []struct {
		name  string // Name of the test
		query string // The query string
		err   string // The expected error message
	}{
		{"Invalid kind", "kind=donation", models.ErrKindInvalid.Error()},
		{"Invalid category", "category=Gambling", models.ErrCategoryInvalid.Error()},
		{"Invalid period", "period=yearly", "the period must be one of daily, weekly, monthly"},
		{"Period with explicit range", "period=monthly&fromDate=2022-03-01T00:00:00Z", "the period parameter cannot be combined with from or until"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			assert.NotNil(t, response.Error)
			assert.Equal(t, tt.err, *response.Error)
		})
	}
}

// TestTransactionsGetPeriod verifies that the period shorthand matches
// transactions dated today.
func (suite *TestSuiteStandard) TestTransactionsGetPeriod() {
	suite.createTestTransaction(v1.TransactionEditable{
		Name:     "Lunch",
		Amount:   decimal.NewFromInt(250),
		Category: models.CategoryFood,
		Kind:     models.KindExpense,
	})

	suite.createTestTransaction(v1.TransactionEditable{
		Name:     "Old Lunch",
		Amount:   decimal.NewFromInt(250),
		Category: models.CategoryFood,
		Kind:     models.KindExpense,
		Date:     time.Date(2022, 3, 10, 12, 0, 0, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?period=daily", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Lunch", response.Data[0].Name)
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	transaction := suite.createTestTransaction(v1.TransactionEditable{
		Name:     "Lunch",
		Amount:   decimal.NewFromInt(250),
		Category: models.CategoryFood,
	})

	r := test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// Deleting twice also succeeds, the transaction is gone either way
	r = test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionsDeleteInvalidUUID() {
	r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/transactions/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
