package v1_test

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	v1 "github.com/xpense-app/backend/internal/controllers/v1"
	"github.com/xpense-app/backend/internal/models"
	"github.com/xpense-app/backend/test"
)

func (suite *TestSuiteStandard) TestImportOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/import", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestImportDatabaseError() {
	suite.CloseDB()

	reqBody := v1.ImportData{
		Transactions: []v1.ImportTransaction{
			{TransactionEditable: v1.TransactionEditable{Name: "Lunch", Amount: decimal.NewFromInt(250), Category: models.CategoryFood}},
		},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", reqBody)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestImport() {
	reqBody := v1.ImportData{
		Transactions: []v1.ImportTransaction{
			{TransactionEditable: v1.TransactionEditable{Name: "Lunch", Amount: decimal.NewFromInt(250), Category: models.CategoryFood}},
			{TransactionEditable: v1.TransactionEditable{Name: "Train Ticket", Amount: decimal.NewFromInt(35), Category: models.CategoryTransport}},
		},
		Budgets: []v1.ImportBudget{
			{BudgetEditable: v1.BudgetEditable{Name: "Groceries", Category: models.CategoryFood, Amount: decimal.NewFromInt(5000)}},
		},
		Settings: &v1.SettingsEditable{
			Income:   decimal.NewFromInt(50000),
			Currency: models.CurrencyEUR,
			Theme:    "dark",
		},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", reqBody)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().False(response.Data.Preview)
	suite.Assert().Equal(2, response.Data.TransactionsCreated)
	suite.Assert().Equal(1, response.Data.BudgetsCreated)
	suite.Assert().True(response.Data.SettingsApplied)

	// The resources are now served by the API
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var transactions v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &transactions)
	suite.Assert().Len(transactions.Data, 2)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var settings v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &settings)
	suite.Assert().True(settings.Data.Income.Equal(decimal.NewFromInt(50000)))
	suite.Assert().Equal(models.CurrencyEUR, settings.Data.Currency)
	suite.Assert().Equal("dark", settings.Data.Theme)
}

// TestImportRoundTripKeepsIDs verifies that restoring an export
// reproduces the transactions with their original ids.
func (suite *TestSuiteStandard) TestImportRoundTripKeepsIDs() {
	transaction := suite.createTestTransaction(v1.TransactionEditable{
		Name:     "Lunch",
		Amount:   decimal.NewFromInt(250),
		Category: models.CategoryFood,
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var export v1.ExportResponse
	test.DecodeResponse(suite.T(), &r, &export)

	var exported []v1.ImportTransaction
	suite.Require().Nil(json.Unmarshal(export.Data["Transaction"], &exported))
	suite.Require().Len(exported, 1)
	suite.Assert().Equal(transaction.Data.ID, exported[0].ID)

	// Wipe the ledger as if restoring on a fresh device
	suite.Require().Nil(models.DB.Unscoped().Where("1 = 1").Delete(&models.Transaction{}).Error)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", v1.ImportData{Transactions: exported})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var restored v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &restored)

	suite.Require().Len(restored.Data, 1)
	suite.Assert().Equal(transaction.Data.ID, restored.Data[0].ID)
	suite.Assert().True(restored.Data[0].Amount.Equal(decimal.NewFromInt(250)))
}

// TestImportPreview verifies the dry run: duplicates are reported and
// nothing is written.
func (suite *TestSuiteStandard) TestImportPreview() {
	suite.createTestTransaction(v1.TransactionEditable{
		Name:     "Lunch",
		Amount:   decimal.NewFromInt(250),
		Category: models.CategoryFood,
	})

	reqBody := v1.ImportData{
		Transactions: []v1.ImportTransaction{
			{TransactionEditable: v1.TransactionEditable{Name: "lunch", Amount: decimal.NewFromInt(300), Category: models.CategoryFood}},
			{TransactionEditable: v1.TransactionEditable{Name: "Train Ticket", Amount: decimal.NewFromInt(35), Category: models.CategoryTransport}},
		},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import?preview=*", reqBody)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(response.Data.Preview)
	suite.Assert().Equal([]string{"Lunch"}, response.Data.Duplicates)
	suite.Assert().Equal(0, response.Data.TransactionsCreated)

	// The ledger is untouched
	var transactions []models.Transaction
	suite.Require().Nil(models.DB.Find(&transactions).Error)
	suite.Assert().Len(transactions, 1)
}

// TestImportPreviewPattern verifies that the glob pattern narrows which
// incoming names are checked.
func (suite *TestSuiteStandard) TestImportPreviewPattern() {
	for _, editable := range []v1.TransactionEditable{
		{Name: "Morning Coffee", Amount: decimal.NewFromInt(140), Category: models.CategoryFood},
		{Name: "Train Ticket", Amount: decimal.NewFromInt(35), Category: models.CategoryTransport},
	} {
		suite.createTestTransaction(editable)
	}

	reqBody := v1.ImportData{
		Transactions: []v1.ImportTransaction{
			{TransactionEditable: v1.TransactionEditable{Name: "Morning Coffee", Amount: decimal.NewFromInt(140), Category: models.CategoryFood}},
			{TransactionEditable: v1.TransactionEditable{Name: "Train Ticket", Amount: decimal.NewFromInt(35), Category: models.CategoryTransport}},
		},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import?preview=*coffee*", reqBody)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	// The train ticket is a duplicate too, but outside the pattern
	suite.Assert().Equal([]string{"Morning Coffee"}, response.Data.Duplicates)
}

func (suite *TestSuiteStandard) TestImportEmptyData() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", `{}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Error)
	suite.Assert().Equal("the import data must contain at least one of transactions, budgets or profile", *response.Error)
}

func (suite *TestSuiteStandard) TestImportInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", `{ invalid json }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestImportKeepsReviewClock verifies that restoring settings does not
// move the review clock.
func (suite *TestSuiteStandard) TestImportKeepsReviewClock() {
	// Start the review clock
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/review", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	reqBody := v1.ImportData{
		Settings: &v1.SettingsEditable{
			Income: decimal.NewFromInt(50000),
		},
	}

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", reqBody)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	profile, err := models.LoadProfile(models.DB)
	suite.Require().Nil(err)
	suite.Assert().NotNil(profile.LastReviewAt)
}
