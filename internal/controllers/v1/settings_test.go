package v1_test

import (
	"net/http"

	"github.com/shopspring/decimal"
	v1 "github.com/xpense-app/backend/internal/controllers/v1"
	"github.com/xpense-app/backend/internal/models"
	"github.com/xpense-app/backend/test"
)

func (suite *TestSuiteStandard) TestSettingsOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/settings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("GET, PATCH", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestSettingsDatabaseError() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Error)
	suite.Assert().Equal(models.ErrGeneral.Error(), *response.Error)
}

// TestSettingsGetDefaults verifies that the first request creates the
// settings with their defaults.
func (suite *TestSuiteStandard) TestSettingsGetDefaults() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal(models.CurrencyINR, response.Data.Currency)
	suite.Assert().Equal("₹", response.Data.CurrencySymbol)
	suite.Assert().Equal("system", response.Data.Theme)
	suite.Assert().False(response.Data.NotifyDaily)
	suite.Assert().True(response.Data.Savings.IsZero())
	suite.Assert().Nil(response.Data.LastReviewAt)
	suite.Assert().Contains(response.Data.Links.Self, "/v1/settings")
}

// TestSettingsUpdate verifies that a partial update only touches the
// fields in the request body.
func (suite *TestSuiteStandard) TestSettingsUpdate() {
	settings := suite.patchTestSettings(map[string]any{
		"income":        50000,
		"monthlyBudget": 20000,
	})

	suite.Assert().True(settings.Income.Equal(decimal.NewFromInt(50000)))
	suite.Assert().True(settings.MonthlyBudget.Equal(decimal.NewFromInt(20000)))
	suite.Assert().Equal("system", settings.Theme)

	// A second update does not revert earlier ones
	settings = suite.patchTestSettings(map[string]any{"theme": "dark"})
	suite.Assert().Equal("dark", settings.Theme)
	suite.Assert().True(settings.Income.Equal(decimal.NewFromInt(50000)), "income is %s, should be unchanged at 50000", settings.Income)
}

func (suite *TestSuiteStandard) TestSettingsUpdateCurrency() {
	settings := suite.patchTestSettings(map[string]any{"currency": "USD"})
	suite.Assert().Equal(models.CurrencyUSD, settings.Currency)
	suite.Assert().Equal("$", settings.CurrencySymbol)
}

func (suite *TestSuiteStandard) TestSettingsUpdateNotifyDaily() {
	settings := suite.patchTestSettings(map[string]any{"notifyDaily": true})
	suite.Assert().True(settings.NotifyDaily)

	settings = suite.patchTestSettings(map[string]any{"notifyDaily": false})
	suite.Assert().False(settings.NotifyDaily)
}

func (suite *TestSuiteStandard) TestSettingsUpdateInvalidBody() {
	r := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/settings", `{ invalid json }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSettingsUpdateNoBody() {
	r := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/settings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
