package v1_test

import (
	"net/http"

	"github.com/shopspring/decimal"
	v1 "github.com/xpense-app/backend/internal/controllers/v1"
	"github.com/xpense-app/backend/internal/models"
	"github.com/xpense-app/backend/internal/types"
	"github.com/xpense-app/backend/test"
)

func (suite *TestSuiteStandard) TestReportsOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/reports", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestReportsDatabaseError() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestReportsEmpty() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// An empty list, not null
	suite.Assert().Contains(r.Body.String(), `"data":[]`)
}

// TestReportsSorted verifies that reports are returned oldest first,
// regardless of creation order.
func (suite *TestSuiteStandard) TestReportsSorted() {
	for _, month := range []types.Month{
		types.NewMonth(2022, 3),
		types.NewMonth(2022, 1),
	} {
		report := models.MonthlyReport{
			Month:      month,
			Income:     decimal.NewFromInt(50000),
			TotalSaved: decimal.NewFromInt(30000),
		}
		suite.Require().Nil(models.DB.Create(&report).Error)
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReportListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("2022-01", response.Data[0].Month.String())
	suite.Assert().Equal("2022-03", response.Data[1].Month.String())
	suite.Assert().True(response.Data[0].TotalSaved.Equal(decimal.NewFromInt(30000)))
}
