package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xpense-app/backend/internal/aggregate"
	"github.com/xpense-app/backend/internal/httputil"
	"github.com/xpense-app/backend/internal/models"
	"github.com/xpense-app/backend/internal/types"
)

// RegisterInsightRoutes registers the routes for insights with
// the RouterGroup that is passed.
func RegisterInsightRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/summary", httputil.OptionsGet)
	r.GET("/summary", GetSummary)

	r.OPTIONS("/breakdown", httputil.OptionsGet)
	r.GET("/breakdown", GetBreakdown)

	r.OPTIONS("/trend", httputil.OptionsGet)
	r.GET("/trend", GetTrend)

	r.OPTIONS("/wrapped", httputil.OptionsGet)
	r.GET("/wrapped", GetWrapped)
}

type InsightQueryFilter struct {
	Period    types.Period `form:"period"`    // Shorthand range: daily, weekly or monthly, anchored at today
	FromDate  time.Time    `form:"fromDate"`  // Start of an explicit range. Ignores exact time, matches on the day of the RFC3339 timestamp provided.
	UntilDate time.Time    `form:"untilDate"` // End of an explicit range. Ignores exact time, matches on the day of the RFC3339 timestamp provided.
}

// resolve turns the filter into a concrete range and the day count to
// average over. Without any parameter the current month is used.
func (f InsightQueryFilter) resolve(now time.Time) (types.Range, int, error) {
	explicit := !f.FromDate.IsZero() || !f.UntilDate.IsZero()

	if f.Period != "" {
		if !f.Period.Valid() {
			return types.Range{}, 0, types.ErrPeriodInvalid
		}

		if explicit {
			return types.Range{}, 0, errPeriodWithExplicitRange
		}

		return types.Resolve(f.Period, now), f.Period.ApproxDays(), nil
	}

	if explicit {
		if f.FromDate.IsZero() || f.UntilDate.IsZero() {
			return types.Range{}, 0, errRangeIncomplete
		}

		r := types.NewRange(
			time.Date(f.FromDate.Year(), f.FromDate.Month(), f.FromDate.Day(), 0, 0, 0, 0, time.UTC),
			time.Date(f.UntilDate.Year(), f.UntilDate.Month(), f.UntilDate.Day(), 23, 59, 59, 0, time.UTC),
		)
		return r, r.Days(), nil
	}

	return types.Resolve(types.PeriodMonthly, now), types.PeriodMonthly.ApproxDays(), nil
}

type SummaryResponse struct {
	Error *string            `json:"error" example:"the period must be one of daily, weekly, monthly"` // The error, if any occurred
	Data  *aggregate.Summary `json:"data"`                                                             // The dashboard summary
}

// @Summary		Get summary
// @Description	Returns the dashboard summary for a period or an explicit date range. Defaults to the current month.
// @Tags			Insights
// @Produce		json
// @Success		200	{object}	SummaryResponse
// @Failure		400	{object}	SummaryResponse
// @Failure		500	{object}	SummaryResponse
// @Router			/v1/insights/summary [get]
// @Param			period		query	string	false	"Shorthand range: daily, weekly or monthly, anchored at today"
// @Param			fromDate	query	string	false	"Start of an explicit range"
// @Param			untilDate	query	string	false	"End of an explicit range"
func GetSummary(c *gin.Context) {
	var filter InsightQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SummaryResponse{
			Error: &s,
		})
		return
	}

	r, days, err := filter.resolve(time.Now().In(time.UTC))
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SummaryResponse{
			Error: &e,
		})
		return
	}

	transactions, profile, budgets, err := insightData()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &e,
		})
		return
	}

	summary := aggregate.Summarize(transactions, profile, budgets, r, days)
	c.JSON(http.StatusOK, SummaryResponse{Data: &summary})
}

type BreakdownResponse struct {
	Error *string                   `json:"error" example:"the period must be one of daily, weekly, monthly"` // The error, if any occurred
	Data  []aggregate.CategoryGroup `json:"data"`                                                             // Spending grouped by category and name
}

// @Summary		Get breakdown
// @Description	Returns spending grouped by category and, within each category, by normalized name. Defaults to the current month.
// @Tags			Insights
// @Produce		json
// @Success		200	{object}	BreakdownResponse
// @Failure		400	{object}	BreakdownResponse
// @Failure		500	{object}	BreakdownResponse
// @Router			/v1/insights/breakdown [get]
// @Param			period		query	string	false	"Shorthand range: daily, weekly or monthly, anchored at today"
// @Param			fromDate	query	string	false	"Start of an explicit range"
// @Param			untilDate	query	string	false	"End of an explicit range"
func GetBreakdown(c *gin.Context) {
	var filter InsightQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BreakdownResponse{
			Error: &s,
		})
		return
	}

	r, _, err := filter.resolve(time.Now().In(time.UTC))
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BreakdownResponse{
			Error: &e,
		})
		return
	}

	transactions, err := models.AllTransactions()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BreakdownResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, BreakdownResponse{Data: aggregate.Breakdown(transactions, r)})
}

type TrendResponse struct {
	Error *string                `json:"error" example:"the period must be one of daily, weekly, monthly"` // The error, if any occurred
	Data  []aggregate.TrendPoint `json:"data"`                                                             // Totals for the trailing buckets, oldest first
}

type TrendQueryFilter struct {
	Period types.Period `form:"period"` // Bucket size: daily, weekly or monthly. Defaults to monthly.
}

// @Summary		Get trend
// @Description	Returns spending and saving totals for the trailing buckets of the period: the last 7 days, 4 weeks or 3 months.
// @Tags			Insights
// @Produce		json
// @Success		200	{object}	TrendResponse
// @Failure		400	{object}	TrendResponse
// @Failure		500	{object}	TrendResponse
// @Router			/v1/insights/trend [get]
// @Param			period	query	string	false	"Bucket size: daily, weekly or monthly. Defaults to monthly."
func GetTrend(c *gin.Context) {
	var filter TrendQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TrendResponse{
			Error: &s,
		})
		return
	}

	period := filter.Period
	if period == "" {
		period = types.PeriodMonthly
	}
	if !period.Valid() {
		s := types.ErrPeriodInvalid.Error()
		c.JSON(http.StatusBadRequest, TrendResponse{
			Error: &s,
		})
		return
	}

	transactions, err := models.AllTransactions()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TrendResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, TrendResponse{Data: aggregate.Trend(transactions, period, time.Now().In(time.UTC))})
}

type WrappedResponse struct {
	Error *string                `json:"error" example:"the year parameter must be a four digit year"` // The error, if any occurred
	Data  *aggregate.YearSummary `json:"data"`                                                         // The year in review
}

type WrappedQueryFilter struct {
	Year int `form:"year"` // The year to recap. Defaults to the current year.
}

// @Summary		Get year in review
// @Description	Returns the spending recap for a calendar year.
// @Tags			Insights
// @Produce		json
// @Success		200	{object}	WrappedResponse
// @Failure		400	{object}	WrappedResponse
// @Failure		500	{object}	WrappedResponse
// @Router			/v1/insights/wrapped [get]
// @Param			year	query	int	false	"The year to recap. Defaults to the current year."
func GetWrapped(c *gin.Context) {
	var filter WrappedQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, WrappedResponse{
			Error: &s,
		})
		return
	}

	year := filter.Year
	if year == 0 {
		year = time.Now().In(time.UTC).Year()
	}
	if year < 1000 || year > 9999 {
		s := errYearInvalid.Error()
		c.JSON(http.StatusBadRequest, WrappedResponse{
			Error: &s,
		})
		return
	}

	transactions, err := models.AllTransactions()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WrappedResponse{
			Error: &e,
		})
		return
	}

	summary := aggregate.Wrapped(transactions, year)
	c.JSON(http.StatusOK, WrappedResponse{Data: &summary})
}

// insightData loads everything the summary needs.
func insightData() ([]models.Transaction, models.Profile, []models.Budget, error) {
	transactions, err := models.AllTransactions()
	if err != nil {
		return nil, models.Profile{}, nil, err
	}

	profile, err := models.LoadProfile(models.DB)
	if err != nil {
		return nil, models.Profile{}, nil, err
	}

	budgets, err := models.AllBudgets()
	if err != nil {
		return nil, models.Profile{}, nil, err
	}

	return transactions, profile, budgets, nil
}
