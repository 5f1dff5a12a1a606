package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xpense-app/backend/internal/httputil"
	"github.com/xpense-app/backend/internal/models"
)

// RegisterReportRoutes registers the routes for monthly reports with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetReports)
}

type ReportListResponse struct {
	Error *string                `json:"error" example:"there is no monthly report matching your query"` // The error, if any occurred
	Data  []models.MonthlyReport `json:"data"`                                                           // List of monthly reports, oldest first
}

// @Summary		Get reports
// @Description	Returns the monthly reports written by confirmed reviews, oldest first
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	ReportListResponse
// @Failure		500	{object}	ReportListResponse
// @Router			/v1/reports [get]
func GetReports(c *gin.Context) {
	var reports []models.MonthlyReport
	err := models.DB.Order("month ASC").Find(&reports).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportListResponse{
			Error: &e,
		})
		return
	}

	if reports == nil {
		reports = []models.MonthlyReport{}
	}

	c.JSON(http.StatusOK, ReportListResponse{Data: reports})
}
