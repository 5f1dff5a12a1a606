package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xpense-app/backend/internal/httputil"
	"github.com/xpense-app/backend/internal/models"
	"github.com/xpense-app/backend/internal/review"
	"github.com/xpense-app/backend/internal/sync"
)

// RegisterReviewRoutes registers the routes for the monthly review with
// the RouterGroup that is passed.
func RegisterReviewRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetReview)

	r.OPTIONS("/confirm", httputil.OptionsPost)
	r.POST("/confirm", ConfirmReview)

	r.OPTIONS("/dismiss", httputil.OptionsPost)
	r.POST("/dismiss", DismissReview)
}

type ReviewData struct {
	State   review.State   `json:"state" example:"pending"` // initialized, pending or idle
	Pending *review.Review `json:"pending"`                 // The month awaiting a decision, set when state is pending
}

type ReviewResponse struct {
	Error *string     `json:"error" example:"there is no month waiting for review"` // The error, if any occurred
	Data  *ReviewData `json:"data"`                                                 // The review state
}

type ReviewConfirmData struct {
	Report *models.MonthlyReport `json:"report"` // The report written by the confirmation, null when nothing was banked
}

type ReviewConfirmResponse struct {
	Error *string            `json:"error" example:"there is no month waiting for review"` // The error, if any occurred
	Data  *ReviewConfirmData `json:"data"`                                                 // The confirmation result
}

// check loads everything the review needs and runs it.
func check(now time.Time) (models.Profile, review.State, *review.Review, error) {
	profile, err := models.LoadProfile(models.DB)
	if err != nil {
		return models.Profile{}, "", nil, err
	}

	transactions, err := models.AllTransactions()
	if err != nil {
		return models.Profile{}, "", nil, err
	}

	budgets, err := models.AllBudgets()
	if err != nil {
		return models.Profile{}, "", nil, err
	}

	state, pending := review.Check(profile, transactions, budgets, now)
	return profile, state, pending, nil
}

// @Summary		Get review state
// @Description	Returns the state of the monthly review. On the very first call the review clock is started and no month is reviewed.
// @Tags			Review
// @Produce		json
// @Success		200	{object}	ReviewResponse
// @Failure		500	{object}	ReviewResponse
// @Router			/v1/review [get]
func GetReview(c *gin.Context) {
	now := time.Now().In(time.UTC)

	profile, state, pending, err := check(now)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReviewResponse{
			Error: &e,
		})
		return
	}

	if state == review.StateInitialized {
		if err := review.Initialize(models.DB, &profile, now); err != nil {
			e := err.Error()
			c.JSON(status(err), ReviewResponse{
				Error: &e,
			})
			return
		}
	}

	c.JSON(http.StatusOK, ReviewResponse{Data: &ReviewData{State: state, Pending: pending}})
}

// @Summary		Confirm review
// @Description	Banks the pending month: its leftover is added to the cumulative savings and a monthly report is written. Without a pending month this returns 400.
// @Tags			Review
// @Produce		json
// @Success		200	{object}	ReviewConfirmResponse
// @Failure		400	{object}	ReviewConfirmResponse
// @Failure		500	{object}	ReviewConfirmResponse
// @Router			/v1/review/confirm [post]
func ConfirmReview(c *gin.Context) {
	now := time.Now().In(time.UTC)

	profile, state, pending, err := check(now)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReviewConfirmResponse{
			Error: &e,
		})
		return
	}

	if state != review.StatePending {
		e := errNoPendingReview.Error()
		c.JSON(http.StatusBadRequest, ReviewConfirmResponse{
			Error: &e,
		})
		return
	}

	report, err := review.Confirm(models.DB, &profile, *pending, now)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReviewConfirmResponse{
			Error: &e,
		})
		return
	}

	replicateUpsert(sync.CollectionSettings, sync.SettingsDocID, profile)
	c.JSON(http.StatusOK, ReviewConfirmResponse{Data: &ReviewConfirmData{Report: report}})
}

// @Summary		Dismiss review
// @Description	Skips the pending month. Nothing is banked, the month is not offered again. Without a pending month this returns 400.
// @Tags			Review
// @Produce		json
// @Success		200	{object}	ReviewResponse
// @Failure		400	{object}	ReviewResponse
// @Failure		500	{object}	ReviewResponse
// @Router			/v1/review/dismiss [post]
func DismissReview(c *gin.Context) {
	now := time.Now().In(time.UTC)

	profile, state, _, err := check(now)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReviewResponse{
			Error: &e,
		})
		return
	}

	if state != review.StatePending {
		e := errNoPendingReview.Error()
		c.JSON(http.StatusBadRequest, ReviewResponse{
			Error: &e,
		})
		return
	}

	if err := review.Dismiss(models.DB, &profile, now); err != nil {
		e := err.Error()
		c.JSON(status(err), ReviewResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, ReviewResponse{Data: &ReviewData{State: review.StateIdle}})
}
