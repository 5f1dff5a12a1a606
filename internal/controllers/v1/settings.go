package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xpense-app/backend/internal/httputil"
	"github.com/xpense-app/backend/internal/models"
	"github.com/xpense-app/backend/internal/notify"
	"github.com/xpense-app/backend/internal/sync"
)

// RegisterSettingsRoutes registers the routes for the settings with
// the RouterGroup that is passed.
func RegisterSettingsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSettings)
	r.GET("", GetSettings)
	r.PATCH("", UpdateSettings)
}

type SettingsEditable struct {
	Income         decimal.Decimal `json:"income" example:"50000"`
	MonthlyBudget  decimal.Decimal `json:"monthlyBudget" example:"20000"`     // Operating allocation per month
	InvestmentGoal decimal.Decimal `json:"investmentGoal" example:"5000"`     // Planned investment per month
	SavingsGoal    decimal.Decimal `json:"savingsGoal" example:"100000"`      // Savings target
	Savings        decimal.Decimal `json:"cumulativeSavings" example:"40000"` // Banked from prior month reviews

	Currency    models.Currency `json:"currency" example:"INR"`
	Theme       string          `json:"theme" example:"dark" default:"system"`
	NotifyDaily bool            `json:"notifyDaily" example:"true" default:"false"` // Daily expense reminder enabled
}

// model returns the database resource for the API representation of the editable fields
func (editable SettingsEditable) model() models.Profile {
	return models.Profile{
		Income:         editable.Income,
		MonthlyBudget:  editable.MonthlyBudget,
		InvestmentGoal: editable.InvestmentGoal,
		SavingsGoal:    editable.SavingsGoal,
		Savings:        editable.Savings,
		Currency:       editable.Currency,
		Theme:          editable.Theme,
		NotifyDaily:    editable.NotifyDaily,
	}
}

type SettingsLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/settings"` // The settings themselves
}

// Settings is the representation of the profile in API v1.
type Settings struct {
	models.DefaultModel
	SettingsEditable

	CurrencySymbol string     `json:"currencySymbol" example:"₹"`                  // Display symbol for the configured currency
	LastReviewAt   *time.Time `json:"lastReviewAt" example:"2022-04-01T09:12:00Z"` // Last month boundary processed by the monthly review

	Links SettingsLinks `json:"links"`
}

// newSettings returns the API v1 representation of the profile
func newSettings(c *gin.Context, model models.Profile) Settings {
	return Settings{
		DefaultModel: model.DefaultModel,
		SettingsEditable: SettingsEditable{
			Income:         model.Income,
			MonthlyBudget:  model.MonthlyBudget,
			InvestmentGoal: model.InvestmentGoal,
			SavingsGoal:    model.SavingsGoal,
			Savings:        model.Savings,
			Currency:       model.Currency,
			Theme:          model.Theme,
			NotifyDaily:    model.NotifyDaily,
		},
		CurrencySymbol: model.Currency.Symbol(),
		LastReviewAt:   model.LastReviewAt,
		Links: SettingsLinks{
			Self: httputil.RequestPathV1(c) + "/settings",
		},
	}
}

type SettingsResponse struct {
	Error *string   `json:"error" example:"the body of your request contains invalid or un-parseable data. Please check and try again"` // The error, if any occurred
	Data  *Settings `json:"data"`                                                                                                      // The settings data
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Settings
// @Success		204
// @Router			/v1/settings [options]
func OptionsSettings(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Get settings
// @Description	Returns the settings. They are created with defaults on first use.
// @Tags			Settings
// @Produce		json
// @Success		200	{object}	SettingsResponse
// @Failure		500	{object}	SettingsResponse
// @Router			/v1/settings [get]
func GetSettings(c *gin.Context) {
	profile, err := models.LoadProfile(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &e,
		})
		return
	}

	data := newSettings(c, profile)
	c.JSON(http.StatusOK, SettingsResponse{Data: &data})
}

// @Summary		Update settings
// @Description	Updates the settings. Only values to be updated need to be specified, they overwrite the stored values unconditionally.
// @Tags			Settings
// @Accept			json
// @Produce		json
// @Success		200	{object}	SettingsResponse
// @Failure		400	{object}	SettingsResponse
// @Failure		500	{object}	SettingsResponse
// @Param			settings	body		SettingsEditable	true	"Settings"
// @Router			/v1/settings [patch]
func UpdateSettings(c *gin.Context) {
	profile, err := models.LoadProfile(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SettingsEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &e,
		})
		return
	}

	var update SettingsEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&profile).Select("", updateFields...).Updates(update.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &e,
		})
		return
	}

	// Reload so that fields not contained in the update are accurate
	profile, err = models.LoadProfile(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &e,
		})
		return
	}

	applyNotifyDaily(profile)

	data := newSettings(c, profile)
	c.JSON(http.StatusOK, SettingsResponse{Data: &data})
	replicateUpsert(sync.CollectionSettings, sync.SettingsDocID, profile)
}

// applyNotifyDaily brings the reminder scheduler in line with the
// setting.
func applyNotifyDaily(profile models.Profile) {
	if scheduler == nil {
		return
	}

	if profile.NotifyDaily {
		_ = scheduler.ScheduleDaily(notify.DefaultHour, notify.DefaultMinute)
	} else {
		scheduler.Cancel()
	}
}
