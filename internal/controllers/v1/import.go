package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/xpense-app/backend/internal/httputil"
	"github.com/xpense-app/backend/internal/models"
	"github.com/xpense-app/backend/internal/sync"
)

// RegisterImportRoutes registers the routes for imports with
// the RouterGroup that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", CreateImport)
}

// ImportData is the request body, the counterpart of an export.
type ImportData struct {
	Transactions []ImportTransaction `json:"transactions"` // Transactions to restore
	Budgets      []ImportBudget      `json:"budgets"`      // Budgets to restore
	Settings     *SettingsEditable   `json:"settings"`     // Settings to restore. Overwrites the stored settings.
}

// ImportTransaction is a transaction of an earlier export. When the id
// is set the restored transaction keeps it, so a backup round trips
// with identical ids.
type ImportTransaction struct {
	ID uuid.UUID `json:"id" example:"d430d7c3-d14c-4712-9336-ee56965a6673"` // ID of the original transaction. Optional.
	TransactionEditable
}

// ImportBudget is a budget of an earlier export.
type ImportBudget struct {
	ID uuid.UUID `json:"id" example:"b9d3b4cc-7bbc-4d82-97b7-3378e2e4e0a4"` // ID of the original budget. Optional.
	BudgetEditable
}

type ImportResult struct {
	Preview    bool     `json:"preview" example:"false"` // True when nothing was written
	Duplicates []string `json:"duplicates"`              // Names of incoming transactions that already exist in the ledger

	TransactionsCreated int  `json:"transactionsCreated" example:"312"`
	BudgetsCreated      int  `json:"budgetsCreated" example:"4"`
	SettingsApplied     bool `json:"settingsApplied" example:"true"`
}

type ImportResponse struct {
	Error *string       `json:"error" example:"the import data must contain at least one of transactions, budgets or profile"` // The error, if any occurred
	Data  *ImportResult `json:"data"`                                                                                          // The import result
}

type ImportQueryFilter struct {
	Preview string `form:"preview"` // Glob pattern for a dry run: duplicates among the matching names are reported, nothing is written. Use * for all.
}

// @Summary		Import
// @Description	Restores transactions, budgets and settings from an export. With the preview parameter set nothing is written, instead incoming transactions whose name already exists in the ledger are reported.
// @Tags			Import
// @Accept			json
// @Produce		json
// @Success		201	{object}	ImportResponse
// @Success		200	{object}	ImportResponse
// @Failure		400	{object}	ImportResponse
// @Failure		500	{object}	ImportResponse
// @Param			preview	query	string		false	"Glob pattern for a dry run. Only duplicates among the matching names are reported, nothing is written."
// @Param			data	body	ImportData	true	"The data to import"
// @Router			/v1/import [post]
func CreateImport(c *gin.Context) {
	var filter ImportQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &s,
		})
		return
	}

	var data ImportData
	err := httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &e,
		})
		return
	}

	if len(data.Transactions) == 0 && len(data.Budgets) == 0 && data.Settings == nil {
		e := errImportBodyEmpty.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &e,
		})
		return
	}

	if filter.Preview != "" {
		duplicates, err := previewDuplicates(data.Transactions, filter.Preview)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), ImportResponse{
				Error: &e,
			})
			return
		}

		c.JSON(http.StatusOK, ImportResponse{Data: &ImportResult{
			Preview:    true,
			Duplicates: duplicates,
		}})
		return
	}

	result := ImportResult{Duplicates: []string{}}

	for _, incoming := range data.Transactions {
		transaction := incoming.model()
		transaction.ID = incoming.ID
		if err := models.DB.Create(&transaction).Error; err != nil {
			e := err.Error()
			c.JSON(status(err), ImportResponse{
				Error: &e,
			})
			return
		}

		result.TransactionsCreated++
		replicateUpsert(sync.CollectionExpenses, transaction.ID.String(), transaction)
	}

	for _, incoming := range data.Budgets {
		budget := incoming.model()
		budget.ID = incoming.ID
		if err := models.DB.Create(&budget).Error; err != nil {
			e := err.Error()
			c.JSON(status(err), ImportResponse{
				Error: &e,
			})
			return
		}

		result.BudgetsCreated++
		replicateUpsert(sync.CollectionBudgets, budget.ID.String(), budget)
	}

	if data.Settings != nil {
		profile, err := models.LoadProfile(models.DB)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), ImportResponse{
				Error: &e,
			})
			return
		}

		err = models.DB.Model(&profile).Select("*").Omit("id", "created_at", "last_review_at").Updates(data.Settings.model()).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), ImportResponse{
				Error: &e,
			})
			return
		}

		profile, err = models.LoadProfile(models.DB)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), ImportResponse{
				Error: &e,
			})
			return
		}

		result.SettingsApplied = true
		replicateUpsert(sync.CollectionSettings, sync.SettingsDocID, profile)
	}

	c.JSON(http.StatusCreated, ImportResponse{Data: &result})
}

// previewDuplicates reports the names of incoming transactions that
// already exist in the ledger. Both sides are compared case
// insensitively and only names matching the glob pattern are
// considered.
func previewDuplicates(incoming []ImportTransaction, pattern string) ([]string, error) {
	existing, err := models.AllTransactions()
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool, len(existing))
	for _, transaction := range existing {
		names[strings.ToLower(transaction.Name)] = true
	}

	duplicates := []string{}
	seen := make(map[string]bool)
	for _, editable := range incoming {
		name := models.NormalizeName(editable.Name)
		lower := strings.ToLower(name)

		if !glob.Glob(strings.ToLower(pattern), lower) {
			continue
		}

		if names[lower] && !seen[lower] {
			duplicates = append(duplicates, name)
			seen[lower] = true
		}
	}

	return duplicates, nil
}
