package v1

import (
	"errors"
	"net/http"

	"github.com/xpense-app/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no transaction matching your query"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Insight errors
var (
	errPeriodWithExplicitRange = errors.New("the period parameter cannot be combined with from or until")
	errRangeIncomplete         = errors.New("the from and until parameters must both be set")
	errYearInvalid             = errors.New("the year parameter must be a four digit year")
)

// Review errors
var (
	errNoPendingReview = errors.New("there is no month waiting for review")
)

// Import errors
var (
	errImportBodyEmpty = errors.New("the import data must contain at least one of transactions, budgets or profile")
)
