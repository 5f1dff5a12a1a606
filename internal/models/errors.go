package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrAmountNotPositive = errors.New("transaction amounts must be larger than zero")
	ErrCategoryInvalid   = errors.New("the transaction category is not a known category")
	ErrKindInvalid       = errors.New("the transaction kind must be one of expense, savings, investment")

	ErrBudgetNameRequired = errors.New("budget name and category must be set")
	ErrAllocationExceeded = errors.New("the budget allocation exceeds the monthly budget")

	ErrReportMonthNotUnique = errors.New("a report for this month already exists")
)
