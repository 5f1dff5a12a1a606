package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/xpense-app/backend/internal/types"
)

// TransactionsInRange returns all transactions whose date falls within
// the inclusive range, newest first.
func TransactionsInRange(r types.Range) ([]Transaction, error) {
	var transactions []Transaction

	err := DB.
		Where("date >= ?", r.Start.In(time.UTC)).
		Where("date <= ?", r.End.In(time.UTC)).
		Order("datetime(transactions.date) DESC, datetime(transactions.created_at) DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("getting transactions in range %v failed: %w", r, err)
	}

	return transactions, nil
}

// AllTransactions returns the full ledger, newest first.
func AllTransactions() ([]Transaction, error) {
	var transactions []Transaction

	err := DB.
		Order("datetime(transactions.date) DESC, datetime(transactions.created_at) DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// AllBudgets returns all budgets ordered by creation.
func AllBudgets() ([]Budget, error) {
	var budgets []Budget
	err := DB.Order("datetime(created_at) ASC").Find(&budgets).Error
	return budgets, err
}

// Export returns all transactions on this instance for export.
func (Transaction) Export() (json.RawMessage, error) {
	var transactions []Transaction
	err := DB.Unscoped().Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&transactions)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

// Export returns all budgets on this instance for export.
func (Budget) Export() (json.RawMessage, error) {
	var budgets []Budget
	err := DB.Unscoped().Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&budgets)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

// Export returns the profile for export.
func (Profile) Export() (json.RawMessage, error) {
	profile, err := LoadProfile(DB)
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&profile)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
