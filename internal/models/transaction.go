package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// Kind classifies a transaction as an expense, a savings deposit or an
// investment contribution.
//
// swagger:enum Kind
type Kind string

const (
	KindExpense    Kind = "expense"
	KindSavings    Kind = "savings"
	KindInvestment Kind = "investment"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindExpense || k == KindSavings || k == KindInvestment
}

// Transaction is a single entry of the ledger. Transactions are
// immutable once created and can only be deleted.
type Transaction struct {
	DefaultModel
	Name     string          `json:"name" example:"Coffee"`
	Amount   decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"14.03"`
	Category Category        `json:"category" example:"Food"`
	Date     time.Time       `json:"date" example:"2022-04-02T00:00:00Z"` // Date of the transaction, date precision is what matters for filtering
	Note     string          `json:"note,omitempty" example:"Flat white at the corner shop"`

	// Kind may be empty on rows imported from older app versions.
	// Use Classification instead of reading it directly.
	Kind        Kind `json:"kind" example:"expense"`
	FromSavings bool `json:"fromSavings" example:"false"` // Legacy flag: the row was paid out of savings
}

// Classification resolves the effective kind of the transaction.
//
// This is the only place the legacy fallback lives: records without a
// kind are expenses unless they are flagged as paid from savings.
func (t Transaction) Classification() Kind {
	if t.Kind.Valid() {
		return t.Kind
	}

	if t.FromSavings {
		return KindSavings
	}

	return KindExpense
}

// NormalizeName trims and title-cases a transaction name, so "coffee"
// and "Coffee " collapse into the same display name.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	return cases.Title(language.English).String(strings.ToLower(name))
}

// BeforeSave normalizes and validates the transaction.
//
// Investment transactions are forced into the Investment category, and
// a blank name falls back to a kind-specific default or the category.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if t.Kind != "" && !t.Kind.Valid() {
		return ErrKindInvalid
	}

	if t.Kind == KindInvestment {
		t.Category = CategoryInvestment
	}

	if !t.Category.Valid() {
		return ErrCategoryInvalid
	}

	t.Name = NormalizeName(t.Name)
	if t.Name == "" {
		switch t.Kind {
		case KindInvestment:
			t.Name = "Investment"
		case KindSavings:
			t.Name = "Savings Deposit"
		default:
			t.Name = string(t.Category)
		}
	}

	t.Note = strings.TrimSpace(t.Note)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

// AfterFind sets the timezone for the date to UTC, see DefaultModel.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	_ = t.DefaultModel.AfterFind(tx)
	t.Date = t.Date.In(time.UTC)
	return nil
}
