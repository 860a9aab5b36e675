package models

import (
	"fmt"
	"strings"
	"time"

	"budgetbuddy/internal/currencyutils"
	"budgetbuddy/internal/dateutils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a single spending record. The same *Expense is shared by the
// Overall ledger and, when applicable, one category ledger.
type Expense struct {
	ID          string
	Amount      decimal.Decimal
	Description string
	Timestamp   time.Time
}

// ExpenseEdit lists the fields to change. Unset fields are left alone.
type ExpenseEdit struct {
	Amount      decimal.NullDecimal
	Description string
	Timestamp   *time.Time
}

// IsEmpty reports whether the edit would change nothing.
func (e ExpenseEdit) IsEmpty() bool {
	return !e.Amount.Valid && strings.TrimSpace(e.Description) == "" && e.Timestamp == nil
}

// NewExpense creates an expense with a fresh ID.
func NewExpense(amount decimal.Decimal, description string, timestamp time.Time) (*Expense, error) {
	return NewExpenseWithID(uuid.NewString(), amount, description, timestamp)
}

// NewExpenseWithID creates an expense with a caller-supplied ID, used when
// restoring persisted data.
func NewExpenseWithID(id string, amount decimal.Decimal, description string, timestamp time.Time) (*Expense, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w, got %s", ErrNonPositiveAmount, amount)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	if id == "" {
		id = uuid.NewString()
	}
	return &Expense{
		ID:          id,
		Amount:      amount,
		Description: description,
		Timestamp:   timestamp,
	}, nil
}

// Edit applies the supplied fields. Nothing changes if any field is invalid.
func (e *Expense) Edit(edit ExpenseEdit) error {
	if edit.Amount.Valid && !edit.Amount.Decimal.IsPositive() {
		return fmt.Errorf("%w, got %s", ErrNonPositiveAmount, edit.Amount.Decimal)
	}

	if edit.Amount.Valid {
		e.Amount = edit.Amount.Decimal
	}
	if desc := strings.TrimSpace(edit.Description); desc != "" {
		e.Description = desc
	}
	if edit.Timestamp != nil {
		e.Timestamp = *edit.Timestamp
	}
	return nil
}

// FormattedAmount returns the amount as "$1,234.50".
func (e *Expense) FormattedAmount() string {
	return currencyutils.FormatAmount(e.Amount)
}

// FormattedTimestamp returns the timestamp as "Apr 01 2025 at 07:00".
func (e *Expense) FormattedTimestamp() string {
	return dateutils.FormatDateTime(e.Timestamp)
}

func (e *Expense) String() string {
	return fmt.Sprintf("%s spent on %s (%s)", e.FormattedAmount(), e.Description, e.FormattedTimestamp())
}

// SameContent reports whether two expenses carry the same amount,
// description and minute-precision timestamp.
func (e *Expense) SameContent(other *Expense) bool {
	if other == nil {
		return false
	}
	return e.Amount.Equal(other.Amount) &&
		e.Description == other.Description &&
		e.Timestamp.Truncate(time.Minute).Equal(other.Timestamp.Truncate(time.Minute))
}
