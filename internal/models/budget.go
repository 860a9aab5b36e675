package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Budget is a named expense ledger with an optional spending limit.
// Expenses are kept in insertion order; user-facing indices count from the
// most recent one.
type Budget struct {
	Category string
	limit    decimal.Decimal
	expenses []*Expense
}

// NewBudget creates an empty ledger. A negative limit is rejected.
func NewBudget(category string, limit decimal.Decimal) (*Budget, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrEmptyCategory
	}
	b := &Budget{Category: category}
	if err := b.SetLimit(limit); err != nil {
		return nil, err
	}
	return b, nil
}

// Limit returns the spending limit; zero means unset.
func (b *Budget) Limit() decimal.Decimal {
	return b.limit
}

// SetLimit replaces the spending limit.
func (b *Budget) SetLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return fmt.Errorf("%w, got %s", ErrNegativeAmount, limit)
	}
	b.limit = limit
	return nil
}

// Rename changes the category name.
func (b *Budget) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyCategory
	}
	b.Category = name
	return nil
}

// AddExpense appends e.
func (b *Budget) AddExpense(e *Expense) {
	b.expenses = append(b.expenses, e)
}

// Expenses returns the ledger in insertion order.
func (b *Budget) Expenses() []*Expense {
	out := make([]*Expense, len(b.expenses))
	copy(out, b.expenses)
	return out
}

// Len returns the number of expenses.
func (b *Budget) Len() int {
	return len(b.expenses)
}

// TotalExpenses sums the ledger.
func (b *Budget) TotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, e := range b.expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// RemainingBudget is limit minus total, or zero when no limit is set.
// The result is negative once the limit is exceeded.
func (b *Budget) RemainingBudget() decimal.Decimal {
	if !b.limit.IsPositive() {
		return decimal.Zero
	}
	return b.limit.Sub(b.TotalExpenses())
}

// CheckLimit compares the total with the limit.
func (b *Budget) CheckLimit() LimitState {
	if !b.limit.IsPositive() {
		return LimitUnset
	}
	switch b.TotalExpenses().Cmp(b.limit) {
	case 1:
		return LimitExceeded
	case 0:
		return LimitReached
	default:
		return LimitUnder
	}
}

// position maps a 1-based most-recent-first index to a slice position.
func (b *Budget) position(index int) (int, error) {
	if index < 1 || index > len(b.expenses) {
		return 0, &IndexError{Index: index, Size: len(b.expenses)}
	}
	return len(b.expenses) - index, nil
}

// ExpenseAt returns the expense at the 1-based index, 1 being the most recent.
func (b *Budget) ExpenseAt(index int) (*Expense, error) {
	pos, err := b.position(index)
	if err != nil {
		return nil, err
	}
	return b.expenses[pos], nil
}

// DeleteExpense removes and returns the expense at the 1-based index.
func (b *Budget) DeleteExpense(index int) (*Expense, error) {
	pos, err := b.position(index)
	if err != nil {
		return nil, err
	}
	removed := b.expenses[pos]
	b.expenses = append(b.expenses[:pos], b.expenses[pos+1:]...)
	return removed, nil
}

// IndexOf returns the 1-based most-recent-first index of the expense with
// the given ID, or 0.
func (b *Budget) IndexOf(id string) int {
	for pos, e := range b.expenses {
		if e.ID == id {
			return len(b.expenses) - pos
		}
	}
	return 0
}

// Contains reports whether an expense with the ID is in the ledger.
func (b *Budget) Contains(id string) bool {
	return b.IndexOf(id) > 0
}

// RemoveExpenseByID removes the expense with the ID and reports whether it was present.
func (b *Budget) RemoveExpenseByID(id string) bool {
	for pos, e := range b.expenses {
		if e.ID == id {
			b.expenses = append(b.expenses[:pos], b.expenses[pos+1:]...)
			return true
		}
	}
	return false
}
