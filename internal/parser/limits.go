package parser

import "github.com/shopspring/decimal"

// Limits bounds the numeric fields accepted from users.
type Limits struct {
	MaxExpenseAmount decimal.Decimal
	MaxBudgetAmount  decimal.Decimal
	MaxAlertAmount   decimal.Decimal
	MaxFrequencyDays int
	MaxIterations    int
}

// DefaultLimits returns the built-in bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxExpenseAmount: decimal.NewFromInt(10000),
		MaxBudgetAmount:  decimal.NewFromInt(100000),
		MaxAlertAmount:   decimal.NewFromInt(100000),
		MaxFrequencyDays: 1000,
		MaxIterations:    10,
	}
}
