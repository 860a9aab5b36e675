package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Alert is the global spending threshold. A zero amount means inactive.
type Alert struct {
	amount decimal.Decimal
}

// Amount returns the current threshold.
func (a Alert) Amount() decimal.Decimal {
	return a.amount
}

// Active reports whether the threshold is above zero.
func (a Alert) Active() bool {
	return a.amount.IsPositive()
}

// Set replaces the threshold. Zero disables the alert.
func (a *Alert) Set(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w, got %s", ErrNegativeAmount, amount)
	}
	a.amount = amount
	return nil
}

// Edit has the same semantics as Set.
func (a *Alert) Edit(amount decimal.Decimal) error {
	return a.Set(amount)
}

// Remove disables the alert.
func (a *Alert) Remove() {
	a.amount = decimal.Zero
}

// Exceeded reports whether total is strictly above an active threshold.
func (a Alert) Exceeded(total decimal.Decimal) bool {
	return a.Active() && total.GreaterThan(a.amount)
}
