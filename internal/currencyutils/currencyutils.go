// Package currencyutils provides the decimal helpers shared by the models,
// the parser and the renderers: parsing user amounts, bounds checks and the
// "$#,##0.00" display format.
package currencyutils

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MaxExponent bounds the decimal exponent ParseAmount accepts in either
// direction. Comparing values rescales by the exponent, so an unbounded one
// like "1e999999999" would stall every later comparison.
const MaxExponent = 20

// ErrExponentOutOfRange is returned for amounts written with an exponent
// beyond MaxExponent.
var ErrExponentOutOfRange = errors.New("amount exponent out of range")

var (
	printerOnce sync.Once
	printer     *message.Printer
)

func englishPrinter() *message.Printer {
	printerOnce.Do(func() {
		printer = message.NewPrinter(language.English)
	})
	return printer
}

// ParseAmount parses a user-typed amount such as "12.50", "$12.50" or "1e3".
// Thousands separators are not accepted.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	if exp := amount.Exponent(); exp > MaxExponent || exp < -MaxExponent {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, ErrExponentOutOfRange)
	}
	return amount, nil
}

// StandardizeAmount trims whitespace and a leading dollar sign.
func StandardizeAmount(amountStr string) string {
	s := strings.TrimSpace(amountStr)
	switch {
	case strings.HasPrefix(s, "-$"):
		s = "-" + s[2:]
	case strings.HasPrefix(s, "$"):
		s = s[1:]
	}
	return strings.TrimSpace(s)
}

// InRange reports whether min <= amount <= max.
func InRange(amount, min, max decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(min) && amount.LessThanOrEqual(max)
}

// FormatAmount renders amount as dollars with grouping and two decimals,
// e.g. "$1,234.50" or "-$3.00".
func FormatAmount(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	return sign + "$" + englishPrinter().Sprintf("%.2f", rounded.InexactFloat64())
}

// FormatPlain renders amount with two decimals and no symbol, for files.
func FormatPlain(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// NonNegative clamps amount at zero.
func NonNegative(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}
