package parser

import (
	"strconv"
	"strings"

	"budgetbuddy/internal/currencyutils"
	"budgetbuddy/internal/parsererror"

	"github.com/shopspring/decimal"
)

// amount parses a money field and checks it against [0, max].
func (p *CommandParser) amount(command, field, text string, max decimal.Decimal) (decimal.Decimal, error) {
	value, err := currencyutils.ParseAmount(text)
	if err != nil {
		return decimal.Zero, &parsererror.ParseError{Command: command, Field: field, Value: text, Err: err}
	}
	if !currencyutils.InRange(value, decimal.Zero, max) {
		return decimal.Zero, &parsererror.RangeError{
			Command: command,
			Field:   field,
			Value:   text,
			Min:     "0",
			Max:     max.String(),
		}
	}
	return value, nil
}

// boundedInt parses a whole number and checks it against [min, max].
func (p *CommandParser) boundedInt(command, field, text string, min, max int) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, &parsererror.ParseError{Command: command, Field: field, Value: text, Err: err}
	}
	if value < min || value > max {
		return 0, &parsererror.RangeError{
			Command: command,
			Field:   field,
			Value:   text,
			Min:     strconv.Itoa(min),
			Max:     strconv.Itoa(max),
		}
	}
	return value, nil
}

// parseIndex parses a 1-based expense index. Range checking is left to the
// ledger, which knows its size.
func parseIndex(command, text string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, &parsererror.ParseError{Command: command, Field: "index", Value: text, Err: err}
	}
	return index, nil
}

func looksNumeric(s string) bool {
	_, err := currencyutils.ParseAmount(s)
	return err == nil
}
