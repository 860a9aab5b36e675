package parser

import (
	"testing"

	"budgetbuddy/internal/logging"
	"budgetbuddy/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser() *CommandParser {
	return NewCommandParser(logging.NewMockLogger(), DefaultLimits())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseAdd(t *testing.T) {
	p := newTestParser()

	args, err := p.ParseAdd("12.50 c/Food d/Chicken rice t/Apr 01 2025 at 07:00")
	require.NoError(t, err)
	assert.True(t, dec("12.50").Equal(args.Amount))
	assert.Equal(t, "Food", args.Category)
	assert.Equal(t, "Chicken rice", args.Description)
	assert.Equal(t, "Apr 01 2025 at 07:00", args.DateTime)

	args, err = p.ParseAdd("3 c/ d/Coffee")
	require.NoError(t, err)
	assert.Equal(t, "", args.Category)
	assert.Equal(t, "", args.DateTime)
}

func TestParseAdd_Errors(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name   string
		args   string
		target any
	}{
		{"missing markers", "12", new(*parsererror.MissingMarkersError)},
		{"wrong order", "12 d/Lunch c/Food", new(*parsererror.MarkerOrderError)},
		{"missing amount", "c/Food d/Lunch", new(*parsererror.EmptyFieldsError)},
		{"non-numeric amount", "abc c/Food d/Lunch", new(*parsererror.ParseError)},
		{"amount above cap", "10000.01 c/Food d/Lunch", new(*parsererror.RangeError)},
		{"negative amount", "-1 c/Food d/Lunch", new(*parsererror.RangeError)},
		{"huge exponent", "1e999999999 c/ d/x", new(*parsererror.ParseError)},
		{"tiny exponent", "1e-999999999 c/ d/x", new(*parsererror.ParseError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseAdd(tt.args)
			require.Error(t, err)
			assert.ErrorAs(t, err, tt.target)
			assert.True(t, parsererror.IsValidation(err))
		})
	}
}

func TestParseAdd_BoundaryAmounts(t *testing.T) {
	p := newTestParser()

	_, err := p.ParseAdd("10000 c/Food d/Big")
	assert.NoError(t, err)
	_, err = p.ParseAdd("0 c/Food d/Free")
	assert.NoError(t, err, "zero passes the parser; the model rejects it")
}

func TestParseAddRecurring(t *testing.T) {
	p := newTestParser()

	args, err := p.ParseAddRecurring("25 c/Overall d/Gym t/Apr 01 2025 at 07:00 f/10 i/3")
	require.NoError(t, err)
	assert.True(t, dec("25").Equal(args.Amount))
	assert.Equal(t, "Gym", args.Description)
	assert.Equal(t, 10, args.FrequencyDays)
	assert.Equal(t, 3, args.Iterations)

	tests := []struct {
		name   string
		args   string
		target any
	}{
		{"too many iterations", "25 c/Overall d/Gym t/Apr 01 2025 at 07:00 f/10 i/12", new(*parsererror.RangeError)},
		{"frequency too large", "25 c/Overall d/Gym t/Apr 01 2025 at 07:00 f/2000 i/3", new(*parsererror.RangeError)},
		{"zero frequency", "25 c/Overall d/Gym t/Apr 01 2025 at 07:00 f/0 i/3", new(*parsererror.RangeError)},
		{"non-numeric iterations", "25 c/Overall d/Gym t/Apr 01 2025 at 07:00 f/10 i/many", new(*parsererror.ParseError)},
		{"blank start time", "25 c/Overall d/Gym t/ f/10 i/3", new(*parsererror.EmptyFieldsError)},
		{"missing frequency and iterations", "25 c/Overall d/Gym t/Apr 01 2025 at 07:00", new(*parsererror.MissingMarkersError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseAddRecurring(tt.args)
			assert.ErrorAs(t, err, tt.target)
		})
	}
}

func TestParseSetBudget(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		args     string
		category string
		amount   string
	}{
		{"1000", "", "1000"},
		{"c/Food 200", "Food", "200"},
		{"c/Eating Out 150.5", "Eating Out", "150.5"},
		{"300 c/Transport", "Transport", "300"},
		{"c/ 500", "", "500"},
	}

	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			args, err := p.ParseSetBudget(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.category, args.Category)
			assert.True(t, dec(tt.amount).Equal(args.Amount))
		})
	}
}

func TestParseSetBudget_Errors(t *testing.T) {
	p := newTestParser()

	_, err := p.ParseSetBudget("")
	assert.ErrorAs(t, err, new(*parsererror.EmptyFieldsError))

	_, err = p.ParseSetBudget("c/Food")
	assert.ErrorAs(t, err, new(*parsererror.EmptyFieldsError))

	_, err = p.ParseSetBudget("c/Food lots")
	assert.ErrorAs(t, err, new(*parsererror.ParseError))

	// Amount glued to the marker is a category with no amount.
	_, err = p.ParseSetBudget("c/100")
	assert.ErrorAs(t, err, new(*parsererror.EmptyFieldsError))

	_, err = p.ParseSetBudget("100001")
	assert.ErrorAs(t, err, new(*parsererror.RangeError))

	_, err = p.ParseSetBudget("100000")
	assert.NoError(t, err)
}

func TestParseCheckBudget(t *testing.T) {
	p := newTestParser()

	args, err := p.ParseCheckBudget("")
	require.NoError(t, err)
	assert.Equal(t, "", args.Category)

	args, err = p.ParseCheckBudget("c/Food")
	require.NoError(t, err)
	assert.Equal(t, "Food", args.Category)

	_, err = p.ParseCheckBudget("Food")
	assert.ErrorAs(t, err, new(*parsererror.ValidationError))
}

func TestParseEditBudget(t *testing.T) {
	p := newTestParser()

	args, err := p.ParseEditBudget("old/Food a/250 c/Groceries")
	require.NoError(t, err)
	assert.Equal(t, "Food", args.Current)
	assert.True(t, args.Amount.Valid)
	assert.True(t, dec("250").Equal(args.Amount.Decimal))
	assert.Equal(t, "Groceries", args.NewName)

	args, err = p.ParseEditBudget("old/Food c/Groceries")
	require.NoError(t, err)
	assert.False(t, args.Amount.Valid)

	_, err = p.ParseEditBudget("old/Food")
	assert.ErrorAs(t, err, new(*parsererror.ValidationError))

	_, err = p.ParseEditBudget("a/10 c/Food")
	assert.ErrorAs(t, err, new(*parsererror.MissingMarkersError))

	_, err = p.ParseEditBudget("old/Food c/Groceries a/10")
	assert.ErrorAs(t, err, new(*parsererror.MarkerOrderError))

	_, err = p.ParseEditBudget("old/Food a/")
	assert.ErrorAs(t, err, new(*parsererror.EmptyFieldsError))
}

func TestParseEditExpense(t *testing.T) {
	p := newTestParser()

	args, err := p.ParseEditExpense("2 a/15 d/Dinner t/Apr 02 2025 at 19:00")
	require.NoError(t, err)
	assert.Equal(t, 2, args.Index)
	assert.True(t, dec("15").Equal(args.Amount.Decimal))
	assert.Equal(t, "Dinner", args.Description)
	assert.Equal(t, "Apr 02 2025 at 19:00", args.DateTime)

	args, err = p.ParseEditExpense("1 d/Brunch")
	require.NoError(t, err)
	assert.False(t, args.Amount.Valid)

	tests := []struct {
		name   string
		args   string
		target any
	}{
		{"no fields", "1", new(*parsererror.ValidationError)},
		{"blank description", "1 d/", new(*parsererror.EmptyFieldsError)},
		{"bad index", "x a/5", new(*parsererror.ParseError)},
		{"missing index", "a/5", new(*parsererror.EmptyFieldsError)},
		{"amount out of range", "1 a/20000", new(*parsererror.RangeError)},
		{"out of order", "1 d/Lunch a/5", new(*parsererror.MarkerOrderError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseEditExpense(tt.args)
			assert.ErrorAs(t, err, tt.target)
		})
	}
}

func TestParseDeleteAndFind(t *testing.T) {
	p := newTestParser()

	del, err := p.ParseDelete("3")
	require.NoError(t, err)
	assert.Equal(t, 3, del.Index)

	_, err = p.ParseDelete("three")
	assert.ErrorAs(t, err, new(*parsererror.ParseError))

	_, err = p.ParseDelete("")
	assert.ErrorAs(t, err, new(*parsererror.EmptyFieldsError))

	find, err := p.ParseFind("  chicken rice ")
	require.NoError(t, err)
	assert.Equal(t, "chicken rice", find.Keyword)

	_, err = p.ParseFind("")
	assert.ErrorAs(t, err, new(*parsererror.EmptyFieldsError))
}

func TestParseList(t *testing.T) {
	p := newTestParser()

	args, err := p.ParseList("")
	require.NoError(t, err)
	assert.True(t, args.Range.IsZero())
	assert.Empty(t, args.Warnings)

	args, err = p.ParseList("start/Apr 01 2025 at 00:00 end/Apr 30 2025 at 23:59")
	require.NoError(t, err)
	assert.Equal(t, 1, args.Range.Start.Day())
	assert.Equal(t, 30, args.Range.End.Day())

	args, err = p.ParseList("start/ end/Apr 30 2025 at 23:59")
	require.NoError(t, err)
	assert.True(t, args.Range.IsZero(), "any warning widens to the full list")
	assert.Len(t, args.Warnings, 1)

	args, err = p.ParseList("start/yesterday")
	require.NoError(t, err)
	assert.True(t, args.Range.IsZero())
	assert.Contains(t, args.Warnings[0], "yesterday")

	_, err = p.ParseList("start/Apr 30 2025 at 00:00 end/Apr 01 2025 at 00:00")
	assert.ErrorAs(t, err, new(*parsererror.ValidationError))

	_, err = p.ParseList("end/Apr 30 2025 at 00:00 start/Apr 01 2025 at 00:00")
	assert.ErrorAs(t, err, new(*parsererror.MarkerOrderError))
}

func TestParseSummary(t *testing.T) {
	p := newTestParser()

	args, err := p.ParseSummary("")
	require.NoError(t, err)
	assert.Nil(t, args.Categories)

	args, err = p.ParseSummary("c/Food, Transport ,Food,")
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Transport"}, args.Categories)

	_, err = p.ParseSummary("c/")
	assert.ErrorAs(t, err, new(*parsererror.EmptyFieldsError))

	_, err = p.ParseSummary("c/ , ")
	assert.ErrorAs(t, err, new(*parsererror.EmptyFieldsError))
}

func TestParseAlert(t *testing.T) {
	p := newTestParser()

	args, err := p.ParseAlert(VerbAlert, "200")
	require.NoError(t, err)
	assert.True(t, dec("200").Equal(args.Amount))

	args, err = p.ParseAlert(VerbEditAlert, "0")
	require.NoError(t, err)
	assert.True(t, args.Amount.IsZero())

	_, err = p.ParseAlert(VerbAlert, "100000.5")
	var rangeErr *parsererror.RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "alert: amount must be between 0 and 100000, got 100000.5", err.Error())

	_, err = p.ParseAlert(VerbAlert, "")
	assert.ErrorAs(t, err, new(*parsererror.EmptyFieldsError))
}

func TestParseNoArgs(t *testing.T) {
	p := newTestParser()

	assert.NoError(t, p.ParseNoArgs(VerbDeleteAlert, ""))
	assert.ErrorAs(t, p.ParseNoArgs(VerbDeleteAlert, "now"), new(*parsererror.ValidationError))
}

func TestCustomLimits(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxExpenseAmount = dec("50")
	limits.MaxIterations = 2
	p := NewCommandParser(nil, limits)

	_, err := p.ParseAdd("60 c/Food d/x")
	assert.ErrorAs(t, err, new(*parsererror.RangeError))

	_, err = p.ParseAddRecurring("5 c/Food d/x t/Apr 01 2025 at 07:00 f/1 i/3")
	assert.ErrorAs(t, err, new(*parsererror.RangeError))
	assert.Equal(t, 2, p.Limits().MaxIterations)
}
