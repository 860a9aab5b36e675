package ui

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"budgetbuddy/internal/budget"
	"budgetbuddy/internal/command"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer() (*Renderer, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewRenderer(buf, false), buf
}

func expense(t *testing.T, amount, desc string) *models.Expense {
	t.Helper()
	e, err := models.NewExpense(decimal.RequireFromString(amount), desc,
		time.Date(2025, time.March, 4, 12, 30, 0, 0, time.Local))
	require.NoError(t, err)
	return e
}

func TestRenderer_WelcomeAndGoodbye(t *testing.T) {
	r, buf := newTestRenderer()
	r.Welcome()
	assert.Contains(t, buf.String(), "Hello! I'm your Budget Buddy")
	assert.Contains(t, buf.String(), "What can I do for you?")
	assert.NotContains(t, buf.String(), "\x1b[", "colour codes must be disabled")

	buf.Reset()
	r.Render(command.Outcome{Result: command.ExitResult{}, Exit: true})
	assert.Contains(t, buf.String(), "Bye")
}

func TestRenderer_RecurringFallbackIsSilent(t *testing.T) {
	r, buf := newTestRenderer()
	r.Render(command.Outcome{Result: budget.RecurringResult{
		Added: []budget.AddResult{
			{Expense: expense(t, "5", "gym")},
			{Expense: expense(t, "5", "gym")},
		},
		TimeFallback: true,
	}})

	out := buf.String()
	assert.Contains(t, out, "Added 2 recurring expenses:")
	assert.Contains(t, out, "2. $5.00 spent on gym")
	assert.NotContains(t, out, "Warning")
}

func TestRenderer_AddResult(t *testing.T) {
	r, buf := newTestRenderer()
	r.Render(command.Outcome{Result: budget.AddResult{
		Expense:           expense(t, "12.5", "lunch"),
		CategoryMissing:   true,
		RequestedCategory: "Food",
		TimeFallback:      true,
		Notices: []budget.Notice{{
			Kind:      budget.NoticeAlertExceeded,
			Spent:     decimal.RequireFromString("120"),
			Threshold: decimal.RequireFromString("100"),
		}},
	}})

	out := buf.String()
	assert.Contains(t, out, "Budget category 'Food' not found. Added to Overall budget.")
	assert.Contains(t, out, "Warning: could not read the date/time")
	assert.Contains(t, out, "Expense added to Overall: $12.50 spent on lunch (Mar 04 2025 at 12:30)")
	assert.Contains(t, out, "ALERT: total spending $120.00 has exceeded your alert of $100.00!")
}

func TestRenderer_Notices(t *testing.T) {
	r, buf := newTestRenderer()
	r.Notices([]budget.Notice{
		{Kind: budget.NoticeLimitReached, Category: "Food", Threshold: decimal.NewFromInt(50)},
		{Kind: budget.NoticeLimitExceeded, Category: "Overall", Threshold: decimal.NewFromInt(50), Spent: decimal.NewFromInt(60)},
	})
	assert.Contains(t, buf.String(), "Note: you have reached your Food budget of $50.00.")
	assert.Contains(t, buf.String(), "Warning: you have exceeded your Overall budget of $50.00 (spent $60.00).")
}

func TestRenderer_StatusAndSummary(t *testing.T) {
	r, buf := newTestRenderer()
	r.Render(command.Outcome{Result: budget.BudgetStatus{
		Category:  "Food",
		Limit:     decimal.NewFromInt(100),
		Spent:     decimal.NewFromInt(130),
		Remaining: decimal.NewFromInt(-30),
		State:     models.LimitExceeded,
	}})
	assert.Contains(t, buf.String(), "Remaining budget: -$30.00")
	assert.Contains(t, buf.String(), "Over budget!")

	buf.Reset()
	r.Render(command.Outcome{Result: budget.SummaryResult{
		Budgets: []budget.BudgetStatus{
			{Category: "Overall", Spent: decimal.NewFromInt(5), ExpenseCount: 1},
			{Category: "Food", Limit: decimal.NewFromInt(1500), Spent: decimal.NewFromInt(5), Remaining: decimal.NewFromInt(1495), ExpenseCount: 1},
		},
		Missing: []string{"Travel"},
	}})
	out := buf.String()
	assert.Contains(t, out, "no limit")
	assert.Contains(t, out, "limit $1,500.00, remaining $1,495.00")
	assert.Contains(t, out, "Not found: Travel")
}

func TestRenderer_ListAndFind(t *testing.T) {
	r, buf := newTestRenderer()
	list := []budget.IndexedExpense{
		{Index: 1, Expense: expense(t, "3", "coffee"), Category: "Food"},
		{Index: 2, Expense: expense(t, "7.25", "bus")},
	}
	r.Render(command.Outcome{Result: command.ListResult{Expenses: list}, Warnings: []string{"start/ marker is empty. Showing full list."}})
	out := buf.String()
	assert.Contains(t, out, "Warning: start/ marker is empty. Showing full list.")
	assert.Contains(t, out, "1. $3.00 spent on coffee (Mar 04 2025 at 12:30) [Food]")
	assert.Contains(t, out, "2. $7.25 spent on bus")
	assert.Contains(t, out, "Total: $10.25")

	buf.Reset()
	r.Render(command.Outcome{Result: command.FindResult{Keyword: "tea"}})
	assert.Contains(t, buf.String(), "No expenses matching 'tea'.")
}

func TestRenderer_Alert(t *testing.T) {
	tests := []struct {
		name    string
		outcome command.AlertOutcome
		want    string
	}{
		{
			name:    "set",
			outcome: command.AlertOutcome{Action: command.AlertSet, AlertResult: budget.AlertResult{Amount: decimal.NewFromInt(200), Active: true}},
			want:    "Alert set to $200.00.",
		},
		{
			name:    "edited",
			outcome: command.AlertOutcome{Action: command.AlertEdited, AlertResult: budget.AlertResult{Previous: decimal.NewFromInt(200), Amount: decimal.NewFromInt(300), Active: true}},
			want:    "Alert updated from $200.00 to $300.00.",
		},
		{
			name:    "set to zero disables",
			outcome: command.AlertOutcome{Action: command.AlertSet},
			want:    "Alert disabled.",
		},
		{
			name:    "removed",
			outcome: command.AlertOutcome{Action: command.AlertRemoved},
			want:    "Alert removed.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newTestRenderer()
			r.Render(command.Outcome{Result: tt.outcome})
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestRenderer_Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "category not found",
			err:  fmt.Errorf("check-budget: %w", &budget.NotFoundError{Category: "Travel"}),
			want: "Budget category 'Travel' not found.",
		},
		{
			name: "validation",
			err:  &parsererror.MissingMarkersError{Command: "add", Markers: []string{"a/"}},
			want: "Invalid input: ",
		},
		{
			name: "other",
			err:  errors.New("boom"),
			want: "Error: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newTestRenderer()
			r.Error(tt.err)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestRenderer_Help(t *testing.T) {
	r, buf := newTestRenderer()
	r.Render(command.Outcome{Result: command.HelpResult{Usages: command.Usages()}})
	assert.Contains(t, buf.String(), "Available commands:")
	assert.Contains(t, buf.String(), "add ")
	assert.Contains(t, buf.String(), "bye")
}
