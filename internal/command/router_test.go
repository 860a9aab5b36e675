package command

import (
	"testing"
	"time"

	"budgetbuddy/internal/budget"
	"budgetbuddy/internal/logging"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/parser"
	"budgetbuddy/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() (*Router, *budget.Manager) {
	logger := logging.NewMockLogger()
	p := parser.NewCommandParser(logger, parser.DefaultLimits())
	m := budget.NewManager(logger, budget.WithClock(func() time.Time {
		return time.Date(2025, time.May, 1, 9, 0, 0, 0, time.Local)
	}))
	return NewRouter(p, logger), m
}

func run(t *testing.T, r *Router, m *budget.Manager, line string) Outcome {
	t.Helper()
	out, err := r.Run(m, line)
	require.NoError(t, err, line)
	return out
}

func TestRouter_UnknownAndEmpty(t *testing.T) {
	r, m := newTestRouter()

	_, err := r.Run(m, "dance")
	var unknown *parsererror.UnknownCommandError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "dance", unknown.Verb)

	_, err = r.Run(m, "   ")
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "", unknown.Verb)
}

func TestRouter_VerbsAreCaseInsensitive(t *testing.T) {
	r, m := newTestRouter()

	out := run(t, r, m, "ADD 5 c/ d/Coffee")
	assert.Equal(t, parser.VerbAdd, out.Command)
	assert.Equal(t, 1, m.Overall().Len())
}

func TestRouter_EndToEnd(t *testing.T) {
	r, m := newTestRouter()

	run(t, r, m, "set-budget c/Food 100")
	run(t, r, m, "set-budget 1000")

	out := run(t, r, m, "add 12.50 c/Food d/Chicken rice t/Apr 01 2025 at 07:00")
	added, ok := out.Result.(budget.AddResult)
	require.True(t, ok)
	assert.Equal(t, "Food", added.Category)

	out = run(t, r, m, "check-budget c/Food")
	status, ok := out.Result.(budget.BudgetStatus)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("87.5").Equal(status.Remaining))

	out = run(t, r, m, "find rice")
	found := out.Result.(FindResult)
	require.Len(t, found.Matches, 1)

	out = run(t, r, m, "edit-expense 1 a/20")
	edited := out.Result.(budget.EditResult)
	assert.True(t, decimal.NewFromInt(20).Equal(edited.Expense.Amount))

	out = run(t, r, m, "edit-budget old/Food c/Groceries")
	assert.True(t, out.Result.(budget.EditBudgetResult).Renamed)

	out = run(t, r, m, "summary c/Groceries")
	summary := out.Result.(budget.SummaryResult)
	require.Len(t, summary.Budgets, 1)
	assert.Equal(t, "Groceries", summary.Budgets[0].Category)

	out = run(t, r, m, "delete 1")
	assert.Equal(t, []string{"Groceries"}, out.Result.(budget.DeleteResult).RemovedFrom)
	assert.Equal(t, 0, m.Overall().Len())
}

func TestRouter_AddRecurring(t *testing.T) {
	r, m := newTestRouter()

	out := run(t, r, m, "add-recurring 25 c/Overall d/Gym t/Apr 01 2025 at 07:00 f/10 i/3")
	assert.Len(t, out.Result.(budget.RecurringResult).Added, 3)
	assert.Equal(t, 3, m.Overall().Len())

	_, err := r.Run(m, "add-recurring 25 c/Overall d/Gym t/Apr 01 2025 at 07:00 f/10 i/12")
	assert.Error(t, err)
	_, err = r.Run(m, "add-recurring 25 c/Overall d/Gym t/Apr 01 2025 at 07:00 f/2000 i/3")
	assert.Error(t, err)
	assert.Equal(t, 3, m.Overall().Len())
}

func TestRouter_ListCarriesWarnings(t *testing.T) {
	r, m := newTestRouter()
	run(t, r, m, "add 5 c/ d/Coffee t/Apr 01 2025 at 07:00")

	out := run(t, r, m, "list start/")
	require.Len(t, out.Warnings, 1)
	assert.Len(t, out.Result.(ListResult).Expenses, 1)

	out = run(t, r, m, "list start/May 01 2025 at 00:00")
	assert.Empty(t, out.Warnings)
	assert.Empty(t, out.Result.(ListResult).Expenses)
}

func TestRouter_AlertCommands(t *testing.T) {
	r, m := newTestRouter()

	out := run(t, r, m, "alert 200")
	assert.Equal(t, AlertSet, out.Result.(AlertOutcome).Action)

	out = run(t, r, m, "edit-alert 300")
	res := out.Result.(AlertOutcome)
	assert.Equal(t, AlertEdited, res.Action)
	assert.True(t, decimal.NewFromInt(200).Equal(res.Previous))

	out = run(t, r, m, "delete-alert")
	assert.Equal(t, AlertRemoved, out.Result.(AlertOutcome).Action)
	assert.False(t, m.Alert().Active())

	_, err := r.Run(m, "delete-alert please")
	assert.True(t, parsererror.IsValidation(err))
}

func TestRouter_DomainErrorsAreWrapped(t *testing.T) {
	r, m := newTestRouter()

	_, err := r.Run(m, "check-budget c/Travel")
	assert.ErrorIs(t, err, budget.ErrCategoryNotFound)
	assert.Contains(t, err.Error(), "check-budget")

	_, err = r.Run(m, "add 0 c/ d/Nothing")
	assert.ErrorIs(t, err, models.ErrNonPositiveAmount)

	_, err = r.Run(m, "edit-budget old/Overall c/All")
	assert.ErrorIs(t, err, budget.ErrOverallRename)

	_, err = r.Run(m, "delete 1")
	assert.ErrorAs(t, err, new(*models.IndexError))
}

func TestRouter_HelpAndBye(t *testing.T) {
	r, m := newTestRouter()

	out := run(t, r, m, "help")
	help := out.Result.(HelpResult)
	assert.Len(t, help.Usages, len(parser.Usages))
	assert.Equal(t, parser.VerbAdd, help.Usages[0].Verb)
	assert.False(t, out.Exit)

	out = run(t, r, m, "bye")
	assert.True(t, out.Exit)
}
