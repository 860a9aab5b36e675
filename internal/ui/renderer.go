// Package ui renders command outcomes as text for the interactive session.
package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"budgetbuddy/internal/budget"
	"budgetbuddy/internal/command"
	"budgetbuddy/internal/currencyutils"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/parsererror"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

const separator = "____________________________________________________________"

// Renderer writes outcomes to an io.Writer.
type Renderer struct {
	out io.Writer

	title   *color.Color
	success *color.Color
	warn    *color.Color
	alert   *color.Color
	failure *color.Color
	muted   *color.Color
}

// NewRenderer creates a renderer. With useColor false every style is plain.
func NewRenderer(out io.Writer, useColor bool) *Renderer {
	r := &Renderer{
		out:     out,
		title:   color.New(color.FgCyan, color.Bold),
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		alert:   color.New(color.BgRed, color.FgWhite, color.Bold),
		failure: color.New(color.FgRed),
		muted:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{r.title, r.success, r.warn, r.alert, r.failure, r.muted} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r *Renderer) line(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Separator prints the divider between responses.
func (r *Renderer) Separator() {
	r.muted.Fprintln(r.out, separator)
}

// Welcome prints the greeting.
func (r *Renderer) Welcome() {
	r.Separator()
	r.title.Fprintln(r.out, "Hello! I'm your Budget Buddy")
	r.line("What can I do for you?")
	r.line("Enter 'help' to see what I can do.")
	r.Separator()
}

// Goodbye prints the farewell.
func (r *Renderer) Goodbye() {
	r.line("Bye. Hope to see you again soon!")
}

// Warning prints a non-fatal message.
func (r *Renderer) Warning(msg string) {
	r.warn.Fprintf(r.out, "Warning: %s\n", msg)
}

// Error prints err with a hint that depends on its kind.
func (r *Renderer) Error(err error) {
	var (
		notFound *budget.NotFoundError
		indexErr *models.IndexError
	)
	switch {
	case errors.As(err, &notFound):
		r.warn.Fprintf(r.out, "Budget category '%s' not found.\n", notFound.Category)
	case errors.As(err, &indexErr):
		r.failure.Fprintf(r.out, "Error: %s\n", indexErr.Error())
	case parsererror.IsValidation(err):
		r.failure.Fprintf(r.out, "Invalid input: %s\n", err.Error())
	default:
		r.failure.Fprintf(r.out, "Error: %s\n", err.Error())
	}
}

// Render prints an outcome.
func (r *Renderer) Render(out command.Outcome) {
	for _, w := range out.Warnings {
		r.Warning(w)
	}

	switch res := out.Result.(type) {
	case budget.AddResult:
		r.renderAdd(res)
	case budget.RecurringResult:
		r.renderRecurring(res)
	case budget.SetBudgetResult:
		r.renderSetBudget(res)
	case budget.BudgetStatus:
		r.renderStatus(res)
	case budget.EditBudgetResult:
		r.renderEditBudget(res)
	case budget.EditResult:
		r.renderEditExpense(res)
	case budget.DeleteResult:
		r.renderDelete(res)
	case command.FindResult:
		r.renderFind(res)
	case command.ListResult:
		r.renderList(res)
	case budget.SummaryResult:
		r.renderSummary(res)
	case command.AlertOutcome:
		r.renderAlert(res)
	case command.HelpResult:
		r.renderHelp(res)
	case command.ExitResult:
		r.Goodbye()
	case nil:
	default:
		r.line("%v", res)
	}
}

// Notices prints limit and alert events.
func (r *Renderer) Notices(notices []budget.Notice) {
	for _, n := range notices {
		switch n.Kind {
		case budget.NoticeAlertExceeded:
			r.alert.Fprintf(r.out, "ALERT: total spending %s has exceeded your alert of %s!",
				currencyutils.FormatAmount(n.Spent), currencyutils.FormatAmount(n.Threshold))
			fmt.Fprintln(r.out)
		case budget.NoticeLimitExceeded:
			r.warn.Fprintf(r.out, "Warning: you have exceeded your %s budget of %s (spent %s).\n",
				n.Category, currencyutils.FormatAmount(n.Threshold), currencyutils.FormatAmount(n.Spent))
		case budget.NoticeLimitReached:
			r.warn.Fprintf(r.out, "Note: you have reached your %s budget of %s.\n",
				n.Category, currencyutils.FormatAmount(n.Threshold))
		}
	}
}

func (r *Renderer) renderAdd(res budget.AddResult) {
	if res.TimeFallback {
		r.Warning("could not read the date/time, using the current time instead")
	}
	if res.CategoryMissing {
		r.warn.Fprintf(r.out, "Budget category '%s' not found. Added to Overall budget.\n", res.RequestedCategory)
	}
	where := models.OverallCategory
	if res.Category != "" {
		where = res.Category + " and " + models.OverallCategory
	}
	r.success.Fprintf(r.out, "Expense added to %s: %s\n", where, res.Expense)
	r.Notices(res.Notices)
}

// renderRecurring lists the generated series. A start date that fell back
// to now is not reported.
func (r *Renderer) renderRecurring(res budget.RecurringResult) {
	r.success.Fprintf(r.out, "Added %d recurring expenses:\n", len(res.Added))
	var last []budget.Notice
	for i, added := range res.Added {
		r.line("%d. %s", i+1, added.Expense)
		last = added.Notices
	}
	r.Notices(last)
}

func (r *Renderer) renderSetBudget(res budget.SetBudgetResult) {
	switch {
	case res.Category == models.OverallCategory:
		r.success.Fprintf(r.out, "Overall budget set to %s.\n", currencyutils.FormatAmount(res.Limit))
	case res.Created:
		r.success.Fprintf(r.out, "Created budget '%s' with limit %s.\n", res.Category, currencyutils.FormatAmount(res.Limit))
	default:
		r.success.Fprintf(r.out, "Budget for '%s' set to %s.\n", res.Category, currencyutils.FormatAmount(res.Limit))
	}
	r.Notices(res.Notices)
}

func (r *Renderer) renderStatus(st budget.BudgetStatus) {
	r.title.Fprintf(r.out, "%s budget\n", st.Category)
	r.line("  Total budget:     %s", currencyutils.FormatAmount(st.Limit))
	r.line("  Total spent:      %s", currencyutils.FormatAmount(st.Spent))
	r.line("  Remaining budget: %s", currencyutils.FormatAmount(st.Remaining))
	if st.State == models.LimitExceeded {
		r.warn.Fprintln(r.out, "  Over budget!")
	}
}

func (r *Renderer) renderEditBudget(res budget.EditBudgetResult) {
	if res.LimitChanged {
		r.success.Fprintf(r.out, "Budget '%s' limit updated to %s.\n", res.PreviousName, currencyutils.FormatAmount(res.Limit))
	}
	if res.Renamed {
		r.success.Fprintf(r.out, "Budget '%s' renamed to '%s'.\n", res.PreviousName, res.Category)
	}
	if !res.LimitChanged && !res.Renamed {
		r.line("Budget '%s' unchanged.", res.Category)
	}
	r.Notices(res.Notices)
}

func (r *Renderer) renderEditExpense(res budget.EditResult) {
	if res.TimeFallback {
		r.Warning("could not read the date/time, using the current time instead")
	}
	r.success.Fprintf(r.out, "Expense updated: %s\n", res.Expense)
	r.Notices(res.Notices)
}

func (r *Renderer) renderDelete(res budget.DeleteResult) {
	r.success.Fprintf(r.out, "Expense deleted: %s\n", res.Expense)
	for _, c := range res.RemovedFrom {
		r.line("Also removed from budget '%s'.", c)
	}
}

func (r *Renderer) expenseLines(list []budget.IndexedExpense) {
	for _, ie := range list {
		suffix := ""
		if ie.Category != "" {
			suffix = " [" + ie.Category + "]"
		}
		r.line("%d. %s%s", ie.Index, ie.Expense, suffix)
	}
}

func (r *Renderer) renderFind(res command.FindResult) {
	if len(res.Matches) == 0 {
		r.line("No expenses matching '%s'.", res.Keyword)
		return
	}
	r.title.Fprintf(r.out, "Expenses matching '%s':\n", res.Keyword)
	r.expenseLines(res.Matches)
}

func (r *Renderer) renderList(res command.ListResult) {
	if len(res.Expenses) == 0 {
		r.line("No expenses found.")
		return
	}
	header := "Expenses (most recent first):"
	if !res.Range.IsZero() {
		header = "Expenses from " + res.Range.String() + " (most recent first):"
	}
	r.title.Fprintln(r.out, header)
	r.expenseLines(res.Expenses)

	total := decimal.Zero
	for _, ie := range res.Expenses {
		total = total.Add(ie.Expense.Amount)
	}
	r.line("Total: %s", currencyutils.FormatAmount(total))
}

func (r *Renderer) renderSummary(res budget.SummaryResult) {
	r.title.Fprintln(r.out, "Budget summary")
	for _, st := range res.Budgets {
		limit := "no limit"
		if st.Limit.IsPositive() {
			limit = "limit " + currencyutils.FormatAmount(st.Limit) + ", remaining " + currencyutils.FormatAmount(st.Remaining)
		}
		r.line("  %-16s spent %s (%d expenses), %s", st.Category, currencyutils.FormatAmount(st.Spent), st.ExpenseCount, limit)
	}
	if len(res.Missing) > 0 {
		r.warn.Fprintf(r.out, "Not found: %s\n", strings.Join(res.Missing, ", "))
	}
}

func (r *Renderer) renderAlert(res command.AlertOutcome) {
	switch {
	case res.Action == command.AlertRemoved:
		r.success.Fprintln(r.out, "Alert removed.")
	case !res.Active:
		r.success.Fprintln(r.out, "Alert disabled.")
	case res.Action == command.AlertEdited:
		r.success.Fprintf(r.out, "Alert updated from %s to %s.\n",
			currencyutils.FormatAmount(res.Previous), currencyutils.FormatAmount(res.Amount))
	default:
		r.success.Fprintf(r.out, "Alert set to %s.\n", currencyutils.FormatAmount(res.Amount))
	}
	r.Notices(res.Notices)
}

func (r *Renderer) renderHelp(res command.HelpResult) {
	r.title.Fprintln(r.out, "Available commands:")
	for _, u := range res.Usages {
		r.line("  %s", u.Syntax)
	}
}
