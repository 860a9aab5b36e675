// Package command binds parsed command lines to Manager operations.
package command

import (
	"budgetbuddy/internal/budget"
	"budgetbuddy/internal/dateutils"
)

// Command is a parsed, ready-to-run user command.
type Command interface {
	Name() string
	Execute(m *budget.Manager) (Outcome, error)
}

// Outcome is what a command produced. Result holds one of the budget
// result types or one of the result types below.
type Outcome struct {
	Command  string
	Result   any
	Warnings []string
	Exit     bool
}

// FindResult is the outcome of find.
type FindResult struct {
	Keyword string
	Matches []budget.IndexedExpense
}

// ListResult is the outcome of list.
type ListResult struct {
	Range    dateutils.Range
	Expenses []budget.IndexedExpense
}

// AlertAction says which alert verb ran.
type AlertAction string

const (
	AlertSet     AlertAction = "set"
	AlertEdited  AlertAction = "edited"
	AlertRemoved AlertAction = "removed"
)

// AlertOutcome is the outcome of alert, edit-alert and delete-alert.
type AlertOutcome struct {
	Action AlertAction
	budget.AlertResult
}

// Usage is one help line.
type Usage struct {
	Verb   string
	Syntax string
}

// HelpResult is the outcome of help.
type HelpResult struct {
	Usages []Usage
}

// ExitResult is the outcome of bye.
type ExitResult struct{}

// funcCommand adapts a closure to Command.
type funcCommand struct {
	name     string
	warnings []string
	exit     bool
	run      func(m *budget.Manager) (any, error)
}

func (c *funcCommand) Name() string {
	return c.name
}

func (c *funcCommand) Execute(m *budget.Manager) (Outcome, error) {
	result, err := c.run(m)
	if err != nil {
		return Outcome{Command: c.name}, err
	}
	return Outcome{Command: c.name, Result: result, Warnings: c.warnings, Exit: c.exit}, nil
}
