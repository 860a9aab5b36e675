package budget

import (
	"budgetbuddy/internal/models"

	"github.com/shopspring/decimal"
)

// NoticeKind classifies a threshold event raised by an operation.
type NoticeKind int

const (
	NoticeLimitReached NoticeKind = iota
	NoticeLimitExceeded
	NoticeAlertExceeded
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeLimitReached:
		return "limit-reached"
	case NoticeLimitExceeded:
		return "limit-exceeded"
	default:
		return "alert-exceeded"
	}
}

// Notice is a limit or alert event. Threshold is the limit or alert amount.
type Notice struct {
	Kind      NoticeKind
	Category  string
	Spent     decimal.Decimal
	Threshold decimal.Decimal
}

// AddResult describes one inserted expense.
type AddResult struct {
	Expense *models.Expense
	// Category is the named ledger that also received the expense, or "".
	Category string
	// CategoryMissing is set when RequestedCategory did not exist.
	CategoryMissing   bool
	RequestedCategory string
	TimeFallback      bool
	Notices           []Notice
}

// RecurringResult describes an add-recurring run.
type RecurringResult struct {
	Added        []AddResult
	TimeFallback bool
}

// SetBudgetResult describes a set-budget call.
type SetBudgetResult struct {
	Category string
	Limit    decimal.Decimal
	Created  bool
	Notices  []Notice
}

// DeleteResult describes a removed expense.
type DeleteResult struct {
	Expense *models.Expense
	// RemovedFrom lists the named ledgers that also held the expense.
	RemovedFrom []string
}

// EditResult describes an edited expense.
type EditResult struct {
	Expense      *models.Expense
	Categories   []string
	TimeFallback bool
	Notices      []Notice
}

// BudgetStatus is a point-in-time view of one ledger.
type BudgetStatus struct {
	Category     string
	Limit        decimal.Decimal
	Spent        decimal.Decimal
	Remaining    decimal.Decimal
	ExpenseCount int
	State        models.LimitState
}

// EditBudgetResult describes an edit-budget call.
type EditBudgetResult struct {
	Category     string
	PreviousName string
	Renamed      bool
	LimitChanged bool
	Limit        decimal.Decimal
	Notices      []Notice
}

// IndexedExpense pairs an expense with its delete/edit index.
type IndexedExpense struct {
	Index    int
	Expense  *models.Expense
	Category string
}

// SummaryResult lists budget statuses, Overall first.
type SummaryResult struct {
	Budgets []BudgetStatus
	// Missing lists requested categories that do not exist.
	Missing []string
}

// AlertResult describes an alert change.
type AlertResult struct {
	Previous decimal.Decimal
	Amount   decimal.Decimal
	Active   bool
	Spent    decimal.Decimal
	Notices  []Notice
}

// LoadReport summarises a Restore call.
type LoadReport struct {
	Expenses   int
	Categories int
	// Skipped lists records that could not be restored.
	Skipped []string
	// Repaired lists records that were restored after a correction.
	Repaired []string
}
