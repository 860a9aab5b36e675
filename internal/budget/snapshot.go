package budget

import (
	"fmt"
	"strings"

	"budgetbuddy/internal/currencyutils"
	"budgetbuddy/internal/dateutils"
	"budgetbuddy/internal/logging"
	"budgetbuddy/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is the persisted form of a Manager. Every value is a string so
// that a damaged file can still be decoded and repaired record by record.
type Snapshot struct {
	Overall    BudgetRecord   `yaml:"overall" json:"overall"`
	Categories []BudgetRecord `yaml:"categories" json:"categories"`
	Alert      AlertRecord    `yaml:"alert" json:"alert"`
}

// BudgetRecord is one ledger. Expenses are in insertion order.
type BudgetRecord struct {
	Category string          `yaml:"category" json:"category"`
	Limit    string          `yaml:"limit" json:"limit"`
	Expenses []ExpenseRecord `yaml:"expenses" json:"expenses"`
}

// ExpenseRecord is one expense. Category records reuse the Overall ID.
type ExpenseRecord struct {
	ID          string `yaml:"id" json:"id"`
	Amount      string `yaml:"amount" json:"amount"`
	Description string `yaml:"description" json:"description"`
	Timestamp   string `yaml:"timestamp" json:"timestamp"`
}

// AlertRecord is the alert threshold. Active is informational; it is
// derived from Amount on restore.
type AlertRecord struct {
	Amount string `yaml:"amount" json:"amount"`
	Active bool   `yaml:"active" json:"active"`
}

// IsEmpty reports whether the snapshot holds no expenses, limits or alert.
func (s Snapshot) IsEmpty() bool {
	return len(s.Overall.Expenses) == 0 && len(s.Categories) == 0 &&
		isZeroText(s.Overall.Limit) && isZeroText(s.Alert.Amount)
}

func isZeroText(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	d, err := currencyutils.ParseAmount(s)
	return err == nil && d.IsZero()
}

func expenseRecord(e *models.Expense) ExpenseRecord {
	return ExpenseRecord{
		ID:          e.ID,
		Amount:      e.Amount.String(),
		Description: e.Description,
		Timestamp:   dateutils.FormatStored(e.Timestamp),
	}
}

func budgetRecord(b *models.Budget) BudgetRecord {
	rec := BudgetRecord{Category: b.Category, Limit: b.Limit().String()}
	for _, e := range b.Expenses() {
		rec.Expenses = append(rec.Expenses, expenseRecord(e))
	}
	return rec
}

// Snapshot captures the whole state.
func (m *Manager) Snapshot() Snapshot {
	s := Snapshot{
		Overall: budgetRecord(m.overall),
		Alert: AlertRecord{
			Amount: m.alert.Amount().String(),
			Active: m.alert.Active(),
		},
	}
	for _, b := range m.Categories() {
		s.Categories = append(s.Categories, budgetRecord(b))
	}
	return s
}

// restorer carries the bookkeeping of one Restore call.
type restorer struct {
	m      *Manager
	report LoadReport
	byID   map[string]*models.Expense
	// linked marks Overall expenses already claimed by a category.
	linked map[string]bool
}

func (r *restorer) skip(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.report.Skipped = append(r.report.Skipped, msg)
	r.m.logger.Warn("Skipping stored record", logging.F(logging.FieldReason, msg))
}

func (r *restorer) repair(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.report.Repaired = append(r.report.Repaired, msg)
	r.m.logger.Warn("Repaired stored record", logging.F(logging.FieldReason, msg))
}

func (r *restorer) limit(ledger, text string) decimal.Decimal {
	if strings.TrimSpace(text) == "" {
		return decimal.Zero
	}
	d, err := currencyutils.ParseAmount(text)
	if err != nil || d.IsNegative() {
		r.repair("%s: invalid limit '%s' reset to 0", ledger, text)
		return decimal.Zero
	}
	return d
}

// expense validates a record. Timestamps fall back to now silently.
func (r *restorer) expense(ledger string, rec ExpenseRecord) (*models.Expense, bool) {
	amount, err := currencyutils.ParseAmount(rec.Amount)
	if err != nil {
		r.skip("%s: expense '%s' has invalid amount '%s'", ledger, rec.Description, rec.Amount)
		return nil, false
	}
	ts, fallback := dateutils.ResolveStored(rec.Timestamp)
	if fallback {
		ts = r.m.now()
	}
	e, err := models.NewExpenseWithID(strings.TrimSpace(rec.ID), amount, rec.Description, ts)
	if err != nil {
		r.skip("%s: expense '%s': %v", ledger, rec.Description, err)
		return nil, false
	}
	return e, true
}

func (r *restorer) overall(rec BudgetRecord) {
	_ = r.m.overall.SetLimit(r.limit(models.OverallCategory, rec.Limit))
	for _, er := range rec.Expenses {
		e, ok := r.expense(models.OverallCategory, er)
		if !ok {
			continue
		}
		if _, dup := r.byID[e.ID]; dup {
			e.ID = uuid.NewString()
			r.repair("Overall: duplicate expense id for '%s' replaced", e.Description)
		}
		r.byID[e.ID] = e
		r.m.overall.AddExpense(e)
		r.report.Expenses++
	}
}

// match finds the Overall expense a category record refers to: by ID
// first, then by content among expenses not yet claimed by a category.
func (r *restorer) match(candidate *models.Expense, rec ExpenseRecord) *models.Expense {
	if e, ok := r.byID[strings.TrimSpace(rec.ID)]; ok && !r.linked[e.ID] {
		return e
	}
	for _, e := range r.m.overall.Expenses() {
		if !r.linked[e.ID] && e.SameContent(candidate) {
			return e
		}
	}
	return nil
}

func (r *restorer) category(rec BudgetRecord) {
	name := strings.TrimSpace(rec.Category)
	switch {
	case name == "":
		r.skip("category with empty name (%d expenses)", len(rec.Expenses))
		return
	case models.IsOverall(name):
		r.skip("category '%s' uses the reserved name", name)
		return
	}
	if _, dup := r.m.categories[name]; dup {
		r.skip("duplicate category '%s'", name)
		return
	}

	b, err := models.NewBudget(name, r.limit(name, rec.Limit))
	if err != nil {
		r.skip("category '%s': %v", name, err)
		return
	}
	r.m.categories[name] = b
	r.report.Categories++

	for _, er := range rec.Expenses {
		candidate, ok := r.expense(name, er)
		if !ok {
			continue
		}
		e := r.match(candidate, er)
		if e == nil {
			// Keep the invariant that every expense is in Overall.
			e = candidate
			if _, dup := r.byID[e.ID]; dup {
				e.ID = uuid.NewString()
			}
			r.byID[e.ID] = e
			r.m.overall.AddExpense(e)
			r.report.Expenses++
			r.repair("%s: expense '%s' was missing from Overall and was added", name, e.Description)
		}
		r.linked[e.ID] = true
		b.AddExpense(e)
	}
}

func (r *restorer) alert(rec AlertRecord) {
	if strings.TrimSpace(rec.Amount) == "" {
		return
	}
	amount, err := currencyutils.ParseAmount(rec.Amount)
	if err == nil {
		err = r.m.alert.Set(amount)
	}
	if err != nil {
		r.repair("alert: invalid amount '%s' reset to 0", rec.Amount)
	}
}

// Restore replaces the state with s. Damaged records are skipped or
// repaired and listed in the report; Restore itself never fails.
func (m *Manager) Restore(s Snapshot) LoadReport {
	m.reset()
	r := &restorer{
		m:      m,
		byID:   make(map[string]*models.Expense),
		linked: make(map[string]bool),
	}
	r.overall(s.Overall)
	for _, rec := range s.Categories {
		r.category(rec)
	}
	r.alert(s.Alert)

	m.logger.Info("Budget data restored",
		logging.F(logging.FieldCount, r.report.Expenses),
		logging.F("categories", r.report.Categories),
		logging.F("skipped", len(r.report.Skipped)))
	return r.report
}
