// Package budget holds the in-memory ledgers and the operations that keep
// them consistent: every expense lives in the Overall ledger and, when a
// known category was given, in exactly one category ledger as well.
//
// The Manager never prints. Each operation returns a typed result carrying
// the notices (limit reached, limit exceeded, alert exceeded) that a
// presentation layer may render.
package budget

import (
	"sort"
	"strings"
	"time"

	"budgetbuddy/internal/currencyutils"
	"budgetbuddy/internal/dateutils"
	"budgetbuddy/internal/logging"
	"budgetbuddy/internal/models"

	"github.com/shopspring/decimal"
)

// Manager owns the Overall ledger, the category ledgers and the alert.
// It is not safe for concurrent use.
type Manager struct {
	logger     logging.Logger
	overall    *models.Budget
	categories map[string]*models.Budget
	alert      models.Alert

	maxFrequencyDays int
	maxIterations    int
	now              func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithRecurringBounds caps add-recurring's frequency and iteration count.
func WithRecurringBounds(maxFrequencyDays, maxIterations int) Option {
	return func(m *Manager) {
		if maxFrequencyDays > 0 {
			m.maxFrequencyDays = maxFrequencyDays
		}
		if maxIterations > 0 {
			m.maxIterations = maxIterations
		}
	}
}

// WithClock replaces time.Now for default and fallback timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a Manager with an empty Overall ledger and no limit.
func NewManager(logger logging.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = logging.NewLogrusAdapter("warn", "text")
	}
	m := &Manager{
		logger:           logger,
		maxFrequencyDays: 1000,
		maxIterations:    10,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.reset()
	return m
}

func (m *Manager) reset() {
	m.overall = &models.Budget{Category: models.OverallCategory}
	m.categories = make(map[string]*models.Budget)
	m.alert = models.Alert{}
}

// resolve turns user text into a timestamp. Empty text means now and is not
// a fallback.
func (m *Manager) resolve(text string) (time.Time, bool) {
	if strings.TrimSpace(text) == "" {
		return m.now(), false
	}
	t, fallback := dateutils.Resolve(text)
	if fallback {
		return m.now(), true
	}
	return t, false
}

// lookup returns the ledger for name; blank and "Overall" map to Overall.
func (m *Manager) lookup(name string) (*models.Budget, bool) {
	if models.IsOverall(name) {
		return m.overall, true
	}
	b, ok := m.categories[strings.TrimSpace(name)]
	return b, ok
}

// Overall returns the Overall ledger.
func (m *Manager) Overall() *models.Budget {
	return m.overall
}

// Category returns a named ledger; "Overall" and "" return the Overall ledger.
func (m *Manager) Category(name string) (*models.Budget, bool) {
	return m.lookup(name)
}

// Categories returns the named ledgers sorted by name, Overall excluded.
func (m *Manager) Categories() []*models.Budget {
	out := make([]*models.Budget, 0, len(m.categories))
	for _, b := range m.categories {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// Alert returns a copy of the alert.
func (m *Manager) Alert() models.Alert {
	return m.alert
}

// TotalExpenses is the Overall total.
func (m *Manager) TotalExpenses() decimal.Decimal {
	return m.overall.TotalExpenses()
}

// categoriesHolding lists, by name, the category ledgers containing id.
func (m *Manager) categoriesHolding(id string) []*models.Budget {
	var out []*models.Budget
	for _, b := range m.Categories() {
		if b.Contains(id) {
			out = append(out, b)
		}
	}
	return out
}

func (m *Manager) categoryOf(id string) string {
	holding := m.categoriesHolding(id)
	if len(holding) == 0 {
		return ""
	}
	return holding[0].Category
}

func limitNotice(b *models.Budget) []Notice {
	var kind NoticeKind
	switch b.CheckLimit() {
	case models.LimitExceeded:
		kind = NoticeLimitExceeded
	case models.LimitReached:
		kind = NoticeLimitReached
	default:
		return nil
	}
	return []Notice{{Kind: kind, Category: b.Category, Spent: b.TotalExpenses(), Threshold: b.Limit()}}
}

func (m *Manager) alertNotice() []Notice {
	total := m.overall.TotalExpenses()
	if !m.alert.Exceeded(total) {
		return nil
	}
	return []Notice{{
		Kind:      NoticeAlertExceeded,
		Category:  models.OverallCategory,
		Spent:     total,
		Threshold: m.alert.Amount(),
	}}
}

func (m *Manager) logNotices(notices []Notice) {
	for _, n := range notices {
		m.logger.Info("Threshold notice",
			logging.F(logging.FieldReason, n.Kind.String()),
			logging.F(logging.FieldCategory, n.Category),
			logging.F(logging.FieldAmount, n.Spent.String()))
	}
}

// AddExpense records an expense in Overall and, if category names an
// existing ledger, there too. An unknown category is not created; the
// result flags it instead. Empty timeText means now; unparsable timeText
// also means now, with TimeFallback set.
func (m *Manager) AddExpense(category string, amount decimal.Decimal, description, timeText string) (AddResult, error) {
	ts, fallback := m.resolve(timeText)
	res, err := m.addAt(category, amount, description, ts)
	if err != nil {
		return AddResult{}, err
	}
	res.TimeFallback = fallback
	return res, nil
}

func (m *Manager) addAt(category string, amount decimal.Decimal, description string, ts time.Time) (AddResult, error) {
	e, err := models.NewExpense(amount, description, ts)
	if err != nil {
		return AddResult{}, err
	}

	m.overall.AddExpense(e)
	res := AddResult{Expense: e}

	var target *models.Budget
	if !models.IsOverall(category) {
		res.RequestedCategory = strings.TrimSpace(category)
		if b, ok := m.categories[res.RequestedCategory]; ok {
			b.AddExpense(e)
			target = b
			res.Category = b.Category
		} else {
			res.CategoryMissing = true
		}
	}

	res.Notices = append(res.Notices, m.alertNotice()...)
	res.Notices = append(res.Notices, limitNotice(m.overall)...)
	if target != nil {
		res.Notices = append(res.Notices, limitNotice(target)...)
	}

	m.logger.Info("Expense added",
		logging.F(logging.FieldExpenseID, e.ID),
		logging.F(logging.FieldAmount, e.Amount.String()),
		logging.F(logging.FieldCategory, res.Category))
	if res.CategoryMissing {
		m.logger.Warn("Category not found, expense kept in Overall only",
			logging.F(logging.FieldCategory, res.RequestedCategory))
	}
	m.logNotices(res.Notices)
	return res, nil
}

// SetBudget sets the limit of Overall (blank or "Overall" category) or of
// a named category, creating the category if needed. Overall keeps its
// expense history.
func (m *Manager) SetBudget(category string, amount decimal.Decimal) (SetBudgetResult, error) {
	if amount.IsNegative() {
		return SetBudgetResult{}, models.ErrNegativeAmount
	}

	if models.IsOverall(category) {
		if err := m.overall.SetLimit(amount); err != nil {
			return SetBudgetResult{}, err
		}
		res := SetBudgetResult{Category: m.overall.Category, Limit: amount}
		res.Notices = append(res.Notices, m.alertNotice()...)
		res.Notices = append(res.Notices, limitNotice(m.overall)...)
		m.logger.Info("Overall budget set", logging.F(logging.FieldAmount, amount.String()))
		m.logNotices(res.Notices)
		return res, nil
	}

	name := strings.TrimSpace(category)
	res := SetBudgetResult{Category: name, Limit: amount}
	b, ok := m.categories[name]
	if ok {
		if err := b.SetLimit(amount); err != nil {
			return SetBudgetResult{}, err
		}
	} else {
		created, err := models.NewBudget(name, amount)
		if err != nil {
			return SetBudgetResult{}, err
		}
		m.categories[name] = created
		b = created
		res.Created = true
	}
	res.Notices = limitNotice(b)

	m.logger.Info("Category budget set",
		logging.F(logging.FieldCategory, name),
		logging.F(logging.FieldAmount, amount.String()),
		logging.F("created", res.Created))
	m.logNotices(res.Notices)
	return res, nil
}

// DeleteExpense removes the expense at the 1-based, most-recent-first
// Overall index, then removes the same expense from every category ledger.
func (m *Manager) DeleteExpense(index int) (DeleteResult, error) {
	removed, err := m.overall.DeleteExpense(index)
	if err != nil {
		return DeleteResult{}, err
	}

	res := DeleteResult{Expense: removed}
	for _, b := range m.Categories() {
		if b.RemoveExpenseByID(removed.ID) {
			res.RemovedFrom = append(res.RemovedFrom, b.Category)
		}
	}

	m.logger.Info("Expense deleted",
		logging.F(logging.FieldIndex, index),
		logging.F(logging.FieldExpenseID, removed.ID),
		logging.F(logging.FieldCount, len(res.RemovedFrom)))
	return res, nil
}

// ExpenseEdit lists the fields edit-expense may change. DateTime is raw
// user text.
type ExpenseEdit struct {
	Amount      decimal.NullDecimal
	Description string
	DateTime    string
}

// EditExpense changes the expense at the Overall index in place. Category
// ledgers share the same expense so they stay consistent.
func (m *Manager) EditExpense(index int, edit ExpenseEdit) (EditResult, error) {
	change := models.ExpenseEdit{Amount: edit.Amount, Description: edit.Description}
	var fallback bool
	if strings.TrimSpace(edit.DateTime) != "" {
		ts, usedFallback := m.resolve(edit.DateTime)
		change.Timestamp = &ts
		fallback = usedFallback
	}
	if change.IsEmpty() {
		return EditResult{}, ErrNothingToEdit
	}

	e, err := m.overall.ExpenseAt(index)
	if err != nil {
		return EditResult{}, err
	}
	if err := e.Edit(change); err != nil {
		return EditResult{}, err
	}

	res := EditResult{Expense: e, TimeFallback: fallback}
	res.Notices = append(res.Notices, m.alertNotice()...)
	res.Notices = append(res.Notices, limitNotice(m.overall)...)
	for _, b := range m.categoriesHolding(e.ID) {
		res.Categories = append(res.Categories, b.Category)
		res.Notices = append(res.Notices, limitNotice(b)...)
	}

	m.logger.Info("Expense edited",
		logging.F(logging.FieldIndex, index),
		logging.F(logging.FieldExpenseID, e.ID))
	m.logNotices(res.Notices)
	return res, nil
}

func status(b *models.Budget) BudgetStatus {
	spent := b.TotalExpenses()
	return BudgetStatus{
		Category:     b.Category,
		Limit:        b.Limit(),
		Spent:        spent,
		Remaining:    currencyutils.NonNegative(b.Limit().Sub(spent)),
		ExpenseCount: b.Len(),
		State:        b.CheckLimit(),
	}
}

// CheckBudget reports limit, spent and remaining for a ledger. Blank means Overall.
func (m *Manager) CheckBudget(category string) (BudgetStatus, error) {
	b, ok := m.lookup(category)
	if !ok {
		return BudgetStatus{}, &NotFoundError{Category: strings.TrimSpace(category)}
	}
	return status(b), nil
}

// BudgetEdit lists the fields edit-budget may change.
type BudgetEdit struct {
	Amount  decimal.NullDecimal
	NewName string
}

// EditBudget changes a ledger's limit and/or name. Every check runs before
// anything is applied.
func (m *Manager) EditBudget(current string, edit BudgetEdit) (EditBudgetResult, error) {
	newName := strings.TrimSpace(edit.NewName)
	if models.IsOverall(current) && newName != "" {
		return EditBudgetResult{}, ErrOverallRename
	}

	b, ok := m.lookup(current)
	if !ok {
		return EditBudgetResult{}, &NotFoundError{Category: strings.TrimSpace(current)}
	}
	if !edit.Amount.Valid && newName == "" {
		return EditBudgetResult{}, ErrNothingToEdit
	}
	if edit.Amount.Valid && edit.Amount.Decimal.IsNegative() {
		return EditBudgetResult{}, models.ErrNegativeAmount
	}

	rename := newName != "" && newName != b.Category
	if rename {
		if models.IsOverall(newName) {
			return EditBudgetResult{}, ErrReservedCategory
		}
		if _, taken := m.categories[newName]; taken {
			return EditBudgetResult{}, ErrCategoryExists
		}
	}

	res := EditBudgetResult{PreviousName: b.Category}
	if edit.Amount.Valid {
		if err := b.SetLimit(edit.Amount.Decimal); err != nil {
			return EditBudgetResult{}, err
		}
		res.LimitChanged = true
	}
	if rename {
		delete(m.categories, b.Category)
		if err := b.Rename(newName); err != nil {
			return EditBudgetResult{}, err
		}
		m.categories[b.Category] = b
		res.Renamed = true
	}
	res.Category = b.Category
	res.Limit = b.Limit()

	if b == m.overall {
		res.Notices = append(res.Notices, m.alertNotice()...)
	}
	res.Notices = append(res.Notices, limitNotice(b)...)

	m.logger.Info("Budget edited",
		logging.F(logging.FieldCategory, res.Category),
		logging.F("previous", res.PreviousName),
		logging.F(logging.FieldAmount, res.Limit.String()))
	m.logNotices(res.Notices)
	return res, nil
}

// expensesMatching walks Overall from the most recent expense, keeping
// indices aligned with DeleteExpense and EditExpense.
func (m *Manager) expensesMatching(keep func(*models.Expense) bool) []IndexedExpense {
	var out []IndexedExpense
	for i := 1; i <= m.overall.Len(); i++ {
		e, err := m.overall.ExpenseAt(i)
		if err != nil {
			break
		}
		if keep(e) {
			out = append(out, IndexedExpense{Index: i, Expense: e, Category: m.categoryOf(e.ID)})
		}
	}
	return out
}

// FindExpenses matches keyword case-insensitively against descriptions.
func (m *Manager) FindExpenses(keyword string) []IndexedExpense {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	return m.expensesMatching(func(e *models.Expense) bool {
		return strings.Contains(strings.ToLower(e.Description), needle)
	})
}

// ListExpenses returns Overall expenses inside r, most recent first.
func (m *Manager) ListExpenses(r dateutils.Range) []IndexedExpense {
	return m.expensesMatching(func(e *models.Expense) bool {
		return r.Contains(e.Timestamp)
	})
}

// Summary reports Overall followed by categories sorted by name. When
// categories are given only those are reported; unknown names go to Missing.
func (m *Manager) Summary(categories ...string) SummaryResult {
	var res SummaryResult
	if len(categories) == 0 {
		res.Budgets = append(res.Budgets, status(m.overall))
		for _, b := range m.Categories() {
			res.Budgets = append(res.Budgets, status(b))
		}
		return res
	}

	var wantOverall bool
	var named []*models.Budget
	seen := make(map[string]bool)
	for _, name := range categories {
		if models.IsOverall(name) {
			wantOverall = true
			continue
		}
		name = strings.TrimSpace(name)
		if seen[name] {
			continue
		}
		seen[name] = true
		if b, ok := m.categories[name]; ok {
			named = append(named, b)
		} else {
			res.Missing = append(res.Missing, name)
		}
	}
	sort.Slice(named, func(i, j int) bool { return named[i].Category < named[j].Category })

	if wantOverall {
		res.Budgets = append(res.Budgets, status(m.overall))
	}
	for _, b := range named {
		res.Budgets = append(res.Budgets, status(b))
	}
	return res
}

func (m *Manager) alertResult(previous decimal.Decimal) AlertResult {
	return AlertResult{
		Previous: previous,
		Amount:   m.alert.Amount(),
		Active:   m.alert.Active(),
		Spent:    m.overall.TotalExpenses(),
		Notices:  m.alertNotice(),
	}
}

// SetAlert sets the global threshold; zero disables it.
func (m *Manager) SetAlert(amount decimal.Decimal) (AlertResult, error) {
	previous := m.alert.Amount()
	if err := m.alert.Set(amount); err != nil {
		return AlertResult{}, err
	}
	m.logger.Info("Alert set", logging.F(logging.FieldAmount, amount.String()))
	return m.alertResult(previous), nil
}

// EditAlert behaves like SetAlert.
func (m *Manager) EditAlert(amount decimal.Decimal) (AlertResult, error) {
	previous := m.alert.Amount()
	if err := m.alert.Edit(amount); err != nil {
		return AlertResult{}, err
	}
	m.logger.Info("Alert edited",
		logging.F("previous", previous.String()),
		logging.F(logging.FieldAmount, amount.String()))
	return m.alertResult(previous), nil
}

// RemoveAlert disables the alert.
func (m *Manager) RemoveAlert() AlertResult {
	previous := m.alert.Amount()
	m.alert.Remove()
	m.logger.Info("Alert removed", logging.F("previous", previous.String()))
	return m.alertResult(previous)
}
