package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"budgetbuddy/internal/budget"
	"budgetbuddy/internal/fileutils"
	"budgetbuddy/internal/logging"
	"budgetbuddy/internal/models"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the snapshot in an SQLite database. Every ledger,
// Overall included, is a row in budgets; ledger membership and order live
// in budget_expenses.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

// NewSQLiteStore opens (creating if needed) the database at path and
// applies pending migrations.
func NewSQLiteStore(ctx context.Context, path string, logger logging.Logger) (*SQLiteStore, error) {
	if err := fileutils.EnsureDirectoryExists(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Debug("SQLite store opened")
	return &SQLiteStore{db: db, path: path, logger: logger}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const (
	selectBudgets = `SELECT name, limit_amount FROM budgets ORDER BY position`

	selectLedger = `SELECT e.id, e.amount, e.description, e.spent_at
		FROM budget_expenses be
		JOIN expenses e ON e.id = be.expense_id
		WHERE be.budget_name = ?
		ORDER BY be.position`

	selectAlert = `SELECT amount, active FROM alert WHERE id = 1`
)

// Load reads every ledger and the alert.
func (s *SQLiteStore) Load(ctx context.Context) (budget.Snapshot, error) {
	var snap budget.Snapshot

	rows, err := s.db.QueryContext(ctx, selectBudgets)
	if err != nil {
		return snap, fmt.Errorf("query budgets: %w", err)
	}
	var ledgers []budget.BudgetRecord
	for rows.Next() {
		var rec budget.BudgetRecord
		if err := rows.Scan(&rec.Category, &rec.Limit); err != nil {
			rows.Close()
			return snap, fmt.Errorf("scan budget: %w", err)
		}
		ledgers = append(ledgers, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("iterate budgets: %w", err)
	}

	for _, rec := range ledgers {
		rec.Expenses, err = s.ledgerExpenses(ctx, rec.Category)
		if err != nil {
			return snap, err
		}
		if rec.Category == models.OverallCategory {
			snap.Overall = rec
			continue
		}
		snap.Categories = append(snap.Categories, rec)
	}

	var active int
	err = s.db.QueryRowContext(ctx, selectAlert).Scan(&snap.Alert.Amount, &active)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return snap, fmt.Errorf("query alert: %w", err)
	default:
		snap.Alert.Active = active != 0
	}

	s.logger.Debug("Loaded budget data from SQLite",
		logging.F(logging.FieldCount, len(snap.Overall.Expenses)))
	return snap, nil
}

func (s *SQLiteStore) ledgerExpenses(ctx context.Context, name string) ([]budget.ExpenseRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectLedger, name)
	if err != nil {
		return nil, fmt.Errorf("query expenses of %s: %w", name, err)
	}
	defer rows.Close()

	var out []budget.ExpenseRecord
	for rows.Next() {
		var rec budget.ExpenseRecord
		if err := rows.Scan(&rec.ID, &rec.Amount, &rec.Description, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Save replaces the database contents with snap in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, snap budget.Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{
		`DELETE FROM budget_expenses`,
		`DELETE FROM expenses`,
		`DELETE FROM budgets`,
		`DELETE FROM alert`,
	} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear tables: %w", err)
		}
	}

	overall := snap.Overall
	overall.Category = models.OverallCategory
	ledgers := append([]budget.BudgetRecord{overall}, snap.Categories...)
	for pos, rec := range ledgers {
		if err = saveLedger(ctx, tx, pos, rec); err != nil {
			return err
		}
	}

	active := 0
	if snap.Alert.Active {
		active = 1
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO alert (id, amount, active) VALUES (1, ?, ?)`,
		orZero(snap.Alert.Amount), active); err != nil {
		return fmt.Errorf("save alert: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	s.logger.Debug("Saved budget data to SQLite",
		logging.F(logging.FieldCount, len(snap.Overall.Expenses)))
	return nil
}

func saveLedger(ctx context.Context, tx *sql.Tx, pos int, rec budget.BudgetRecord) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO budgets (name, limit_amount, position) VALUES (?, ?, ?)`,
		rec.Category, orZero(rec.Limit), pos); err != nil {
		return fmt.Errorf("save budget %s: %w", rec.Category, err)
	}
	for i, e := range rec.Expenses {
		// Category ledgers share rows with Overall.
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO expenses (id, amount, description, spent_at) VALUES (?, ?, ?, ?)`,
			e.ID, e.Amount, e.Description, e.Timestamp); err != nil {
			return fmt.Errorf("save expense %s: %w", e.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO budget_expenses (budget_name, expense_id, position) VALUES (?, ?, ?)`,
			rec.Category, e.ID, i); err != nil {
			return fmt.Errorf("link expense %s to %s: %w", e.ID, rec.Category, err)
		}
	}
	return nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
