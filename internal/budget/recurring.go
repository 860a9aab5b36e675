package budget

import (
	"fmt"

	"budgetbuddy/internal/dateutils"
	"budgetbuddy/internal/logging"
	"budgetbuddy/internal/models"

	"github.com/shopspring/decimal"
)

// RecurringExpense is the template for add-recurring. Start is raw user
// text; an unparsable start falls back to now.
type RecurringExpense struct {
	Category      string
	Amount        decimal.Decimal
	Description   string
	Start         string
	FrequencyDays int
	Iterations    int
}

func (m *Manager) validateRecurring(r RecurringExpense) error {
	if r.FrequencyDays < 1 || r.FrequencyDays > m.maxFrequencyDays {
		return fmt.Errorf("%w: frequency must be between 1 and %d days, got %d",
			ErrInvalidRecurrence, m.maxFrequencyDays, r.FrequencyDays)
	}
	if r.Iterations < 1 || r.Iterations > m.maxIterations {
		return fmt.Errorf("%w: iterations must be between 1 and %d, got %d",
			ErrInvalidRecurrence, m.maxIterations, r.Iterations)
	}
	// Template check so that a bad amount or description adds nothing.
	if _, err := models.NewExpense(r.Amount, r.Description, m.now()); err != nil {
		return err
	}
	return nil
}

// AddRecurring adds Iterations copies of the template, the i-th one
// FrequencyDays*i calendar days after the resolved start. Nothing is added
// when the template or bounds are invalid.
func (m *Manager) AddRecurring(r RecurringExpense) (RecurringResult, error) {
	if err := m.validateRecurring(r); err != nil {
		return RecurringResult{}, err
	}

	anchor, fallback := m.resolve(r.Start)
	res := RecurringResult{TimeFallback: fallback}
	for i := 0; i < r.Iterations; i++ {
		ts := dateutils.AddDays(anchor, i*r.FrequencyDays)
		added, err := m.addAt(r.Category, r.Amount, r.Description, ts)
		if err != nil {
			return res, fmt.Errorf("failed to add occurrence %d: %w", i+1, err)
		}
		res.Added = append(res.Added, added)
	}

	m.logger.Info("Recurring expenses added",
		logging.F(logging.FieldCount, len(res.Added)),
		logging.F("frequency_days", r.FrequencyDays),
		logging.F(logging.FieldCategory, r.Category))
	return res, nil
}
