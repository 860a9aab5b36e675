package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBudget(t *testing.T, limit string, amounts ...string) *Budget {
	t.Helper()
	b, err := NewBudget("Food", dec(limit))
	require.NoError(t, err)
	for i, a := range amounts {
		e, err := NewExpense(dec(a), "item", lunchTime.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		b.AddExpense(e)
	}
	return b
}

func TestNewBudget(t *testing.T) {
	_, err := NewBudget(" ", decimal.Zero)
	assert.ErrorIs(t, err, ErrEmptyCategory)

	_, err = NewBudget("Food", dec("-1"))
	assert.ErrorIs(t, err, ErrNegativeAmount)

	b, err := NewBudget(" Food ", dec("100"))
	require.NoError(t, err)
	assert.Equal(t, "Food", b.Category)
	assert.Equal(t, 0, b.Len())
}

func TestBudget_TotalsAndRemaining(t *testing.T) {
	tests := []struct {
		name      string
		limit     string
		amounts   []string
		total     string
		remaining string
		state     LimitState
	}{
		{"no limit", "0", []string{"10"}, "10", "0", LimitUnset},
		{"under", "100", []string{"10", "20"}, "30", "70", LimitUnder},
		{"reached", "30", []string{"10", "20"}, "30", "0", LimitReached},
		{"exceeded", "25", []string{"10", "20"}, "30", "-5", LimitExceeded},
		{"empty ledger", "50", nil, "0", "50", LimitUnder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBudget(t, tt.limit, tt.amounts...)
			assert.True(t, dec(tt.total).Equal(b.TotalExpenses()), "total %s", b.TotalExpenses())
			assert.True(t, dec(tt.remaining).Equal(b.RemainingBudget()), "remaining %s", b.RemainingBudget())
			assert.Equal(t, tt.state, b.CheckLimit())
		})
	}
}

func TestBudget_IndexingIsMostRecentFirst(t *testing.T) {
	b := newTestBudget(t, "0", "1", "2", "3")

	first, err := b.ExpenseAt(1)
	require.NoError(t, err)
	assert.True(t, dec("3").Equal(first.Amount))

	last, err := b.ExpenseAt(3)
	require.NoError(t, err)
	assert.True(t, dec("1").Equal(last.Amount))

	assert.Equal(t, 1, b.IndexOf(first.ID))
	assert.Equal(t, 3, b.IndexOf(last.ID))
	assert.Equal(t, 0, b.IndexOf("missing"))
}

func TestBudget_DeleteExpense(t *testing.T) {
	b := newTestBudget(t, "0", "1", "2", "3")

	removed, err := b.DeleteExpense(2)
	require.NoError(t, err)
	assert.True(t, dec("2").Equal(removed.Amount))
	assert.Equal(t, 2, b.Len())
	assert.True(t, dec("4").Equal(b.TotalExpenses()))

	for _, idx := range []int{0, 3, -1} {
		_, err := b.DeleteExpense(idx)
		var indexErr *IndexError
		require.ErrorAs(t, err, &indexErr)
		assert.Equal(t, 2, indexErr.Size)
	}
	assert.Equal(t, 2, b.Len())
}

func TestBudget_RemoveExpenseByID(t *testing.T) {
	b := newTestBudget(t, "0", "1", "2")
	target := b.Expenses()[0]

	assert.True(t, b.RemoveExpenseByID(target.ID))
	assert.False(t, b.RemoveExpenseByID(target.ID))
	assert.False(t, b.Contains(target.ID))
	assert.Equal(t, 1, b.Len())
}

func TestBudget_ExpensesReturnsCopy(t *testing.T) {
	b := newTestBudget(t, "0", "1")
	list := b.Expenses()
	list[0] = nil

	assert.NotNil(t, b.Expenses()[0])
}

func TestBudget_SetLimitAndRename(t *testing.T) {
	b := newTestBudget(t, "10")

	assert.ErrorIs(t, b.SetLimit(dec("-5")), ErrNegativeAmount)
	assert.True(t, dec("10").Equal(b.Limit()))

	assert.ErrorIs(t, b.Rename(""), ErrEmptyCategory)
	require.NoError(t, b.Rename("Groceries"))
	assert.Equal(t, "Groceries", b.Category)
}

func TestIndexError_Message(t *testing.T) {
	assert.Equal(t, "invalid index 4: expected a number between 1 and 3", (&IndexError{Index: 4, Size: 3}).Error())
	assert.Equal(t, "invalid index 1: there are no expenses", (&IndexError{Index: 1}).Error())
}

func TestLimitState_String(t *testing.T) {
	assert.Equal(t, "unset", LimitUnset.String())
	assert.Equal(t, "exceeded", LimitExceeded.String())
}
