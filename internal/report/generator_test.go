package report

import (
	"encoding/json"
	"testing"
	"time"

	"budgetbuddy/internal/budget"
	"budgetbuddy/internal/logging"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestGenerator() *ReportGenerator {
	g := NewReportGenerator(logging.NewMockLogger())
	g.now = func() time.Time { return time.Date(2025, time.May, 5, 18, 0, 0, 0, time.UTC) }
	return g
}

func sampleManager(t *testing.T) *budget.Manager {
	t.Helper()
	m := budget.NewManager(logging.NewMockLogger())
	_, err := m.SetBudget("", decimal.NewFromInt(200))
	require.NoError(t, err)
	_, err = m.SetBudget("Food", decimal.NewFromInt(50))
	require.NoError(t, err)
	_, err = m.SetAlert(decimal.NewFromInt(60))
	require.NoError(t, err)
	_, err = m.AddExpense("Food", decimal.RequireFromString("55.5"), "groceries", "Apr 01 2025 at 10:00")
	require.NoError(t, err)
	_, err = m.AddExpense("", decimal.NewFromInt(10), "parking", "Apr 02 2025 at 10:00")
	require.NoError(t, err)
	return m
}

func TestReportGenerator_Build(t *testing.T) {
	doc := newTestGenerator().Build(sampleManager(t))

	assert.Equal(t, "2025-05-05T18:00:00Z", doc.GeneratedAt)
	require.Len(t, doc.Budgets, 2)
	assert.Equal(t, BudgetReport{
		Category:     "Overall",
		Limit:        "200.00",
		Spent:        "65.50",
		Remaining:    "134.50",
		ExpenseCount: 2,
		State:        "under",
	}, doc.Budgets[0])
	assert.Equal(t, "Food", doc.Budgets[1].Category)
	assert.Equal(t, "exceeded", doc.Budgets[1].State)
	assert.Equal(t, "-5.50", doc.Budgets[1].Remaining)

	require.NotNil(t, doc.Alert)
	assert.Equal(t, "60.00", doc.Alert.Threshold)
	assert.True(t, doc.Alert.Exceeded)
}

func TestReportGenerator_BuildFiltered(t *testing.T) {
	doc := newTestGenerator().Build(sampleManager(t), "Food", "Travel")
	assert.Equal(t, []string{"Travel"}, doc.Missing)
	for _, b := range doc.Budgets {
		assert.NotEqual(t, "Travel", b.Category)
	}
}

func TestReportGenerator_GenerateReport_JSON(t *testing.T) {
	g := newTestGenerator()
	doc := g.Build(sampleManager(t))

	out, err := g.GenerateReport(doc, "json")
	require.NoError(t, err)

	var decoded Summary
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, doc, decoded)
	assert.Contains(t, string(out), `"expense_count": 2`)
}

func TestReportGenerator_GenerateReport_YAML(t *testing.T) {
	g := newTestGenerator()
	doc := g.Build(sampleManager(t))

	out, err := g.GenerateReport(doc, "YAML")
	require.NoError(t, err)

	var decoded Summary
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, doc, decoded)
	assert.Contains(t, string(out), "generated_at:")
}

func TestReportGenerator_GenerateReport_Unsupported(t *testing.T) {
	_, err := newTestGenerator().GenerateReport(Summary{}, "xml")
	assert.EqualError(t, err, "unsupported report format: xml")
}
