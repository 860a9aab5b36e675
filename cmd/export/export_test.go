package export_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"budgetbuddy/cmd/export"
	"budgetbuddy/cmd/root"
	"budgetbuddy/internal/budget"
	"budgetbuddy/internal/logging"
	"budgetbuddy/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var register sync.Once

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	register.Do(func() {
		root.Init()
		root.Cmd.AddCommand(export.Cmd)
	})
	var out bytes.Buffer
	root.Cmd.SetOut(&out)
	root.Cmd.SetErr(&out)
	root.Cmd.SetArgs(args)
	err := root.Cmd.Execute()
	return out.String(), err
}

// seed writes a data file with three expenses in two ledgers.
func seed(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BUDGETBUDDY_DISPLAY_COLOR", "false")
	t.Setenv("BUDGETBUDDY_LOG_LEVEL", "error")
	dir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(originalDir) })

	m := seededManager(t)
	path := filepath.Join(dir, "data.yaml")
	require.NoError(t, store.NewYAMLStore(path, false, logging.NewMockLogger()).Save(context.Background(), m.Snapshot()))
	return path
}

func seededManager(t *testing.T) *budget.Manager {
	t.Helper()
	m := budget.NewManager(logging.NewMockLogger())
	_, err := m.SetBudget("Food", decimal.NewFromInt(100))
	require.NoError(t, err)
	for _, e := range []struct{ cat, amount, desc, at string }{
		{"Food", "8", "bagels", "Jan 05 2025 at 08:00"},
		{"", "30", "taxi", "Jan 06 2025 at 23:10"},
		{"Food", "14.5", "pizza", "Jan 07 2025 at 19:45"},
	} {
		_, err := m.AddExpense(e.cat, decimal.RequireFromString(e.amount), e.desc, e.at)
		require.NoError(t, err)
	}
	return m
}

func TestExportCommand_Stdout(t *testing.T) {
	data := seed(t)

	out, err := execute(t, "export", "--data", data, "-o", "-")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Index,Date,Description,Amount,Category", lines[0])
	assert.Equal(t, "1,Jan 07 2025 at 19:45,pizza,14.50,Food", lines[1])
	assert.Equal(t, "2,Jan 06 2025 at 23:10,taxi,30.00,Overall", lines[2])
}

func TestExportCommand_FileWithCategory(t *testing.T) {
	data := seed(t)
	target := filepath.Join(filepath.Dir(data), "out", "food.csv")

	out, err := execute(t, "export", "--data", data, "-o", target, "--category", "Food")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 expenses")

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "pizza")
	assert.Contains(t, string(content), "bagels")
	assert.NotContains(t, string(content), "taxi")
}

func TestExportCommand_UnknownCategory(t *testing.T) {
	data := seed(t)
	_, err := execute(t, "export", "--data", data, "-o", "-", "--category", "Rent")
	var notFound *budget.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	// Reset for later tests sharing the package-level flag.
	_, _ = execute(t, "export", "--data", data, "-o", "-", "--category", "")
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantErr    string
	}{
		{name: "open"},
		{name: "both", start: "Jan 01 2025 at 00:00", end: "Jan 31 2025 at 23:59"},
		{name: "bad start", start: "yesterday", wantErr: "invalid --start"},
		{name: "bad end", end: "2025-01-01", wantErr: "invalid --end"},
		{name: "reversed", start: "Feb 01 2025 at 00:00", end: "Jan 01 2025 at 00:00", wantErr: "--end is before --start"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := export.ParseFilter("", tt.start, tt.end)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSelect_Range(t *testing.T) {
	m := seededManager(t)
	f, err := export.ParseFilter("", "Jan 06 2025 at 00:00", "Jan 06 2025 at 23:59")
	require.NoError(t, err)

	list, err := export.Select(m, f)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "taxi", list[0].Expense.Description)
	assert.Equal(t, 2, list[0].Index)
}
