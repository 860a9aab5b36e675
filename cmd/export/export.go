// Package export writes expenses to CSV
package export

import (
	"fmt"
	"strings"

	"budgetbuddy/cmd/root"
	"budgetbuddy/internal/budget"
	"budgetbuddy/internal/common"
	"budgetbuddy/internal/dateutils"
	"budgetbuddy/internal/models"

	"github.com/spf13/cobra"
)

var (
	output   string
	category string
	start    string
	end      string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export expenses to a CSV file",
	Long: `Export writes expenses, most recent first, as CSV. Index matches the
numbering used by delete and edit-expense.`,
	Args: cobra.NoArgs,
	RunE: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "-", "Output CSV file, - for stdout")
	Cmd.Flags().StringVarP(&category, "category", "c", "", "Only export this category")
	Cmd.Flags().StringVar(&start, "start", "", "Earliest date/time, e.g. \"Jan 01 2025 at 00:00\"")
	Cmd.Flags().StringVar(&end, "end", "", "Latest date/time")
}

// Filter narrows an export.
type Filter struct {
	Category string
	Range    dateutils.Range
}

// ParseFilter validates the flag values.
func ParseFilter(category, start, end string) (Filter, error) {
	f := Filter{Category: strings.TrimSpace(category)}
	var err error
	if strings.TrimSpace(start) != "" {
		if f.Range.Start, err = dateutils.Parse(start); err != nil {
			return f, fmt.Errorf("invalid --start: %w", err)
		}
	}
	if strings.TrimSpace(end) != "" {
		if f.Range.End, err = dateutils.Parse(end); err != nil {
			return f, fmt.Errorf("invalid --end: %w", err)
		}
	}
	if !f.Range.Start.IsZero() && !f.Range.End.IsZero() && f.Range.End.Before(f.Range.Start) {
		return f, fmt.Errorf("--end is before --start")
	}
	return f, nil
}

// Select returns the manager's expenses that pass the filter.
func Select(m *budget.Manager, f Filter) ([]budget.IndexedExpense, error) {
	list := m.ListExpenses(f.Range)
	if f.Category == "" || models.IsOverall(f.Category) {
		return list, nil
	}
	if _, ok := m.Category(f.Category); !ok {
		return nil, &budget.NotFoundError{Category: f.Category}
	}
	out := list[:0:0]
	for _, ie := range list {
		if ie.Category == f.Category {
			out = append(out, ie)
		}
	}
	return out, nil
}

func exportFunc(cmd *cobra.Command, _ []string) error {
	f, err := ParseFilter(category, start, end)
	if err != nil {
		return err
	}
	env, err := root.Prepare(cmd)
	if err != nil {
		return err
	}
	defer env.Container.Close()

	list, err := Select(env.Container.GetManager(), f)
	if err != nil {
		return err
	}
	rows := common.ExpenseRows(list)
	writer := env.Container.GetCSVWriter()

	if output == "" || output == "-" {
		return writer.Write(cmd.OutOrStdout(), rows)
	}
	if err := writer.WriteFile(output, rows); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d expenses to %s\n", len(rows), output)
	return nil
}
