// Package common provides shared file helpers for the CLI commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"

	"budgetbuddy/internal/budget"
	"budgetbuddy/internal/currencyutils"
	"budgetbuddy/internal/dateutils"
	"budgetbuddy/internal/fileutils"
	"budgetbuddy/internal/logging"
	"budgetbuddy/internal/models"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter is used when no delimiter is configured.
const DefaultDelimiter rune = ','

// ExpenseRow is one line of an expense export.
type ExpenseRow struct {
	Index       int    `csv:"Index"`
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
}

// ExpenseRows converts listed expenses to export rows. Expenses that
// belong to no named category are labelled Overall.
func ExpenseRows(list []budget.IndexedExpense) []ExpenseRow {
	rows := make([]ExpenseRow, 0, len(list))
	for _, ie := range list {
		category := ie.Category
		if category == "" {
			category = models.OverallCategory
		}
		rows = append(rows, ExpenseRow{
			Index:       ie.Index,
			Date:        dateutils.FormatDateTime(ie.Expense.Timestamp),
			Description: ie.Expense.Description,
			Amount:      currencyutils.FormatPlain(ie.Expense.Amount),
			Category:    category,
		})
	}
	return rows
}

// CSVWriter writes gocsv-tagged rows with a configurable delimiter.
type CSVWriter struct {
	logger    logging.Logger
	delimiter rune
}

// NewCSVWriter creates a writer. A zero delimiter means DefaultDelimiter.
func NewCSVWriter(logger logging.Logger, delimiter rune) *CSVWriter {
	if logger == nil {
		logger = logging.NewLogrusAdapter("warn", "text")
	}
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	return &CSVWriter{logger: logger, delimiter: delimiter}
}

// Delimiter returns the configured separator.
func (w *CSVWriter) Delimiter() rune {
	return w.delimiter
}

// Write marshals rows to out.
func (w *CSVWriter) Write(out io.Writer, rows []ExpenseRow) error {
	if rows == nil {
		rows = []ExpenseRow{}
	}
	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = w.delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		w.logger.WithError(err).Error("Failed to marshal expenses to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteFile writes rows to path, creating parent directories.
func (w *CSVWriter) WriteFile(path string, rows []ExpenseRow) error {
	logger := w.logger.WithFields(
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(rows)))
	logger.Info("Writing expenses to CSV file")

	file, err := fileutils.CreateFile(path, models.PermissionReportFile)
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	return w.Write(file, rows)
}
