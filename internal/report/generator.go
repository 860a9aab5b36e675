// Package report renders budget summaries as JSON or YAML documents.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"budgetbuddy/internal/budget"
	"budgetbuddy/internal/currencyutils"
	"budgetbuddy/internal/dateutils"
	"budgetbuddy/internal/logging"

	"gopkg.in/yaml.v3"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Summary is the document written by the report command.
type Summary struct {
	GeneratedAt string         `json:"generated_at" yaml:"generated_at"`
	Alert       *AlertSection  `json:"alert,omitempty" yaml:"alert,omitempty"`
	Budgets     []BudgetReport `json:"budgets" yaml:"budgets"`
	Missing     []string       `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// BudgetReport is one ledger in the summary. Amounts are plain two-decimal
// strings.
type BudgetReport struct {
	Category     string `json:"category" yaml:"category"`
	Limit        string `json:"limit" yaml:"limit"`
	Spent        string `json:"spent" yaml:"spent"`
	Remaining    string `json:"remaining" yaml:"remaining"`
	ExpenseCount int    `json:"expense_count" yaml:"expense_count"`
	State        string `json:"state" yaml:"state"`
}

// AlertSection describes an active alert.
type AlertSection struct {
	Threshold string `json:"threshold" yaml:"threshold"`
	Exceeded  bool   `json:"exceeded" yaml:"exceeded"`
}

// ReportGenerator builds and encodes summary documents.
type ReportGenerator struct {
	logger logging.Logger
	now    func() time.Time
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("warn", "text")
	}
	return &ReportGenerator{
		logger: logger.WithField("component", "ReportGenerator"),
		now:    time.Now,
	}
}

// Build assembles a Summary from the manager, limited to categories when
// any are given.
func (g *ReportGenerator) Build(m *budget.Manager, categories ...string) Summary {
	res := m.Summary(categories...)
	doc := Summary{
		GeneratedAt: dateutils.FormatStored(g.now()),
		Missing:     res.Missing,
	}
	for _, st := range res.Budgets {
		doc.Budgets = append(doc.Budgets, BudgetReport{
			Category:     st.Category,
			Limit:        currencyutils.FormatPlain(st.Limit),
			Spent:        currencyutils.FormatPlain(st.Spent),
			Remaining:    currencyutils.FormatPlain(st.Remaining),
			ExpenseCount: st.ExpenseCount,
			State:        st.State.String(),
		})
	}
	if alert := m.Alert(); alert.Active() {
		doc.Alert = &AlertSection{
			Threshold: currencyutils.FormatPlain(alert.Amount()),
			Exceeded:  alert.Exceeded(m.TotalExpenses()),
		}
	}
	return doc
}

// GenerateReport encodes doc in the given format (json or yaml).
func (g *ReportGenerator) GenerateReport(doc Summary, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return g.generateJSONReport(doc)
	case FormatYAML, "yml":
		return g.generateYAMLReport(doc)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateJSONReport(doc Summary) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

func (g *ReportGenerator) generateYAMLReport(doc Summary) ([]byte, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return out, nil
}
