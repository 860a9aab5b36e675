// Package report prints a machine-readable budget summary
package report

import (
	"fmt"
	"os"

	"budgetbuddy/cmd/root"
	"budgetbuddy/internal/models"

	"github.com/spf13/cobra"
)

var (
	format     string
	categories []string
	output     string
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Print a budget summary as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE:  reportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	Cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "Only report these categories (repeatable or comma separated)")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
}

func reportFunc(cmd *cobra.Command, _ []string) error {
	env, err := root.Prepare(cmd)
	if err != nil {
		return err
	}
	defer env.Container.Close()

	g := env.Container.GetReportGenerator()
	doc := g.Build(env.Container.GetManager(), categories...)
	data, err := g.GenerateReport(doc, format)
	if err != nil {
		return err
	}

	if output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(output, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return nil
}
