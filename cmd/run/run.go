// Package run executes command lines non-interactively
package run

import (
	"fmt"

	"budgetbuddy/cmd/common"
	"budgetbuddy/cmd/root"
	"budgetbuddy/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the run command
var Cmd = &cobra.Command{
	Use:   "run <command> [<command>...]",
	Short: "Run session commands without the interactive prompt",
	Long: `Run executes each argument as one session command, in order, then saves.

  budgetbuddy run "set-budget c/Food 300" "add 12.50 c/Food d/lunch"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFunc,
}

func runFunc(cmd *cobra.Command, args []string) error {
	env, err := root.Prepare(cmd)
	if err != nil {
		return err
	}

	failed := common.RunLines(env.Container, cmd.OutOrStdout(), args)
	root.Log.Info("Commands executed",
		logging.F(logging.FieldCount, len(args)),
		logging.F("failed", failed))

	if err := common.SaveAndClose(cmd.Context(), env.Container, root.Log); err != nil {
		return fmt.Errorf("your changes could not be saved: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d commands failed", failed, len(args))
	}
	return nil
}
