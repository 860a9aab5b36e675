// Package root contains the root command for the application
package root

import (
	"fmt"

	"budgetbuddy/cmd/common"
	"budgetbuddy/internal/container"
	"budgetbuddy/internal/logging"
	"budgetbuddy/internal/ui"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger for commands until a container provides one.
	Log logging.Logger = logging.NewLogrusAdapter("warn", "text")

	// Flags holds the persistent overrides shared by every command.
	Flags = common.Overrides{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "budgetbuddy",
		Short: "A command-line expense and budget tracker.",
		Long: `budgetbuddy records expenses, keeps per-category budgets with limits,
raises a global spending alert and summarises where the money went.

Run without arguments for an interactive session; type 'help' inside it.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          interactive,
	}
)

// Environment is what a command needs once data is loaded.
type Environment struct {
	Container *container.Container
	Renderer  *ui.Renderer
}

// Init registers the persistent flags. Calling it again is a no-op.
func Init() {
	if Cmd.PersistentFlags().Lookup("data") != nil {
		return
	}
	Cmd.PersistentFlags().StringVarP(&Flags.DataPath, "data", "d", "", "Budget data file or database (overrides storage.path)")
	Cmd.PersistentFlags().StringVarP(&Flags.Backend, "backend", "b", "", "Storage backend: yaml or sqlite (overrides storage.backend)")
}

// Prepare loads configuration, opens storage and restores saved data.
func Prepare(cmd *cobra.Command) (*Environment, error) {
	cfg, err := common.LoadConfig(Flags)
	if err != nil {
		return nil, err
	}
	r := ui.NewRenderer(cmd.OutOrStdout(), cfg.Display.Color)
	c, err := common.Open(cmd.Context(), cfg, r)
	if err != nil {
		return nil, err
	}
	Log = c.GetLogger()
	return &Environment{Container: c, Renderer: r}, nil
}

func interactive(cmd *cobra.Command, _ []string) error {
	env, err := Prepare(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	env.Renderer.Welcome()
	stats, runErr := env.Container.NewSession(cmd.OutOrStdout()).Run(ctx, cmd.InOrStdin())
	if runErr == nil && !stats.Exited {
		env.Renderer.Goodbye()
	}

	if err := common.SaveAndClose(ctx, env.Container, Log); err != nil {
		return fmt.Errorf("your changes could not be saved: %w", err)
	}
	return runErr
}
