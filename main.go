package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"budgetbuddy/cmd/export"
	"budgetbuddy/cmd/report"
	"budgetbuddy/cmd/root"
	"budgetbuddy/cmd/run"
	"budgetbuddy/internal/config"
	"budgetbuddy/internal/logging"

	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	config.LoadEnv()

	// 2. Build the early command logger before anything logs
	root.Log = logging.NewLogrusAdapter(configureLogLevelDirectly().String(), "text")

	// 3. Initialize root command and add subcommands
	root.Init()
	root.Cmd.AddCommand(run.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(report.Cmd)
}

// configureLogLevelDirectly reads LOG_LEVEL, falling back to warn.
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := config.GetEnv(config.LogLevelEnv, "warn")
	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.WarnLevel
	}
	return logLevel
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
