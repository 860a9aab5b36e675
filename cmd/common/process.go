// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"errors"
	"fmt"
	"io"

	"budgetbuddy/internal/budget"
	"budgetbuddy/internal/config"
	"budgetbuddy/internal/container"
	"budgetbuddy/internal/logging"
	"budgetbuddy/internal/store"
	"budgetbuddy/internal/ui"
)

// Overrides are command-line values that take precedence over config.
type Overrides struct {
	DataPath string
	Backend  string
}

// LoadConfig reads the configuration and applies overrides.
func LoadConfig(o Overrides) (*config.Config, error) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return nil, err
	}
	return ApplyOverrides(cfg, o)
}

// ApplyOverrides copies non-empty overrides into cfg and re-validates it.
func ApplyOverrides(cfg *config.Config, o Overrides) (*config.Config, error) {
	if o.DataPath != "" {
		cfg.Storage.Path = o.DataPath
	}
	if o.Backend != "" {
		cfg.Storage.Backend = o.Backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Open builds the container and restores saved data. Load diagnostics are
// printed through r.
func Open(ctx context.Context, cfg *config.Config, r *ui.Renderer) (*container.Container, error) {
	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	loaded, err := c.Load(ctx)
	if err := ReportLoad(r, loaded, err); err != nil {
		_ = c.Close()
		return nil, err
	}
	c.GetLogger().Info("Budget data loaded",
		logging.F(logging.FieldFile, cfg.DataPath()),
		logging.F(logging.FieldCount, loaded.Expenses))
	return c, nil
}

// ReportLoad prints what Restore skipped or repaired. A corrupt store is
// shown as a warning; any other load error is returned.
func ReportLoad(r *ui.Renderer, loaded budget.LoadReport, err error) error {
	var corrupt *store.CorruptDataError
	switch {
	case errors.As(err, &corrupt):
		r.Warning(corrupt.Error() + ". Starting with empty data.")
	case err != nil:
		return err
	}
	for _, msg := range loaded.Skipped {
		r.Warning("skipped stored record: " + msg)
	}
	for _, msg := range loaded.Repaired {
		r.Warning("repaired stored record: " + msg)
	}
	return nil
}

// Persister is the part of the container used to finish a command.
type Persister interface {
	Save(ctx context.Context) error
	Close() error
}

// SaveAndClose saves state then releases storage. Both steps run; the
// first error is returned. The save ignores cancellation of ctx so an
// interrupted session still keeps its changes.
func SaveAndClose(ctx context.Context, p Persister, log logging.Logger) error {
	saveErr := p.Save(context.WithoutCancel(ctx))
	if saveErr != nil {
		log.WithError(saveErr).Error("Failed to save budget data")
	}
	if err := p.Close(); err != nil {
		log.WithError(err).Warn("Failed to close storage")
		if saveErr == nil {
			return err
		}
	}
	return saveErr
}

// RunLines executes each line in order and stops early on bye. It returns
// the number of lines that failed.
func RunLines(c *container.Container, out io.Writer, lines []string) int {
	s := c.NewSession(out)
	failed := 0
	for _, line := range lines {
		exit, err := s.Execute(line)
		if err != nil {
			failed++
		}
		if exit {
			break
		}
	}
	return failed
}
