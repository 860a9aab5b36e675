// Package container provides dependency injection for budgetbuddy.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"errors"
	"fmt"
	"io"

	"budgetbuddy/internal/budget"
	"budgetbuddy/internal/command"
	"budgetbuddy/internal/common"
	"budgetbuddy/internal/config"
	"budgetbuddy/internal/logging"
	"budgetbuddy/internal/parser"
	"budgetbuddy/internal/report"
	"budgetbuddy/internal/session"
	"budgetbuddy/internal/store"
	"budgetbuddy/internal/ui"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger  logging.Logger
	config  *config.Config
	store   store.Store
	parser  *parser.CommandParser
	manager *budget.Manager
	router  *command.Router
	csv     *common.CSVWriter
	reports *report.ReportGenerator
}

// NewContainer creates and wires all application dependencies. The logger
// is built from the configuration.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(ctx, cfg, cfg.NewLogger())
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	st, err := store.New(ctx, store.Options{
		Backend:       cfg.Storage.Backend,
		Path:          cfg.DataPath(),
		BackupEnabled: cfg.Storage.BackupEnabled,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	limits := parser.Limits{
		MaxExpenseAmount: config.DecimalLimit(cfg.Limits.MaxExpenseAmount),
		MaxBudgetAmount:  config.DecimalLimit(cfg.Limits.MaxBudgetAmount),
		MaxAlertAmount:   config.DecimalLimit(cfg.Limits.MaxAlertAmount),
		MaxFrequencyDays: cfg.Limits.MaxFrequencyDays,
		MaxIterations:    cfg.Limits.MaxIterations,
	}
	p := parser.NewCommandParser(logger, limits)
	manager := budget.NewManager(logger,
		budget.WithRecurringBounds(limits.MaxFrequencyDays, limits.MaxIterations))

	logger.Debug("Container initialized",
		logging.F(logging.FieldBackend, cfg.Storage.Backend),
		logging.F(logging.FieldFile, cfg.DataPath()))

	return &Container{
		logger:  logger,
		config:  cfg,
		store:   st,
		parser:  p,
		manager: manager,
		router:  command.NewRouter(p, logger),
		csv:     common.NewCSVWriter(logger, cfg.Delimiter()),
		reports: report.NewReportGenerator(logger),
	}, nil
}

// Load restores the manager from storage. A store file that could not be
// decoded is reported as *store.CorruptDataError alongside an empty state;
// the manager is usable in both cases.
func (c *Container) Load(ctx context.Context) (budget.LoadReport, error) {
	snap, err := c.store.Load(ctx)
	var corrupt *store.CorruptDataError
	if err != nil && !errors.As(err, &corrupt) {
		return budget.LoadReport{}, fmt.Errorf("failed to load budget data: %w", err)
	}
	if snap.IsEmpty() {
		c.logger.Info("No saved budget data, starting fresh")
	}
	loaded := c.manager.Restore(snap)
	return loaded, err
}

// Save writes the manager state to storage.
func (c *Container) Save(ctx context.Context) error {
	if err := c.store.Save(ctx, c.manager.Snapshot()); err != nil {
		return fmt.Errorf("failed to save budget data: %w", err)
	}
	return nil
}

// NewRenderer returns a renderer writing to out, coloured per display.color.
func (c *Container) NewRenderer(out io.Writer) *ui.Renderer {
	return ui.NewRenderer(out, c.config.Display.Color)
}

// NewSession returns an interactive session rendering to out.
func (c *Container) NewSession(out io.Writer) *session.Session {
	return session.New(c.router, c.manager, c.NewRenderer(out), c.logger)
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the storage backend.
func (c *Container) GetStore() store.Store {
	return c.store
}

// GetManager returns the budget manager.
func (c *Container) GetManager() *budget.Manager {
	return c.manager
}

// GetRouter returns the command router.
func (c *Container) GetRouter() *command.Router {
	return c.router
}

// GetCSVWriter returns the export writer.
func (c *Container) GetCSVWriter() *common.CSVWriter {
	return c.csv
}

// GetReportGenerator returns the summary report generator.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// Close releases the storage backend.
func (c *Container) Close() error {
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	c.logger.Debug("Container closed")
	return nil
}
