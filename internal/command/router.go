package command

import (
	"fmt"

	"budgetbuddy/internal/budget"
	"budgetbuddy/internal/logging"
	"budgetbuddy/internal/parser"
	"budgetbuddy/internal/parsererror"
)

type builder func(p *parser.CommandParser, args string) (Command, error)

// Router maps verbs to commands.
type Router struct {
	parser   *parser.CommandParser
	logger   logging.Logger
	builders map[string]builder
}

// NewRouter creates a router over p.
func NewRouter(p *parser.CommandParser, logger logging.Logger) *Router {
	if logger == nil {
		logger = logging.NewLogrusAdapter("warn", "text")
	}
	if p == nil {
		p = parser.NewCommandParser(logger, parser.DefaultLimits())
	}
	return &Router{
		parser: p,
		logger: logger,
		builders: map[string]builder{
			parser.VerbAdd:          buildAdd,
			parser.VerbAddRecurring: buildAddRecurring,
			parser.VerbSetBudget:    buildSetBudget,
			parser.VerbCheckBudget:  buildCheckBudget,
			parser.VerbEditBudget:   buildEditBudget,
			parser.VerbEditExpense:  buildEditExpense,
			parser.VerbDelete:       buildDelete,
			parser.VerbFind:         buildFind,
			parser.VerbList:         buildList,
			parser.VerbSummary:      buildSummary,
			parser.VerbAlert:        buildAlert,
			parser.VerbEditAlert:    buildEditAlert,
			parser.VerbDeleteAlert:  buildDeleteAlert,
			parser.VerbHelp:         buildHelp,
			parser.VerbBye:          buildBye,
		},
	}
}

// Parse turns a raw line into a Command.
func (r *Router) Parse(line string) (Command, error) {
	verb, args := parser.SplitVerb(line)
	build, ok := r.builders[verb]
	if !ok {
		return nil, &parsererror.UnknownCommandError{Verb: verb}
	}
	return build(r.parser, args)
}

// Run parses and executes line against m.
func (r *Router) Run(m *budget.Manager, line string) (Outcome, error) {
	cmd, err := r.Parse(line)
	if err != nil {
		r.logger.Debug("Rejected command line",
			logging.F(logging.FieldError, err.Error()))
		return Outcome{}, err
	}

	out, err := cmd.Execute(m)
	if err != nil {
		r.logger.Debug("Command failed",
			logging.F(logging.FieldCommand, cmd.Name()),
			logging.F(logging.FieldError, err.Error()))
		return out, fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	r.logger.Debug("Command executed", logging.F(logging.FieldCommand, cmd.Name()))
	return out, nil
}
