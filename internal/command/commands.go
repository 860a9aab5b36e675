package command

import (
	"slices"
	"sort"

	"budgetbuddy/internal/budget"
	"budgetbuddy/internal/parser"
)

func buildAdd(p *parser.CommandParser, args string) (Command, error) {
	a, err := p.ParseAdd(args)
	if err != nil {
		return nil, err
	}
	return &funcCommand{name: parser.VerbAdd, run: func(m *budget.Manager) (any, error) {
		return m.AddExpense(a.Category, a.Amount, a.Description, a.DateTime)
	}}, nil
}

func buildAddRecurring(p *parser.CommandParser, args string) (Command, error) {
	a, err := p.ParseAddRecurring(args)
	if err != nil {
		return nil, err
	}
	return &funcCommand{name: parser.VerbAddRecurring, run: func(m *budget.Manager) (any, error) {
		return m.AddRecurring(budget.RecurringExpense{
			Category:      a.Category,
			Amount:        a.Amount,
			Description:   a.Description,
			Start:         a.DateTime,
			FrequencyDays: a.FrequencyDays,
			Iterations:    a.Iterations,
		})
	}}, nil
}

func buildSetBudget(p *parser.CommandParser, args string) (Command, error) {
	a, err := p.ParseSetBudget(args)
	if err != nil {
		return nil, err
	}
	return &funcCommand{name: parser.VerbSetBudget, run: func(m *budget.Manager) (any, error) {
		return m.SetBudget(a.Category, a.Amount)
	}}, nil
}

func buildCheckBudget(p *parser.CommandParser, args string) (Command, error) {
	a, err := p.ParseCheckBudget(args)
	if err != nil {
		return nil, err
	}
	return &funcCommand{name: parser.VerbCheckBudget, run: func(m *budget.Manager) (any, error) {
		return m.CheckBudget(a.Category)
	}}, nil
}

func buildEditBudget(p *parser.CommandParser, args string) (Command, error) {
	a, err := p.ParseEditBudget(args)
	if err != nil {
		return nil, err
	}
	return &funcCommand{name: parser.VerbEditBudget, run: func(m *budget.Manager) (any, error) {
		return m.EditBudget(a.Current, budget.BudgetEdit{Amount: a.Amount, NewName: a.NewName})
	}}, nil
}

func buildEditExpense(p *parser.CommandParser, args string) (Command, error) {
	a, err := p.ParseEditExpense(args)
	if err != nil {
		return nil, err
	}
	return &funcCommand{name: parser.VerbEditExpense, run: func(m *budget.Manager) (any, error) {
		return m.EditExpense(a.Index, budget.ExpenseEdit{
			Amount:      a.Amount,
			Description: a.Description,
			DateTime:    a.DateTime,
		})
	}}, nil
}

func buildDelete(p *parser.CommandParser, args string) (Command, error) {
	a, err := p.ParseDelete(args)
	if err != nil {
		return nil, err
	}
	return &funcCommand{name: parser.VerbDelete, run: func(m *budget.Manager) (any, error) {
		return m.DeleteExpense(a.Index)
	}}, nil
}

func buildFind(p *parser.CommandParser, args string) (Command, error) {
	a, err := p.ParseFind(args)
	if err != nil {
		return nil, err
	}
	return &funcCommand{name: parser.VerbFind, run: func(m *budget.Manager) (any, error) {
		return FindResult{Keyword: a.Keyword, Matches: m.FindExpenses(a.Keyword)}, nil
	}}, nil
}

func buildList(p *parser.CommandParser, args string) (Command, error) {
	a, err := p.ParseList(args)
	if err != nil {
		return nil, err
	}
	return &funcCommand{name: parser.VerbList, warnings: a.Warnings, run: func(m *budget.Manager) (any, error) {
		return ListResult{Range: a.Range, Expenses: m.ListExpenses(a.Range)}, nil
	}}, nil
}

func buildSummary(p *parser.CommandParser, args string) (Command, error) {
	a, err := p.ParseSummary(args)
	if err != nil {
		return nil, err
	}
	return &funcCommand{name: parser.VerbSummary, run: func(m *budget.Manager) (any, error) {
		return m.Summary(a.Categories...), nil
	}}, nil
}

func buildAlert(p *parser.CommandParser, args string) (Command, error) {
	a, err := p.ParseAlert(parser.VerbAlert, args)
	if err != nil {
		return nil, err
	}
	return &funcCommand{name: parser.VerbAlert, run: func(m *budget.Manager) (any, error) {
		res, err := m.SetAlert(a.Amount)
		return AlertOutcome{Action: AlertSet, AlertResult: res}, err
	}}, nil
}

func buildEditAlert(p *parser.CommandParser, args string) (Command, error) {
	a, err := p.ParseAlert(parser.VerbEditAlert, args)
	if err != nil {
		return nil, err
	}
	return &funcCommand{name: parser.VerbEditAlert, run: func(m *budget.Manager) (any, error) {
		res, err := m.EditAlert(a.Amount)
		return AlertOutcome{Action: AlertEdited, AlertResult: res}, err
	}}, nil
}

func buildDeleteAlert(p *parser.CommandParser, args string) (Command, error) {
	if err := p.ParseNoArgs(parser.VerbDeleteAlert, args); err != nil {
		return nil, err
	}
	return &funcCommand{name: parser.VerbDeleteAlert, run: func(m *budget.Manager) (any, error) {
		return AlertOutcome{Action: AlertRemoved, AlertResult: m.RemoveAlert()}, nil
	}}, nil
}

// helpOrder lists verbs in the order help prints them.
var helpOrder = []string{
	parser.VerbAdd, parser.VerbAddRecurring, parser.VerbEditExpense, parser.VerbDelete,
	parser.VerbFind, parser.VerbList, parser.VerbSetBudget, parser.VerbCheckBudget,
	parser.VerbEditBudget, parser.VerbSummary, parser.VerbAlert, parser.VerbEditAlert,
	parser.VerbDeleteAlert, parser.VerbHelp, parser.VerbBye,
}

// Usages returns every verb's syntax in help order.
func Usages() []Usage {
	out := make([]Usage, 0, len(helpOrder))
	for _, verb := range helpOrder {
		out = append(out, Usage{Verb: verb, Syntax: parser.Usages[verb]})
	}
	// Anything registered in parser.Usages but missing from helpOrder goes last.
	var extra []string
	for verb := range parser.Usages {
		if !slices.Contains(helpOrder, verb) {
			extra = append(extra, verb)
		}
	}
	sort.Strings(extra)
	for _, verb := range extra {
		out = append(out, Usage{Verb: verb, Syntax: parser.Usages[verb]})
	}
	return out
}

func buildHelp(_ *parser.CommandParser, _ string) (Command, error) {
	return &funcCommand{name: parser.VerbHelp, run: func(*budget.Manager) (any, error) {
		return HelpResult{Usages: Usages()}, nil
	}}, nil
}

func buildBye(_ *parser.CommandParser, _ string) (Command, error) {
	return &funcCommand{name: parser.VerbBye, exit: true, run: func(*budget.Manager) (any, error) {
		return ExitResult{}, nil
	}}, nil
}
