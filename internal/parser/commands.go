package parser

import (
	"strings"
	"time"

	"budgetbuddy/internal/dateutils"
	"budgetbuddy/internal/logging"
	"budgetbuddy/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Command verbs.
const (
	VerbAdd          = "add"
	VerbAddRecurring = "add-recurring"
	VerbSetBudget    = "set-budget"
	VerbCheckBudget  = "check-budget"
	VerbEditBudget   = "edit-budget"
	VerbEditExpense  = "edit-expense"
	VerbDelete       = "delete"
	VerbFind         = "find"
	VerbList         = "list"
	VerbSummary      = "summary"
	VerbAlert        = "alert"
	VerbEditAlert    = "edit-alert"
	VerbDeleteAlert  = "delete-alert"
	VerbHelp         = "help"
	VerbBye          = "bye"
)

// Usages maps each verb to its syntax line.
var Usages = map[string]string{
	VerbAdd:          "add <AMOUNT> c/<CATEGORY> d/<DESCRIPTION> [t/<MMM dd yyyy 'at' HH:mm>]",
	VerbAddRecurring: "add-recurring <AMOUNT> c/<CATEGORY> d/<DESCRIPTION> t/<MMM dd yyyy 'at' HH:mm> f/<FREQUENCY_DAYS> i/<ITERATIONS>",
	VerbSetBudget:    "set-budget [c/<CATEGORY>] <AMOUNT>",
	VerbCheckBudget:  "check-budget [c/<CATEGORY>]",
	VerbEditBudget:   "edit-budget old/<NAME> [a/<AMOUNT>] [c/<NEW_NAME>]",
	VerbEditExpense:  "edit-expense <INDEX> [a/<AMOUNT>] [d/<DESCRIPTION>] [t/<MMM dd yyyy 'at' HH:mm>]",
	VerbDelete:       "delete <INDEX>",
	VerbFind:         "find <KEYWORD>",
	VerbList:         "list [start/<MMM dd yyyy 'at' HH:mm>] [end/<MMM dd yyyy 'at' HH:mm>]",
	VerbSummary:      "summary [c/<CATEGORY>[, <CATEGORY>...]]",
	VerbAlert:        "alert <AMOUNT>",
	VerbEditAlert:    "edit-alert <AMOUNT>",
	VerbDeleteAlert:  "delete-alert",
	VerbHelp:         "help",
	VerbBye:          "bye",
}

// Marker tokens.
const (
	MarkerCategory    = "c/"
	MarkerDescription = "d/"
	MarkerTime        = "t/"
	MarkerFrequency   = "f/"
	MarkerIterations  = "i/"
	MarkerAmount      = "a/"
	MarkerOld         = "old/"
	MarkerStart       = "start/"
	MarkerEnd         = "end/"
)

// AddArgs is the parsed form of "add".
type AddArgs struct {
	Amount      decimal.Decimal
	Category    string
	Description string
	// DateTime is the raw t/ value; empty means now.
	DateTime string
}

// RecurringArgs is the parsed form of "add-recurring".
type RecurringArgs struct {
	AddArgs
	FrequencyDays int
	Iterations    int
}

// SetBudgetArgs is the parsed form of "set-budget". An empty category means Overall.
type SetBudgetArgs struct {
	Category string
	Amount   decimal.Decimal
}

// CheckBudgetArgs is the parsed form of "check-budget".
type CheckBudgetArgs struct {
	Category string
}

// EditBudgetArgs is the parsed form of "edit-budget".
type EditBudgetArgs struct {
	Current string
	Amount  decimal.NullDecimal
	NewName string
}

// EditExpenseArgs is the parsed form of "edit-expense".
type EditExpenseArgs struct {
	Index       int
	Amount      decimal.NullDecimal
	Description string
	DateTime    string
}

// IndexArgs is the parsed form of "delete".
type IndexArgs struct {
	Index int
}

// FindArgs is the parsed form of "find".
type FindArgs struct {
	Keyword string
}

// ListArgs is the parsed form of "list". Warnings explain bounds that were
// ignored; any warning widens Range to the full listing.
type ListArgs struct {
	Range    dateutils.Range
	Warnings []string
}

// SummaryArgs is the parsed form of "summary". No categories means all.
type SummaryArgs struct {
	Categories []string
}

// AlertArgs is the parsed form of "alert" and "edit-alert".
type AlertArgs struct {
	Amount decimal.Decimal
}

// CommandParser turns argument text into typed arguments, one method per verb.
type CommandParser struct {
	logger logging.Logger
	limits Limits
}

// NewCommandParser creates a parser. A nil logger gets a default one.
func NewCommandParser(logger logging.Logger, limits Limits) *CommandParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("warn", "text")
	}
	return &CommandParser{logger: logger, limits: limits}
}

// Limits returns the bounds in use.
func (p *CommandParser) Limits() Limits {
	return p.limits
}

// SplitVerb separates the lowercased verb from the rest of the line.
func SplitVerb(line string) (verb, args string) {
	line = strings.TrimSpace(line)
	if idx := strings.IndexAny(line, " \t"); idx >= 0 {
		return strings.ToLower(line[:idx]), strings.TrimSpace(line[idx+1:])
	}
	return strings.ToLower(line), ""
}

func layout(verb, leading string, markers ...Marker) Layout {
	return Layout{Command: verb, Usage: Usages[verb], Leading: leading, Markers: markers}
}

// ParseAdd parses "<AMOUNT> c/<CATEGORY> d/<DESCRIPTION> [t/<DATETIME>]".
func (p *CommandParser) ParseAdd(args string) (AddArgs, error) {
	l := layout(VerbAdd, "amount",
		Marker{Token: MarkerCategory, Name: "category", AllowBlank: true},
		Marker{Token: MarkerDescription, Name: "description"},
		Marker{Token: MarkerTime, Name: "date/time", Optional: true, AllowBlank: true},
	)
	fields, err := l.Split(args)
	if err != nil {
		return AddArgs{}, err
	}

	amount, err := p.amount(VerbAdd, "amount", fields.Leading, p.limits.MaxExpenseAmount)
	if err != nil {
		return AddArgs{}, err
	}

	p.logger.Debug("Parsed add command",
		logging.F(logging.FieldAmount, amount.String()),
		logging.F(logging.FieldCategory, fields.Get(MarkerCategory)))

	return AddArgs{
		Amount:      amount,
		Category:    fields.Get(MarkerCategory),
		Description: fields.Get(MarkerDescription),
		DateTime:    fields.Get(MarkerTime),
	}, nil
}

// ParseAddRecurring parses the add layout plus f/ and i/; every field is required.
func (p *CommandParser) ParseAddRecurring(args string) (RecurringArgs, error) {
	l := layout(VerbAddRecurring, "amount",
		Marker{Token: MarkerCategory, Name: "category"},
		Marker{Token: MarkerDescription, Name: "description"},
		Marker{Token: MarkerTime, Name: "start date/time"},
		Marker{Token: MarkerFrequency, Name: "frequency"},
		Marker{Token: MarkerIterations, Name: "iterations"},
	)
	fields, err := l.Split(args)
	if err != nil {
		return RecurringArgs{}, err
	}

	amount, err := p.amount(VerbAddRecurring, "amount", fields.Leading, p.limits.MaxExpenseAmount)
	if err != nil {
		return RecurringArgs{}, err
	}
	freq, err := p.boundedInt(VerbAddRecurring, "frequency", fields.Get(MarkerFrequency), 1, p.limits.MaxFrequencyDays)
	if err != nil {
		return RecurringArgs{}, err
	}
	iterations, err := p.boundedInt(VerbAddRecurring, "iterations", fields.Get(MarkerIterations), 1, p.limits.MaxIterations)
	if err != nil {
		return RecurringArgs{}, err
	}

	return RecurringArgs{
		AddArgs: AddArgs{
			Amount:      amount,
			Category:    fields.Get(MarkerCategory),
			Description: fields.Get(MarkerDescription),
			DateTime:    fields.Get(MarkerTime),
		},
		FrequencyDays: freq,
		Iterations:    iterations,
	}, nil
}

// ParseSetBudget accepts "[c/<CATEGORY>] <AMOUNT>" and "<AMOUNT> c/<CATEGORY>".
// In the first form the amount is the last word of the c/ field.
func (p *CommandParser) ParseSetBudget(args string) (SetBudgetArgs, error) {
	l := layout(VerbSetBudget, "amount",
		Marker{Token: MarkerCategory, Name: "category", Optional: true, AllowBlank: true},
	)
	l.LeadingOptional = true
	fields, err := l.Split(args)
	if err != nil {
		return SetBudgetArgs{}, err
	}

	amountText := fields.Leading
	category := fields.Get(MarkerCategory)
	if amountText == "" {
		words := strings.Fields(category)
		switch {
		case len(words) == 0:
			return SetBudgetArgs{}, &parsererror.EmptyFieldsError{Command: VerbSetBudget, Fields: []string{"amount"}}
		case len(words) == 1 && (!looksNumeric(words[0]) || strings.Contains(args, MarkerCategory+words[0])):
			// "c/100" names a category "100" and gives no amount.
			return SetBudgetArgs{}, &parsererror.EmptyFieldsError{Command: VerbSetBudget, Fields: []string{"amount"}}
		}
		amountText = words[len(words)-1]
		category = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(category), amountText))
	}

	amount, err := p.amount(VerbSetBudget, "amount", amountText, p.limits.MaxBudgetAmount)
	if err != nil {
		return SetBudgetArgs{}, err
	}
	return SetBudgetArgs{Category: category, Amount: amount}, nil
}

// ParseCheckBudget parses "[c/<CATEGORY>]"; blank means Overall.
func (p *CommandParser) ParseCheckBudget(args string) (CheckBudgetArgs, error) {
	l := layout(VerbCheckBudget, "",
		Marker{Token: MarkerCategory, Name: "category", Optional: true, AllowBlank: true},
	)
	fields, err := l.Split(args)
	if err != nil {
		return CheckBudgetArgs{}, err
	}
	return CheckBudgetArgs{Category: fields.Get(MarkerCategory)}, nil
}

// ParseEditBudget parses "old/<NAME> [a/<AMOUNT>] [c/<NEW_NAME>]".
func (p *CommandParser) ParseEditBudget(args string) (EditBudgetArgs, error) {
	l := layout(VerbEditBudget, "",
		Marker{Token: MarkerOld, Name: "current name"},
		Marker{Token: MarkerAmount, Name: "amount", Optional: true},
		Marker{Token: MarkerCategory, Name: "new name", Optional: true},
	)
	fields, err := l.Split(args)
	if err != nil {
		return EditBudgetArgs{}, err
	}
	if !fields.Has(MarkerAmount) && !fields.Has(MarkerCategory) {
		return EditBudgetArgs{}, &parsererror.ValidationError{
			Command: VerbEditBudget,
			Reason:  "specify at least one of a/ or c/",
			Usage:   l.Usage,
		}
	}

	out := EditBudgetArgs{Current: fields.Get(MarkerOld), NewName: fields.Get(MarkerCategory)}
	if fields.Has(MarkerAmount) {
		amount, err := p.amount(VerbEditBudget, "amount", fields.Get(MarkerAmount), p.limits.MaxBudgetAmount)
		if err != nil {
			return EditBudgetArgs{}, err
		}
		out.Amount = decimal.NewNullDecimal(amount)
	}
	return out, nil
}

// ParseEditExpense parses "<INDEX> [a/<AMOUNT>] [d/<DESCRIPTION>] [t/<DATETIME>]".
func (p *CommandParser) ParseEditExpense(args string) (EditExpenseArgs, error) {
	l := layout(VerbEditExpense, "index",
		Marker{Token: MarkerAmount, Name: "amount", Optional: true},
		Marker{Token: MarkerDescription, Name: "description", Optional: true},
		Marker{Token: MarkerTime, Name: "date/time", Optional: true},
	)
	fields, err := l.Split(args)
	if err != nil {
		return EditExpenseArgs{}, err
	}

	index, err := parseIndex(VerbEditExpense, fields.Leading)
	if err != nil {
		return EditExpenseArgs{}, err
	}
	if !fields.Has(MarkerAmount) && !fields.Has(MarkerDescription) && !fields.Has(MarkerTime) {
		return EditExpenseArgs{}, &parsererror.ValidationError{
			Command: VerbEditExpense,
			Reason:  "specify at least one of a/, d/ or t/",
			Usage:   l.Usage,
		}
	}

	out := EditExpenseArgs{
		Index:       index,
		Description: fields.Get(MarkerDescription),
		DateTime:    fields.Get(MarkerTime),
	}
	if fields.Has(MarkerAmount) {
		amount, err := p.amount(VerbEditExpense, "amount", fields.Get(MarkerAmount), p.limits.MaxExpenseAmount)
		if err != nil {
			return EditExpenseArgs{}, err
		}
		out.Amount = decimal.NewNullDecimal(amount)
	}
	return out, nil
}

// ParseDelete parses "<INDEX>".
func (p *CommandParser) ParseDelete(args string) (IndexArgs, error) {
	fields, err := layout(VerbDelete, "index").Split(args)
	if err != nil {
		return IndexArgs{}, err
	}
	index, err := parseIndex(VerbDelete, fields.Leading)
	if err != nil {
		return IndexArgs{}, err
	}
	return IndexArgs{Index: index}, nil
}

// ParseFind takes the whole argument text as the keyword.
func (p *CommandParser) ParseFind(args string) (FindArgs, error) {
	fields, err := layout(VerbFind, "keyword").Split(args)
	if err != nil {
		return FindArgs{}, err
	}
	return FindArgs{Keyword: fields.Leading}, nil
}

// ParseList parses "[start/<DATETIME>] [end/<DATETIME>]". A blank or
// unparsable bound is not an error: it produces a warning and the full list.
func (p *CommandParser) ParseList(args string) (ListArgs, error) {
	l := layout(VerbList, "",
		Marker{Token: MarkerStart, Name: "start", Optional: true, AllowBlank: true},
		Marker{Token: MarkerEnd, Name: "end", Optional: true, AllowBlank: true},
	)
	fields, err := l.Split(args)
	if err != nil {
		return ListArgs{}, err
	}

	var out ListArgs
	bound := func(token, name string) (time.Time, bool) {
		if !fields.Has(token) {
			return time.Time{}, false
		}
		value := fields.Get(token)
		if value == "" {
			out.Warnings = append(out.Warnings, name+" date is empty, showing all expenses")
			return time.Time{}, false
		}
		t, err := dateutils.Parse(value)
		if err != nil {
			out.Warnings = append(out.Warnings, "could not read "+name+" date '"+value+"', showing all expenses")
			return time.Time{}, false
		}
		return t, true
	}
	start, hasStart := bound(MarkerStart, "start")
	end, hasEnd := bound(MarkerEnd, "end")

	if len(out.Warnings) > 0 {
		return out, nil
	}
	if hasStart && hasEnd && end.Before(start) {
		return ListArgs{}, &parsererror.ValidationError{
			Command: VerbList,
			Reason:  "end date must not be before start date",
			Usage:   l.Usage,
		}
	}
	out.Range = dateutils.Range{Start: start, End: end}
	return out, nil
}

// ParseSummary parses "[c/<CATEGORY>[, <CATEGORY>...]]".
func (p *CommandParser) ParseSummary(args string) (SummaryArgs, error) {
	l := layout(VerbSummary, "",
		Marker{Token: MarkerCategory, Name: "category", Optional: true},
	)
	fields, err := l.Split(args)
	if err != nil {
		return SummaryArgs{}, err
	}
	if !fields.Has(MarkerCategory) {
		return SummaryArgs{}, nil
	}

	var out SummaryArgs
	seen := make(map[string]bool)
	for _, name := range strings.Split(fields.Get(MarkerCategory), ",") {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out.Categories = append(out.Categories, name)
	}
	if len(out.Categories) == 0 {
		return SummaryArgs{}, &parsererror.EmptyFieldsError{Command: VerbSummary, Fields: []string{"category (c/)"}}
	}
	return out, nil
}

// ParseAlert parses "<AMOUNT>" for alert and edit-alert.
func (p *CommandParser) ParseAlert(verb, args string) (AlertArgs, error) {
	fields, err := layout(verb, "amount").Split(args)
	if err != nil {
		return AlertArgs{}, err
	}
	amount, err := p.amount(verb, "amount", fields.Leading, p.limits.MaxAlertAmount)
	if err != nil {
		return AlertArgs{}, err
	}
	return AlertArgs{Amount: amount}, nil
}

// ParseNoArgs rejects any argument text, for verbs such as delete-alert.
func (p *CommandParser) ParseNoArgs(verb, args string) error {
	_, err := layout(verb, "").Split(args)
	return err
}
