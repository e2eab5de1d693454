package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/moneymanager"
	"github.com/etnz/moneymanager/date"
	"github.com/etnz/moneymanager/renderer"
	"github.com/etnz/moneymanager/suggest"
	"github.com/google/subcommands"
)

// splitList splits a comma separated list, dropping blank items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// txFlags are the transaction fields shared by add and edit.
type txFlags struct {
	account     string
	typ         string
	amount      string
	description string
	date        string
	category    string
	tags        string
	notes       string
	pin         bool
	recurring   bool
	attach      string
	lat, lon    float64
}

func (p *txFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.account, "a", "", "Account id.")
	f.StringVar(&p.typ, "type", string(moneymanager.Expense), "Transaction type, expense or income.")
	f.StringVar(&p.amount, "amount", "", "Amount, a positive decimal like 12.50.")
	f.StringVar(&p.description, "desc", "", "Description.")
	f.StringVar(&p.date, "d", "", "Date (YYYY-MM-DD). Defaults to today.")
	f.StringVar(&p.category, "c", "", "Category.")
	f.StringVar(&p.tags, "tags", "", "Comma separated tags.")
	f.StringVar(&p.notes, "notes", "", "Free text notes.")
	f.BoolVar(&p.pin, "pin", false, "Pin the transaction on top of lists.")
	f.BoolVar(&p.recurring, "recurring", false, "Repeat the transaction every month.")
	f.StringVar(&p.attach, "attach", "", "Comma separated image files to attach.")
	f.Float64Var(&p.lat, "lat", 0, "Latitude where the transaction happened.")
	f.Float64Var(&p.lon, "lon", 0, "Longitude where the transaction happened.")
}

// hasLocation reports whether -lat or -lon was set.
func hasLocation(f *flag.FlagSet) bool {
	set := false
	f.Visit(func(fl *flag.Flag) { set = set || fl.Name == "lat" || fl.Name == "lon" })
	return set
}

type addCmd struct {
	txFlags
	suggest bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a transaction" }
func (*addCmd) Usage() string {
	return `mm add -a <account> [-type expense|income] [-c <category>] [-d <date>] <amount> <description>

  Adds a transaction and updates the account balance.
  The amount and the description can also be given with -amount and -desc.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	c.txFlags.SetFlags(f)
	f.BoolVar(&c.suggest, "suggest", false, "Suggest the category from past transactions when -c is not set.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if c.amount == "" && len(args) > 0 {
		c.amount, args = args[0], args[1:]
	}
	if c.description == "" {
		c.description = strings.Join(args, " ")
	}
	if c.amount == "" || c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: an amount and an account (-a) are required.")
		return subcommands.ExitUsageError
	}

	amount, err := moneymanager.ParseMoney(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	typ, err := moneymanager.ParseType(c.typ)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	in := moneymanager.TransactionInput{
		Amount:      amount,
		Account:     c.account,
		Type:        typ,
		Description: c.description,
		Category:    c.category,
		IsPinned:    c.pin,
		IsRecurring: c.recurring,
		Notes:       c.notes,
		Tags:        splitList(c.tags),
	}
	if c.date != "" {
		if in.Date, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	s, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var enrichers []moneymanager.Enricher
	if paths := splitList(c.attach); len(paths) > 0 {
		enrichers = append(enrichers, moneymanager.Attachments(paths...))
	}
	if hasLocation(f) {
		enrichers = append(enrichers, moneymanager.Locate(moneymanager.FixedLocation{Latitude: c.lat, Longitude: c.lon}))
	}
	if c.suggest {
		enrichers = append(enrichers, suggest.Categorize(newSuggester(ctx, s), s.Categories()))
	}
	in = s.Prepare(ctx, in, enrichers...)

	tx, err := s.AddTransaction(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding transaction: %v\n", err)
		return s.done(subcommands.ExitFailure)
	}
	fmt.Fprintf(stdout, "Added %s: %s %s\n", tx.ID, tx.Description, tx.Signed().SignedFormat(s.Currency()))
	return s.done(subcommands.ExitSuccess)
}

type editCmd struct {
	txFlags
	removeAttachments string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit a transaction" }
func (*editCmd) Usage() string {
	return `mm edit [flags] <id>

  Changes the fields given as flags, the others are kept.
  The old amount is taken back from the old account before the new one is
  applied to the new account.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	c.txFlags.SetFlags(f)
	f.StringVar(&c.removeAttachments, "rm-attach", "", "Comma separated indexes of attachments to remove.")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: edit takes exactly one transaction id.")
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	s, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tx, err := s.Transaction(id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return s.done(subcommands.ExitFailure)
	}

	e := tx.Edit()
	var errs []error
	f.Visit(func(fl *flag.Flag) {
		var err error
		switch fl.Name {
		case "a":
			e.Account = c.account
		case "type":
			e.Type, err = moneymanager.ParseType(c.typ)
		case "amount":
			e.Amount, err = moneymanager.ParseMoney(c.amount)
		case "desc":
			e.Description = c.description
		case "d":
			e.Date, err = date.Parse(c.date)
		case "c":
			e.Category = c.category
		case "tags":
			e.Tags = splitList(c.tags)
		case "notes":
			e.Notes = c.notes
		case "pin":
			e.IsPinned = c.pin
		case "recurring":
			e.IsRecurring = c.recurring
		case "attach":
			e.AddAttachments = s.Prepare(ctx, moneymanager.TransactionInput{}, moneymanager.Attachments(splitList(c.attach)...)).Attachments
		case "rm-attach":
			for _, item := range splitList(c.removeAttachments) {
				i, convErr := strconv.Atoi(item)
				if convErr != nil {
					err = fmt.Errorf("invalid attachment index %q", item)
					break
				}
				e.RemoveAttachments = append(e.RemoveAttachments, i)
			}
		}
		if err != nil {
			errs = append(errs, err)
		}
	})
	if hasLocation(f) {
		e.Location = &moneymanager.Location{Latitude: c.lat, Longitude: c.lon}
	}
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return s.done(subcommands.ExitUsageError)
	}

	tx, err = s.EditTransaction(id, e)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error editing transaction: %v\n", err)
		return s.done(subcommands.ExitFailure)
	}
	printMarkdown(renderer.TransactionMarkdown(tx, s.Accounts(), s.Currency()))
	return s.done(subcommands.ExitSuccess)
}

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete transactions" }
func (*rmCmd) Usage() string {
	return `mm rm <id>...

  Deletes transactions and takes their amount back from their account.
  Their recurring schedules are kept.
`
}

func (*rmCmd) SetFlags(*flag.FlagSet) {}

func (*rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one transaction id is required.")
		return subcommands.ExitUsageError
	}
	s, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	status := subcommands.ExitSuccess
	for _, id := range f.Args() {
		if err := s.DeleteTransaction(id); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting %s: %v\n", id, err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Fprintf(stdout, "Deleted %s\n", id)
	}
	return s.done(status)
}

type pinCmd struct{}

func (*pinCmd) Name() string     { return "pin" }
func (*pinCmd) Synopsis() string { return "pin or unpin a transaction" }
func (*pinCmd) Usage() string {
	return `mm pin <id>

  Toggles the pinned flag of a transaction. Pinned transactions are listed first.
`
}

func (*pinCmd) SetFlags(*flag.FlagSet) {}

func (*pinCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: pin takes exactly one transaction id.")
		return subcommands.ExitUsageError
	}
	s, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	pinned, err := s.TogglePin(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return s.done(subcommands.ExitFailure)
	}
	if pinned {
		fmt.Fprintf(stdout, "Pinned %s\n", f.Arg(0))
	} else {
		fmt.Fprintf(stdout, "Unpinned %s\n", f.Arg(0))
	}
	return s.done(subcommands.ExitSuccess)
}

type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show a transaction" }
func (*showCmd) Usage() string {
	return `mm show <id>

  Shows every field of a transaction, including notes and attachments.
`
}

func (*showCmd) SetFlags(*flag.FlagSet) {}

func (*showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: show takes exactly one transaction id.")
		return subcommands.ExitUsageError
	}
	s, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tx, err := s.Transaction(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return s.done(subcommands.ExitFailure)
	}
	printMarkdown(renderer.TransactionMarkdown(tx, s.Accounts(), s.Currency()))
	return s.done(subcommands.ExitSuccess)
}
