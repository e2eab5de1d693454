package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/moneymanager"
	"github.com/etnz/moneymanager/date"
	"github.com/etnz/moneymanager/renderer"
	"github.com/google/subcommands"
)

func billCmd() *group {
	return &group{
		name:     "bill",
		synopsis: "manage upcoming bills",
		usage: `mm bill <add|edit|rm|pay|ls> [flags]

  Manages the bills calendar. A bill does not change any balance until it
  is paid.
`,
		commands: []subcommands.Command{&billAddCmd{}, &billEditCmd{}, &billRmCmd{}, &billPayCmd{}, &billLsCmd{}},
	}
}

// billFlags are the bill fields shared by add and edit.
type billFlags struct {
	account  string
	amount   string
	date     string
	category string
	repeat   string
	notes    string
}

func (p *billFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.account, "a", "", "Account id the bill is paid from.")
	f.StringVar(&p.amount, "amount", "", "Amount due.")
	f.StringVar(&p.date, "d", "", "Due date (YYYY-MM-DD). Defaults to today.")
	f.StringVar(&p.category, "c", "", "Category.")
	f.StringVar(&p.repeat, "repeat", "", "Recurrence: none, monthly, quarterly or yearly.")
	f.StringVar(&p.notes, "notes", "", "Free text notes.")
}

// apply sets the fields of in from the flags that were set.
func (p *billFlags) apply(f *flag.FlagSet, in *moneymanager.BillInput) (err error) {
	f.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "a":
			in.Account = p.account
		case "amount":
			in.Amount, err = moneymanager.ParseMoney(p.amount)
		case "d":
			in.Date, err = date.Parse(p.date)
		case "c":
			in.Category = p.category
		case "repeat":
			in.Recurring, err = moneymanager.ParseRecurrence(p.repeat)
		case "notes":
			in.Notes = p.notes
		}
	})
	return err
}

type billAddCmd struct{ billFlags }

func (*billAddCmd) Name() string     { return "add" }
func (*billAddCmd) Synopsis() string { return "add a bill" }
func (*billAddCmd) Usage() string {
	return `mm bill add -a <account> -amount <amount> [-d <date>] [-repeat <recurrence>] <description>

  Adds an unpaid bill to the calendar.
`
}

func (c *billAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := moneymanager.BillInput{Description: strings.Join(f.Args(), " ")}
	if err := c.apply(f, &in); err != nil {
		return usageError("%v", err)
	}
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		b, err := s.AddBill(in)
		if err != nil {
			return fail(err)
		}
		fmt.Fprintf(stdout, "Added bill %s: %s %s due %s\n", b.ID, b.Description, b.Amount.Format(s.Currency()), b.Date)
		return subcommands.ExitSuccess
	})
}

// findBill returns the bill id.
func findBill(l *moneymanager.Ledger, id string) (moneymanager.Bill, error) {
	for _, b := range l.Bills() {
		if b.ID == id {
			return b, nil
		}
	}
	return moneymanager.Bill{}, fmt.Errorf("%w: bill %q", moneymanager.ErrNotFound, id)
}

type billEditCmd struct {
	billFlags
	description string
}

func (*billEditCmd) Name() string     { return "edit" }
func (*billEditCmd) Synopsis() string { return "edit a bill" }
func (*billEditCmd) Usage() string {
	return `mm bill edit [flags] <id>

  Changes the fields given as flags. The paid state is kept.
`
}

func (c *billEditCmd) SetFlags(f *flag.FlagSet) {
	c.billFlags.SetFlags(f)
	f.StringVar(&c.description, "desc", "", "Description.")
}

func (c *billEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("bill edit takes exactly one bill id.")
	}
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		b, err := findBill(s.Ledger, f.Arg(0))
		if err != nil {
			return fail(err)
		}
		in := moneymanager.BillInput{
			Description: b.Description,
			Amount:      b.Amount,
			Date:        b.Date,
			Account:     b.Account,
			Category:    b.Category,
			Recurring:   b.Recurring,
			Notes:       b.Notes,
		}
		if c.description != "" {
			in.Description = c.description
		}
		if err := c.apply(f, &in); err != nil {
			return usageError("%v", err)
		}
		if b, err = s.EditBill(b.ID, in); err != nil {
			return fail(err)
		}
		fmt.Fprintf(stdout, "Updated bill %s: %s %s due %s\n", b.ID, b.Description, b.Amount.Format(s.Currency()), b.Date)
		return subcommands.ExitSuccess
	})
}

type billRmCmd struct{}

func (*billRmCmd) Name() string     { return "rm" }
func (*billRmCmd) Synopsis() string { return "delete a bill" }
func (*billRmCmd) Usage() string {
	return `mm bill rm <id>

  Deletes a bill. A payment already recorded stays in the ledger.
`
}

func (*billRmCmd) SetFlags(*flag.FlagSet) {}

func (*billRmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("bill rm takes exactly one bill id.")
	}
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		if err := s.DeleteBill(f.Arg(0)); err != nil {
			return fail(err)
		}
		fmt.Fprintf(stdout, "Deleted bill %s\n", f.Arg(0))
		return subcommands.ExitSuccess
	})
}

type billPayCmd struct{}

func (*billPayCmd) Name() string     { return "pay" }
func (*billPayCmd) Synopsis() string { return "mark a bill paid or unpaid" }
func (*billPayCmd) Usage() string {
	return `mm bill pay <id>

  Paying a bill records an expense dated today on its account.
  Paying it again marks it unpaid, the recorded expense is kept.
`
}

func (*billPayCmd) SetFlags(*flag.FlagSet) {}

func (*billPayCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("bill pay takes exactly one bill id.")
	}
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		tx, err := s.PayBill(f.Arg(0))
		if err != nil {
			return fail(err)
		}
		if tx == nil {
			fmt.Fprintf(stdout, "Bill %s marked unpaid, its payment is kept\n", f.Arg(0))
			return subcommands.ExitSuccess
		}
		fmt.Fprintf(stdout, "Paid bill %s with %s: %s\n", f.Arg(0), tx.ID, tx.Signed().SignedFormat(s.Currency()))
		return subcommands.ExitSuccess
	})
}

type billLsCmd struct {
	month string
	all   bool
}

func (*billLsCmd) Name() string     { return "ls" }
func (*billLsCmd) Synopsis() string { return "list bills" }
func (*billLsCmd) Usage() string {
	return `mm bill ls [-m <YYYY-MM>] [-all]

  Lists the bills due in a month, the current one by default.
`
}

func (c *billLsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month (YYYY-MM). Defaults to the current month.")
	f.BoolVar(&c.all, "all", false, "List every bill.")
}

func (c *billLsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		if c.all {
			printMarkdown(renderer.BillsMarkdown("Bills", s.Bills(), s.Accounts(), s.Currency()))
			return subcommands.ExitSuccess
		}
		month := s.Today()
		if c.month != "" {
			t, err := time.Parse("2006-01", c.month)
			if err != nil {
				return usageError("invalid month %q, want YYYY-MM", c.month)
			}
			month = date.Of(t)
		}
		title := "Bills of " + month.Format("January 2006")
		printMarkdown(renderer.BillsMarkdown(title, s.BillsIn(month.Year(), month.Month()), s.Accounts(), s.Currency()))
		return subcommands.ExitSuccess
	})
}
