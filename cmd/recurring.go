package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/etnz/moneymanager"
	"github.com/etnz/moneymanager/date"
	"github.com/etnz/moneymanager/renderer"
	"github.com/google/subcommands"
)

func recurringCmd() *group {
	return &group{
		name:     "recurring",
		synopsis: "manage recurring transactions",
		usage: `mm recurring <ls|add|toggle|rm|run> [flags]

  Manages the schedules that create transactions periodically.
  Due transactions are created each time the ledger is opened, when
  auto-creation is enabled (mm settings -autocreate=true).
`,
		commands: []subcommands.Command{&recurringLsCmd{}, &recurringAddCmd{}, &recurringToggleCmd{}, &recurringRmCmd{}, &recurringRunCmd{}},
	}
}

type recurringLsCmd struct{}

func (*recurringLsCmd) Name() string     { return "ls" }
func (*recurringLsCmd) Synopsis() string { return "list schedules" }
func (*recurringLsCmd) Usage() string {
	return `mm recurring ls

  Lists the schedules and when each one creates its next transaction.
`
}
func (*recurringLsCmd) SetFlags(*flag.FlagSet) {}

func (*recurringLsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		printMarkdown(renderer.SchedulesMarkdown(s.Schedules(), s.Accounts(), s.Today(), s.Currency()))
		return subcommands.ExitSuccess
	})
}

type recurringAddCmd struct {
	account   string
	typ       string
	amount    string
	frequency string
	category  string
	tags      string
	last      string
}

func (*recurringAddCmd) Name() string     { return "add" }
func (*recurringAddCmd) Synopsis() string { return "add a schedule" }
func (*recurringAddCmd) Usage() string {
	return `mm recurring add -a <account> -amount <amount> [-f <frequency>] [-type <type>] <description>

  Adds a schedule. Without -last it creates its first transaction the next
  time the ledger is opened.
`
}

func (c *recurringAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id.")
	f.StringVar(&c.typ, "type", string(moneymanager.Expense), "Transaction type, expense or income.")
	f.StringVar(&c.amount, "amount", "", "Amount of each transaction.")
	f.StringVar(&c.frequency, "f", string(moneymanager.Monthly), "Frequency: daily, weekly, biweekly, monthly, quarterly or yearly.")
	f.StringVar(&c.category, "c", "", "Category.")
	f.StringVar(&c.tags, "tags", "", "Comma separated tags.")
	f.StringVar(&c.last, "last", "", "Date of the last occurrence already recorded (YYYY-MM-DD).")
}

func (c *recurringAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := moneymanager.ParseMoney(c.amount)
	if err != nil {
		return usageError("%v", err)
	}
	typ, err := moneymanager.ParseType(c.typ)
	if err != nil {
		return usageError("%v", err)
	}
	freq, err := moneymanager.ParseFrequency(c.frequency)
	if err != nil {
		return usageError("%v", err)
	}
	in := moneymanager.ScheduleInput{
		Frequency:   freq,
		Account:     c.account,
		Amount:      amount,
		Type:        typ,
		Description: strings.Join(f.Args(), " "),
		Category:    c.category,
		Tags:        splitList(c.tags),
	}
	if c.last != "" {
		if in.LastCreated, err = date.Parse(c.last); err != nil {
			return usageError("%v", err)
		}
	}
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		sch, err := s.AddSchedule(in)
		if err != nil {
			return fail(err)
		}
		fmt.Fprintf(stdout, "Added schedule %s, next on %s\n", sch.Key(), sch.NextDueDate)
		return subcommands.ExitSuccess
	})
}

type recurringToggleCmd struct{}

func (*recurringToggleCmd) Name() string     { return "toggle" }
func (*recurringToggleCmd) Synopsis() string { return "pause or resume a schedule" }
func (*recurringToggleCmd) Usage() string {
	return `mm recurring toggle <key>
`
}
func (*recurringToggleCmd) SetFlags(*flag.FlagSet) {}

func (*recurringToggleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("recurring toggle takes exactly one schedule key.")
	}
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		active, err := s.ToggleSchedule(f.Arg(0))
		if err != nil {
			return fail(err)
		}
		if active {
			fmt.Fprintf(stdout, "Resumed %s\n", f.Arg(0))
		} else {
			fmt.Fprintf(stdout, "Paused %s\n", f.Arg(0))
		}
		return subcommands.ExitSuccess
	})
}

type recurringRmCmd struct{}

func (*recurringRmCmd) Name() string     { return "rm" }
func (*recurringRmCmd) Synopsis() string { return "delete a schedule" }
func (*recurringRmCmd) Usage() string {
	return `mm recurring rm <key>

  Deletes a schedule. The transactions it created are kept.
`
}
func (*recurringRmCmd) SetFlags(*flag.FlagSet) {}

func (*recurringRmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("recurring rm takes exactly one schedule key.")
	}
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		if err := s.DeleteSchedule(f.Arg(0)); err != nil {
			return fail(err)
		}
		fmt.Fprintf(stdout, "Deleted schedule %s\n", f.Arg(0))
		return subcommands.ExitSuccess
	})
}

type recurringRunCmd struct {
	every time.Duration
}

func (*recurringRunCmd) Name() string     { return "run" }
func (*recurringRunCmd) Synopsis() string { return "keep creating due transactions" }
func (*recurringRunCmd) Usage() string {
	return `mm recurring run [-every <duration>]

  Creates the due transactions, then checks again periodically until
  interrupted.
`
}

func (c *recurringRunCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.every, "every", time.Hour, "Time between two checks.")
}

func (c *recurringRunCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.every <= 0 {
		return usageError("-every must be positive.")
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		if !s.Settings().Recurring.AutoCreate {
			fmt.Fprintln(os.Stderr, "Warning: auto-creation is disabled, enable it with mm settings -autocreate=true")
		}
		s.logger.Info("running schedules", "every", c.every)
		if err := s.Run(ctx, c.every); err != nil && !errors.Is(err, context.Canceled) {
			return fail(err)
		}
		return subcommands.ExitSuccess
	})
}
