package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/etnz/moneymanager"
	"github.com/etnz/moneymanager/date"
	"github.com/etnz/moneymanager/renderer"
	"github.com/google/subcommands"
)

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show the dashboard" }
func (*dashboardCmd) Usage() string {
	return `mm dashboard

  Shows the dashboard widgets enabled in the settings: total balance,
  accounts, recent transactions, upcoming bills and the spending chart.
`
}
func (*dashboardCmd) SetFlags(*flag.FlagSet) {}

func (*dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		printMarkdown(renderer.DashboardMarkdown(s.Ledger))
		return subcommands.ExitSuccess
	})
}

type summaryCmd struct {
	period string
	start  string
	end    string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "total income and expenses of a period" }
func (*summaryCmd) Usage() string {
	return `mm summary [-p <period> | -s <start>] [-e <end>]

  Totals income and expenses, and breaks expenses down by category.
  Defaults to the current month.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "month", "Period containing the end date: day, week, month, quarter or year.")
	f.StringVar(&c.start, "s", "", "Start date of a custom range. Overrides -p.")
	f.StringVar(&c.end, "e", "", "End date. Defaults to today.")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		r, _, err := dateRange(c.period, c.start, c.end, s.Today())
		if err != nil {
			return usageError("%v", err)
		}
		printMarkdown(renderer.SummaryMarkdown(s.Summarize(r), s.Currency()))
		return subcommands.ExitSuccess
	})
}

type historyCmd struct {
	account string
	span    string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "balance over time" }
func (*historyCmd) Usage() string {
	return `mm history [-a <account>] [-span week|month|quarter|year]

  Shows the balance of an account, or of all accounts, over the span:
  daily for a week or a month, weekly for a quarter, monthly for a year.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", moneymanager.All, "Account id, or all.")
	f.StringVar(&c.span, "span", "month", "Span: week, month, quarter or year.")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	span, err := date.ParsePeriod(c.span)
	if err != nil {
		return usageError("%v", err)
	}
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		points, err := s.BalanceHistory(c.account, span)
		if err != nil {
			return fail(err)
		}
		name := "all accounts"
		if c.account != moneymanager.All {
			a, err := s.Account(c.account)
			if err != nil {
				return fail(err)
			}
			name = a.Name
		}
		printMarkdown(renderer.HistoryMarkdown(name, span, points, s.Currency()))
		return subcommands.ExitSuccess
	})
}

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "query the ledger document with JSONPath" }
func (*queryCmd) Usage() string {
	return `mm query <jsonpath>

  Evaluates a JSONPath expression over the ledger document and prints the
  result as JSON. For instance:

    mm query '$.transactions[?(@.category=="Travel")].amount'
`
}
func (*queryCmd) SetFlags(*flag.FlagSet) {}

func (*queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("query takes exactly one JSONPath expression.")
	}
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		v, err := s.Query(f.Arg(0))
		if err != nil {
			return fail(err)
		}
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fail(err)
		}
		fmt.Fprintln(stdout, string(out))
		return subcommands.ExitSuccess
	})
}
