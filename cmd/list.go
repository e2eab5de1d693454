package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/moneymanager"
	"github.com/etnz/moneymanager/date"
	"github.com/etnz/moneymanager/renderer"
	"github.com/google/subcommands"
)

type lsCmd struct {
	account string
	typ     string
	order   string
	period  string
	start   string
	end     string
	tag     string
	head    int
}

func (*lsCmd) Name() string     { return "ls" }
func (*lsCmd) Synopsis() string { return "list transactions" }
func (*lsCmd) Usage() string {
	return `mm ls [-a <account>] [-type <type>] [-o <order>] [-p <period> | -s <start>] [-e <end>] [-head <n>]

  Lists transactions, pinned first, then in the requested order.
`
}

func (c *lsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", moneymanager.All, "Account id, or all.")
	f.StringVar(&c.typ, "type", moneymanager.All, "Transaction type: expense, income or all.")
	f.StringVar(&c.order, "o", string(moneymanager.DateDesc), "Order: date-desc, date-asc, amount-desc or amount-asc.")
	f.StringVar(&c.period, "p", "", "Only the period containing the end date: day, week, month, quarter or year.")
	f.StringVar(&c.start, "s", "", "Start date of a custom range. Overrides -p.")
	f.StringVar(&c.end, "e", "", "End date of the range. Defaults to today.")
	f.StringVar(&c.tag, "tag", "", "Only transactions carrying this tag.")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
}

// dateRange returns the range selected by the period flags, ok false when
// no flag is set.
func dateRange(period, start, end string, today date.Date) (r date.Range, ok bool, err error) {
	if period == "" && start == "" && end == "" {
		return date.Range{}, false, nil
	}
	to := today
	if end != "" {
		if to, err = date.Parse(end); err != nil {
			return r, false, fmt.Errorf("invalid end date: %w", err)
		}
	}
	if start != "" {
		from, err := date.Parse(start)
		if err != nil {
			return r, false, fmt.Errorf("invalid start date: %w", err)
		}
		return date.Range{From: from, To: to}, true, nil
	}
	if period == "" {
		return date.Range{To: to}, true, nil
	}
	p, err := date.ParsePeriod(period)
	if err != nil {
		return r, false, err
	}
	return date.NewRange(to, p), true, nil
}

func (c *lsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	order, err := moneymanager.ParseOrder(c.order)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	r, ranged, err := dateRange(c.period, c.start, c.end, s.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return s.done(subcommands.ExitUsageError)
	}

	title := "Transactions"
	var txs []moneymanager.Transaction
	for _, tx := range s.List(moneymanager.ListOptions{Account: c.account, Type: c.typ, Order: order}) {
		if ranged && !r.Contains(tx.Date) {
			continue
		}
		if c.tag != "" && !tx.HasTag(c.tag) {
			continue
		}
		txs = append(txs, tx)
	}
	if ranged {
		title = fmt.Sprintf("Transactions from %s to %s", r.From, r.To)
		if r.From.IsZero() {
			title = fmt.Sprintf("Transactions until %s", r.To)
		}
	}
	if c.head > 0 && len(txs) > c.head {
		txs = txs[:c.head]
	}
	printMarkdown(renderer.TransactionsMarkdown(title, txs, s.Accounts(), s.Currency()))
	return s.done(subcommands.ExitSuccess)
}

type searchCmd struct {
	order string
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search transactions" }
func (*searchCmd) Usage() string {
	return `mm search [-o <order>] <text>

  Lists the transactions whose description, category, date, amount or notes
  contain the text, ignoring case.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.order, "o", string(moneymanager.DateDesc), "Order: date-desc, date-asc, amount-desc or amount-asc.")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	text := strings.Join(f.Args(), " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(os.Stderr, "Error: search text is required.")
		return subcommands.ExitUsageError
	}
	order, err := moneymanager.ParseOrder(c.order)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	title := fmt.Sprintf("Transactions matching %q", text)
	printMarkdown(renderer.TransactionsMarkdown(title, s.Search(text, order), s.Accounts(), s.Currency()))
	return s.done(subcommands.ExitSuccess)
}
