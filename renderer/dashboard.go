package renderer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/etnz/moneymanager"
	md "github.com/nao1215/markdown"
)

// recentCount is how many transactions the dashboard shows.
const recentCount = 5

// section renders a markdown fragment to w and reports whether it has content.
func section(w io.Writer, f func(doc *md.Markdown) bool) {
	ConditionalBlock(w, func(w io.Writer) bool {
		var buf bytes.Buffer
		doc := md.NewMarkdown(&buf)
		if !f(doc) {
			return false
		}
		fmt.Fprintf(w, "%s\n", doc.String())
		return true
	})
}

// DashboardMarkdown renders the dashboard widgets enabled in the settings.
// Widgets with nothing to show are left out.
func DashboardMarkdown(l *moneymanager.Ledger) string {
	var (
		out      bytes.Buffer
		widgets  = l.Settings().Dashboard.Widgets
		currency = l.Currency()
		accounts = l.Accounts()
		today    = l.Today()
	)

	section(&out, func(doc *md.Markdown) bool {
		doc.H1("Dashboard")
		if widgets["totalBalance"] {
			doc.PlainText("Total balance: " + md.Bold(l.TotalBalance().Format(currency)))
		}
		return true
	})

	section(&out, func(doc *md.Markdown) bool {
		if !widgets["accounts"] {
			return false
		}
		balances := l.Balances()
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Account", "Balance"},
		}
		for _, a := range accounts {
			table.Rows = append(table.Rows, []string{cell(a.Name), balances[a.ID].Format(currency)})
		}
		doc.H2("Accounts")
		doc.Table(table)
		return len(accounts) > 0
	})

	section(&out, func(doc *md.Markdown) bool {
		if !widgets["recentTransactions"] {
			return false
		}
		txs := l.List(moneymanager.ListOptions{})
		if len(txs) == 0 {
			return false
		}
		txs = txs[:min(recentCount, len(txs))]
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
			Header:    []string{"Date", "Description", "Amount", "Flags"},
		}
		for _, tx := range txs {
			table.Rows = append(table.Rows, []string{tx.Date.String(), cell(tx.Description), tx.Signed().SignedFormat(currency), flags(tx)})
		}
		doc.H2("Recent Transactions")
		doc.Table(table)
		return true
	})

	section(&out, func(doc *md.Markdown) bool {
		if !widgets["upcomingBills"] {
			return false
		}
		var items []string
		for _, b := range l.BillsIn(today.Year(), today.Month()) {
			if b.Paid || b.Date.Before(today) {
				continue
			}
			items = append(items, fmt.Sprintf("%s %s: %s", b.Date, b.Description, b.Amount.Format(currency)))
		}
		if len(items) == 0 {
			return false
		}
		doc.H2("Upcoming Bills")
		doc.BulletList(items...)
		return true
	})

	section(&out, func(doc *md.Markdown) bool {
		if !widgets["spendingChart"] {
			return false
		}
		s := l.MonthlySummary(today)
		cats := s.Categories()
		if len(cats) == 0 {
			return false
		}
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
			Header:    []string{"Category", "Share", "Amount"},
		}
		for _, c := range cats {
			table.Rows = append(table.Rows, []string{cell(c), bar(moneymanager.Share(s.ByCategory[c], s.Expense)), s.ByCategory[c].Format(currency)})
		}
		doc.H2("Spending this Month")
		doc.Table(table)
		return true
	})

	return out.String()
}
