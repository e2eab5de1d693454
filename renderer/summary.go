package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/moneymanager"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the income, expenses and expense breakdown of a
// period.
func SummaryMarkdown(s moneymanager.Summary, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Summary %s", s.Range.Identifier()))
	doc.PlainText(fmt.Sprintf("From %s to %s", s.Range.From, s.Range.To))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Net"), md.Bold(s.Net().SignedFormat(currency))},
		Rows: [][]string{
			{"Income", s.Income.Format(currency)},
			{"Expenses", s.Expense.Format(currency)},
		},
	})

	cats := s.Categories()
	if len(cats) == 0 {
		return doc.String()
	}
	doc.H2("Expenses by Category")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Category", "Amount", "Share"},
	}
	for _, c := range cats {
		amount := s.ByCategory[c]
		name := c
		if name == "" {
			name = moneymanager.Other
		}
		table.Rows = append(table.Rows, []string{cell(name), amount.Format(currency), moneymanager.Share(amount, s.Expense).String()})
	}
	doc.Table(table)
	return doc.String()
}
