package renderer

import (
	"bytes"

	"github.com/etnz/moneymanager"
	md "github.com/nao1215/markdown"
)

// BillsMarkdown renders bills as a calendar table with the unpaid total.
func BillsMarkdown(title string, bills []moneymanager.Bill, accounts []moneymanager.Account, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)
	if len(bills) == 0 {
		doc.PlainText("No bills.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Date", "Description", "Amount", "Account", "Repeats", "Paid", "ID"},
	}
	var due moneymanager.Money
	for _, b := range bills {
		paid := ""
		if b.Paid {
			paid = "✅"
		} else {
			due = due.Add(b.Amount)
		}
		table.Rows = append(table.Rows, []string{
			b.Date.String(),
			cell(b.Description),
			b.Amount.Format(currency),
			cell(accountName(accounts, b.Account)),
			string(b.Recurring),
			paid,
			b.ID,
		})
	}
	doc.Table(table)
	doc.PlainText("Still due: " + md.Bold(due.Format(currency)))
	return doc.String()
}
