package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/moneymanager"
	md "github.com/nao1215/markdown"
)

// flags marks pinned and recurring transactions.
func flags(tx moneymanager.Transaction) string {
	var f []string
	if tx.IsPinned {
		f = append(f, "📌")
	}
	if tx.IsRecurring {
		f = append(f, "🔁")
	}
	return strings.Join(f, " ")
}

// TransactionsMarkdown renders a list of transactions as a table, one row per
// transaction with its signed amount.
func TransactionsMarkdown(title string, txs []moneymanager.Transaction, accounts []moneymanager.Account, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)

	if len(txs) == 0 {
		doc.PlainText("No transactions.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"Date", "Description", "Category", "Account", "Amount", "Flags", "ID"},
	}
	var net moneymanager.Money
	for _, tx := range txs {
		net = net.Add(tx.Signed())
		table.Rows = append(table.Rows, []string{
			tx.Date.String(),
			cell(tx.Description),
			cell(tx.Category),
			cell(accountName(accounts, tx.Account)),
			tx.Signed().SignedFormat(currency),
			flags(tx),
			tx.ID,
		})
	}
	doc.Table(table)
	doc.PlainText(fmt.Sprintf("%d transactions, net %s", len(txs), net.SignedFormat(currency)))
	return doc.String()
}

// TransactionMarkdown renders every field of a single transaction.
func TransactionMarkdown(tx moneymanager.Transaction, accounts []moneymanager.Account, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(tx.Description)

	rows := [][]string{
		{"Date", tx.Date.String()},
		{"Type", string(tx.Type)},
		{"Account", cell(accountName(accounts, tx.Account))},
		{"Category", cell(tx.Category)},
	}
	if len(tx.Tags) > 0 {
		rows = append(rows, []string{"Tags", cell(strings.Join(tx.Tags, ", "))})
	}
	if tx.IsPinned {
		rows = append(rows, []string{"Pinned", "yes"})
	}
	if tx.IsRecurring {
		rows = append(rows, []string{"Recurring", "yes"})
	}
	if tx.Location != nil {
		rows = append(rows, []string{"Location", fmt.Sprintf("%.5f, %.5f", tx.Location.Latitude, tx.Location.Longitude)})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Amount"), md.Bold(tx.Signed().SignedFormat(currency))},
		Rows:      rows,
	})

	if tx.Notes != "" {
		doc.H2("Notes")
		doc.PlainText(tx.Notes)
	}
	if len(tx.Attachments) > 0 {
		doc.H2("Attachments")
		var items []string
		for _, a := range tx.Attachments {
			items = append(items, fmt.Sprintf("%s (%s, %d bytes)", a.Name, a.Type, a.Size))
		}
		doc.BulletList(items...)
	}
	doc.PlainText(md.Italic("id: " + tx.ID))
	return doc.String()
}
