package renderer

import (
	"bytes"

	"github.com/etnz/moneymanager"
	md "github.com/nao1215/markdown"
)

// AccountsMarkdown renders the accounts with their balances and the total.
func AccountsMarkdown(accounts []moneymanager.Account, balances map[string]moneymanager.Money, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Accounts")

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Account", "ID", "Balance"},
	}
	var total moneymanager.Money
	for _, a := range accounts {
		b := balances[a.ID]
		total = total.Add(b)
		table.Rows = append(table.Rows, []string{cell(a.Name), a.ID, b.Format(currency)})
	}
	// transactions of deleted accounts still count in the total.
	if b, ok := balances[moneymanager.Unknown]; ok && !b.IsZero() {
		total = total.Add(b)
		table.Rows = append(table.Rows, []string{md.Italic("Unknown"), moneymanager.Unknown, b.Format(currency)})
	}
	table.Rows = append(table.Rows, []string{md.Bold("Total"), "", md.Bold(total.Format(currency))})
	doc.Table(table)
	return doc.String()
}
