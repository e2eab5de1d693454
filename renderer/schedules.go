package renderer

import (
	"bytes"

	"github.com/etnz/moneymanager"
	"github.com/etnz/moneymanager/date"
	md "github.com/nao1215/markdown"
)

// SchedulesMarkdown renders the recurring schedules and when each one
// materializes next.
func SchedulesMarkdown(schedules []moneymanager.Schedule, accounts []moneymanager.Account, today date.Date, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Recurring Transactions")
	if len(schedules) == 0 {
		doc.PlainText("No recurring transactions.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Description", "Frequency", "Amount", "Account", "Last", "Next", "Key"},
	}
	for _, s := range schedules {
		next := s.NextOccurrence(today).String()
		if !s.Active {
			next = md.Italic("paused")
		}
		table.Rows = append(table.Rows, []string{
			cell(s.Description),
			string(s.Frequency),
			s.Type.Signed(s.Amount).SignedFormat(currency),
			cell(accountName(accounts, s.Account)),
			s.LastCreated.String(),
			next,
			s.Key(),
		})
	}
	doc.Table(table)
	return doc.String()
}
