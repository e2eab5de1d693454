package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/moneymanager"
	"github.com/etnz/moneymanager/date"
	md "github.com/nao1215/markdown"
)

// bar draws a progress bar ten characters wide.
func bar(p moneymanager.Percent) string {
	n := int(p) / 10
	b := make([]rune, 10)
	for i := range b {
		if i < n {
			b[i] = '█'
		} else {
			b[i] = '░'
		}
	}
	return string(b)
}

var statusIcons = map[string]string{
	"ok":      "🟢",
	"warning": "🟠",
	"over":    "🔴",
}

// BudgetsMarkdown renders the monthly progress of every budgeted category.
// Categories without a cap are listed apart.
func BudgetsMarkdown(day date.Date, lines []moneymanager.BudgetLine, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Budgets for %s", day.Format("January 2006")))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft, md.AlignRight, md.AlignLeft},
		Header:    []string{"Category", "Spent", "Budget", "Progress", "%", "Status"},
	}
	var unbudgeted []string
	for _, line := range lines {
		if !line.Limit.IsPositive() {
			if !line.Spent.IsZero() {
				unbudgeted = append(unbudgeted, fmt.Sprintf("%s: %s", line.Category, line.Spent.Format(currency)))
			}
			continue
		}
		table.Rows = append(table.Rows, []string{
			cell(line.Category),
			line.Spent.Format(currency),
			line.Limit.Format(currency),
			bar(line.Percent),
			line.Percent.String(),
			statusIcons[line.Status()] + " " + line.Status(),
		})
	}
	if len(table.Rows) == 0 {
		doc.PlainText("No budget set.")
	} else {
		doc.Table(table)
	}
	if len(unbudgeted) > 0 {
		doc.H2("Spent without budget")
		doc.BulletList(unbudgeted...)
	}
	return doc.String()
}
