package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/moneymanager"
	"github.com/etnz/moneymanager/date"
	md "github.com/nao1215/markdown"
)

var sparks = []rune("▁▂▃▄▅▆▇█")

// sparkline draws one character per point, scaled between the lowest and
// the highest balance.
func sparkline(points []moneymanager.Point) string {
	if len(points) == 0 {
		return ""
	}
	lo, hi := points[0].Balance, points[0].Balance
	for _, p := range points {
		if p.Balance.LessThan(lo) {
			lo = p.Balance
		}
		if p.Balance.GreaterThan(hi) {
			hi = p.Balance
		}
	}
	spread := hi.Sub(lo)
	line := make([]rune, len(points))
	for i, p := range points {
		if spread.IsZero() {
			line[i] = sparks[0]
			continue
		}
		// Share is in [0, 100].
		level := int(moneymanager.Share(p.Balance.Sub(lo), spread)) * (len(sparks) - 1) / 100
		line[i] = sparks[level]
	}
	return string(line)
}

// HistoryMarkdown renders the balance of an account over a span, with the
// change since the previous point.
func HistoryMarkdown(account string, span date.Period, points []moneymanager.Point, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Balance History of %s", account))
	if len(points) == 0 {
		doc.PlainText("No data.")
		return doc.String()
	}
	first, last := points[0], points[len(points)-1]
	doc.PlainText(fmt.Sprintf("%s span, from %s to %s: %s", span, first.Date, last.Date, sparkline(points)))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Balance", "Change"},
	}
	for i, p := range points {
		change := ""
		if i > 0 {
			change = p.Balance.Sub(points[i-1].Balance).SignedFormat(currency)
		}
		table.Rows = append(table.Rows, []string{p.Date.String(), p.Balance.Format(currency), change})
	}
	doc.Table(table)
	doc.PlainText(fmt.Sprintf("Overall change: %s", last.Balance.Sub(first.Balance).SignedFormat(currency)))
	return doc.String()
}
