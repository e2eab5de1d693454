package moneymanager

import (
	"fmt"
	"slices"

	"github.com/etnz/moneymanager/date"
)

// BudgetLine is the progress of one category against its monthly cap.
type BudgetLine struct {
	Category string
	Limit    Money
	Spent    Money
	Percent  Percent
}

// Status qualifies the progress: "ok", "warning" above 70% and "over"
// above 90%.
func (b BudgetLine) Status() string {
	switch {
	case b.Percent > 90:
		return "over"
	case b.Percent > 70:
		return "warning"
	default:
		return "ok"
	}
}

// BudgetProgress returns, for every category but Income, the expenses of
// the month containing day against the category's cap.
func (l *Ledger) BudgetProgress(day date.Date) []BudgetLine {
	month := date.NewRange(day, date.Monthly)
	l.mu.Lock()
	defer l.mu.Unlock()

	spent := make(map[string]Money)
	for _, tx := range l.doc.Transactions {
		if tx.Type != Expense || !month.Contains(tx.Date) {
			continue
		}
		cat := tx.Category
		if cat == "" {
			cat = Other
		}
		spent[cat] = spent[cat].Add(tx.Amount)
	}

	var lines []BudgetLine
	for _, cat := range l.doc.Categories {
		if cat == IncomeCategory {
			continue
		}
		limit := l.doc.Budgets[cat]
		lines = append(lines, BudgetLine{
			Category: cat,
			Limit:    limit,
			Spent:    spent[cat],
			Percent:  percentOf(spent[cat], limit),
		})
	}
	return lines
}

// Summary totals the transactions of a period.
type Summary struct {
	Range      date.Range
	Income     Money
	Expense    Money
	ByCategory map[string]Money // expenses only
}

// Net returns income minus expenses.
func (s Summary) Net() Money { return s.Income.Sub(s.Expense) }

// Categories returns the expense categories, largest first.
func (s Summary) Categories() []string {
	var cats []string
	for c := range s.ByCategory {
		cats = append(cats, c)
	}
	slices.SortFunc(cats, func(a, b string) int {
		if c := s.ByCategory[b].Cmp(s.ByCategory[a]); c != 0 {
			return c
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
	return cats
}

// MonthlySummary totals the month containing day.
func (l *Ledger) MonthlySummary(day date.Date) Summary {
	return l.Summarize(date.NewRange(day, date.Monthly))
}

// Summarize totals the transactions dated in r.
func (l *Ledger) Summarize(r date.Range) Summary {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := Summary{Range: r, ByCategory: make(map[string]Money)}
	for _, tx := range l.doc.Transactions {
		if !r.Contains(tx.Date) {
			continue
		}
		switch tx.Type {
		case Income:
			s.Income = s.Income.Add(tx.Amount)
		case Expense:
			s.Expense = s.Expense.Add(tx.Amount)
			s.ByCategory[tx.Category] = s.ByCategory[tx.Category].Add(tx.Amount)
		}
	}
	return s
}

// Point is a balance at the end of a day.
type Point struct {
	Date    date.Date
	Balance Money
}

// spans maps a history timespan to how far back it goes and the spacing of
// its points.
var spans = map[date.Period]struct {
	back func(date.Date) date.Date
	step date.Period
}{
	date.Weekly:    {func(d date.Date) date.Date { return d.Add(-7) }, date.Daily},
	date.Monthly:   {func(d date.Date) date.Date { return d.AddMonth(-1) }, date.Daily},
	date.Quarterly: {func(d date.Date) date.Date { return d.AddMonth(-3) }, date.Weekly},
	date.Yearly:    {func(d date.Date) date.Date { return d.AddMonth(-12) }, date.Monthly},
}

// BalanceHistory returns the balance of an account at regular points up to
// today: daily over the last week or month, weekly over the last quarter,
// monthly over the last year. The last point is always today. Each point is
// the current balance minus the transactions dated after it. Account All sums
// every tracked account.
func (l *Ledger) BalanceHistory(account string, span date.Period) ([]Point, error) {
	sp, ok := spans[span]
	if !ok {
		return nil, fmt.Errorf("%w: no balance history over a %v span", ErrValidation, span)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	var (
		current Money
		txs     []Transaction
	)
	if account == All {
		for id, b := range l.doc.Balances {
			if id != Unknown {
				current = current.Add(b)
			}
		}
		for _, tx := range l.doc.Transactions {
			if _, tracked := l.doc.Balances[tx.Account]; tracked && tx.Account != Unknown {
				txs = append(txs, tx)
			}
		}
	} else {
		b, tracked := l.doc.Balances[account]
		if !tracked || account == Unknown {
			return nil, fmt.Errorf("%w: account %q", ErrNotFound, account)
		}
		current = b
		for _, tx := range l.doc.Transactions {
			if tx.Account == account {
				txs = append(txs, tx)
			}
		}
	}

	today := l.today()
	r := date.Range{From: sp.back(today), To: today}
	at := func(d date.Date) Point {
		balance := current
		for _, tx := range txs {
			if tx.Date.After(d) {
				balance = balance.Sub(tx.Signed())
			}
		}
		return Point{Date: d, Balance: balance}
	}
	var points []Point
	for d := range r.Steps(sp.step) {
		points = append(points, at(d))
	}
	// the last point is always today.
	if points[len(points)-1].Date != today {
		points = append(points, at(today))
	}
	return points, nil
}
