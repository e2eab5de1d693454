package moneymanager

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/moneymanager/date"
)

// Order is a listing order. Pinned transactions always come first.
type Order string

const (
	DateDesc   Order = "date-desc"
	DateAsc    Order = "date-asc"
	AmountDesc Order = "amount-desc"
	AmountAsc  Order = "amount-asc"
)

// Orders lists the valid orders, the default first.
var Orders = []Order{DateDesc, DateAsc, AmountDesc, AmountAsc}

// ParseOrder parses an order name. Blank is DateDesc.
func ParseOrder(s string) (Order, error) {
	if s == "" {
		return DateDesc, nil
	}
	o := Order(s)
	if !slices.Contains(Orders, o) {
		return "", fmt.Errorf("%w: unknown order %q", ErrValidation, s)
	}
	return o, nil
}

func (o Order) compare(a, b Transaction) int {
	switch o {
	case DateAsc:
		return a.Date.Compare(b.Date)
	case AmountDesc:
		return b.Amount.Cmp(a.Amount)
	case AmountAsc:
		return a.Amount.Cmp(b.Amount)
	default:
		return b.Date.Compare(a.Date)
	}
}

// All is the filter value matching every account or type.
const All = "all"

// ListOptions filters and orders a listing. Blank fields mean All and DateDesc.
type ListOptions struct {
	Account string
	Type    string
	Order   Order
}

// sorted returns the transactions, pinned first, each group sorted by o.
// Ties keep storage order.
func sorted(txs []Transaction, o Order) []Transaction {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		if a.IsPinned != b.IsPinned {
			if a.IsPinned {
				return -1
			}
			return 1
		}
		return o.compare(a, b)
	})
	return txs
}

// filter returns clones of the transactions accepted by keep.
func (l *Ledger) filter(keep func(Transaction) bool) []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	var txs []Transaction
	for _, tx := range l.doc.Transactions {
		if keep(tx) {
			txs = append(txs, tx.clone())
		}
	}
	return txs
}

// List returns the transactions matching the options.
func (l *Ledger) List(opts ListOptions) []Transaction {
	txs := l.filter(func(tx Transaction) bool {
		if opts.Account != "" && opts.Account != All && tx.Account != opts.Account {
			return false
		}
		if opts.Type != "" && opts.Type != All && string(tx.Type) != opts.Type {
			return false
		}
		return true
	})
	return sorted(txs, opts.Order)
}

// Search returns the transactions whose description, category, date, amount
// or notes contain text, ignoring case.
func (l *Ledger) Search(text string, o Order) []Transaction {
	text = strings.ToLower(strings.TrimSpace(text))
	txs := l.filter(func(tx Transaction) bool {
		for _, field := range []string{tx.Description, tx.Category, tx.Date.String(), tx.Amount.String(), tx.Notes} {
			if strings.Contains(strings.ToLower(field), text) {
				return true
			}
		}
		return false
	})
	return sorted(txs, o)
}

// Between returns the transactions dated from..to, boundaries included. A
// zero boundary is open.
func (l *Ledger) Between(from, to date.Date, o Order) []Transaction {
	r := date.Range{From: from, To: to}
	return sorted(l.filter(func(tx Transaction) bool { return r.Contains(tx.Date) }), o)
}
