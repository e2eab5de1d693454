package moneymanager

import (
	"errors"
	"slices"
	"testing"

	"github.com/etnz/moneymanager/date"
)

// queryLedger holds five transactions, "b" and "d" pinned.
func queryLedger(t *testing.T) *Ledger {
	t.Helper()
	l := newTestLedger(t)
	for _, in := range []TransactionInput{
		{Description: "a", Amount: m(10), Account: "cu", Type: Expense, Date: date.New(2025, 3, 1), Category: "Shopping"},
		{Description: "b", Amount: m(50), Account: "cash", Type: Income, Date: date.New(2025, 3, 5), IsPinned: true},
		{Description: "c", Amount: m(30), Account: "cu", Type: Expense, Date: date.New(2025, 3, 5), Notes: "Birthday present"},
		{Description: "d", Amount: m(20), Account: "cu", Type: Expense, Date: date.New(2025, 2, 10), IsPinned: true},
		{Description: "e", Amount: m(30), Account: "revolut", Type: Expense, Date: date.New(2025, 3, 10), Category: "Travel"},
	} {
		mustAdd(t, l, in)
	}
	return l
}

func descriptions(txs []Transaction) []string {
	var s []string
	for _, tx := range txs {
		s = append(s, tx.Description)
	}
	return s
}

func TestList(t *testing.T) {
	l := queryLedger(t)
	testCases := []struct {
		opts ListOptions
		want []string
	}{
		{ListOptions{}, []string{"b", "d", "e", "c", "a"}},
		{ListOptions{Order: DateAsc}, []string{"d", "b", "a", "c", "e"}},
		{ListOptions{Order: AmountDesc}, []string{"b", "d", "c", "e", "a"}},
		{ListOptions{Order: AmountAsc}, []string{"d", "b", "a", "c", "e"}},
		{ListOptions{Account: "cu"}, []string{"d", "c", "a"}},
		{ListOptions{Account: All, Type: string(Income)}, []string{"b"}},
		{ListOptions{Account: "cu", Type: string(Expense), Order: AmountAsc}, []string{"d", "a", "c"}},
		{ListOptions{Account: "nope"}, nil},
	}
	for _, tc := range testCases {
		if got := descriptions(l.List(tc.opts)); !slices.Equal(got, tc.want) {
			t.Errorf("List(%+v) = %v, want %v", tc.opts, got, tc.want)
		}
	}
}

func TestListReturnsCopies(t *testing.T) {
	l := queryLedger(t)
	txs := l.List(ListOptions{})
	txs[0].Tags = append(txs[0].Tags, "mutated")
	txs[0].Description = "mutated"
	if got := descriptions(l.List(ListOptions{})); got[0] != "b" {
		t.Errorf("List() was modified through a returned value: %v", got)
	}
}

func TestSearch(t *testing.T) {
	l := queryLedger(t)
	testCases := []struct {
		text string
		want []string
	}{
		{"TRAVEL", []string{"e"}},          // category, any case
		{"birthday", []string{"c"}},        // notes
		{"2025-03-05", []string{"b", "c"}}, // date
		{"30", []string{"e", "c"}},         // amount
		{"zzz", nil},
	}
	for _, tc := range testCases {
		if got := descriptions(l.Search(tc.text, DateDesc)); !slices.Equal(got, tc.want) {
			t.Errorf("Search(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestBetween(t *testing.T) {
	l := queryLedger(t)
	testCases := []struct {
		from, to date.Date
		want     []string
	}{
		{date.New(2025, 3, 1), date.New(2025, 3, 5), []string{"b", "a", "c"}},
		{date.Date{}, date.New(2025, 2, 28), []string{"d"}},
		{date.New(2025, 3, 6), date.Date{}, []string{"e"}},
	}
	for _, tc := range testCases {
		if got := descriptions(l.Between(tc.from, tc.to, DateAsc)); !slices.Equal(got, tc.want) {
			t.Errorf("Between(%v, %v) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestParseOrder(t *testing.T) {
	for _, o := range Orders {
		if got, err := ParseOrder(string(o)); err != nil || got != o {
			t.Errorf("ParseOrder(%q) = %q, %v", o, got, err)
		}
	}
	if got, _ := ParseOrder(""); got != DateDesc {
		t.Errorf("ParseOrder(\"\") = %q, want %q", got, DateDesc)
	}
	if _, err := ParseOrder("random"); !errors.Is(err, ErrValidation) {
		t.Errorf("ParseOrder(random) error = %v, want %v", err, ErrValidation)
	}
}
