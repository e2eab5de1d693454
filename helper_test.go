package moneymanager

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/etnz/moneymanager/date"
)

// today is the fixed date of test ledgers.
var today = date.New(2025, 3, 20)

// m is a helper for test to create money from const.
func m(v float64) Money { return M(v) }

func testOptions() []Option {
	return []Option{
		WithIDs(SequentialIDs()),
		WithClock(func() date.Date { return today }),
		WithLogger(log.New(io.Discard)),
	}
}

// newTestLedger returns a default ledger with deterministic ids and clock.
func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	return New(testOptions()...)
}

// decodeTestLedger decodes doc with deterministic ids and clock.
func decodeTestLedger(t *testing.T, doc string) *Ledger {
	t.Helper()
	l, err := Decode(strings.NewReader(doc), testOptions()...)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	return l
}

// mustAdd adds a transaction or fails the test.
func mustAdd(t *testing.T, l *Ledger, in TransactionInput) Transaction {
	t.Helper()
	tx, err := l.AddTransaction(in)
	if err != nil {
		t.Fatalf("AddTransaction(%+v) error: %v", in, err)
	}
	return tx
}

// assertBalance checks the balance of an account.
func assertBalance(t *testing.T, l *Ledger, account string, want Money) {
	t.Helper()
	got, ok := l.Balance(account)
	if !ok {
		t.Fatalf("Balance(%q) is not tracked", account)
	}
	if !got.Equal(want) {
		t.Errorf("Balance(%q) = %v, want %v", account, got, want)
	}
}

// assertVerify checks the ledger invariants.
func assertVerify(t *testing.T, l *Ledger) {
	t.Helper()
	if err := l.Verify(); err != nil {
		t.Errorf("Verify() error: %v", err)
	}
}

// encodeString returns the compact document of l.
func encodeString(t *testing.T, l *Ledger) string {
	t.Helper()
	var b strings.Builder
	if err := l.Encode(&b); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	return b.String()
}
