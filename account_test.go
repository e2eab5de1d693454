package moneymanager

import (
	"errors"
	"testing"
)

func TestSlug(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{"Credit Union", "credit-union"},
		{"  My   Bank! ", "my-bank"},
		{"N26 (EUR)", "n26-eur"},
		{"Épargne", "pargne"},
		{"!!!", ""},
	}
	for _, tc := range testCases {
		if got := Slug(tc.in); got != tc.want {
			t.Errorf("Slug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAddAccount(t *testing.T) {
	l := newTestLedger(t)
	testCases := []struct {
		name, id string
		wantID   string
		wantErr  error
	}{
		{name: "Savings", wantID: "savings"},
		{name: "Savings", wantID: "savings-1"},
		{name: "Savings", wantID: "savings-2"},
		{name: "Anything", id: "cash", wantID: "cash-1"},
		{name: "Wallet", id: "wallet", wantID: "wallet"},
		{name: "Unknown", wantID: "unknown-1"},
		{name: "  ", wantErr: ErrValidation},
		{name: "???", wantErr: ErrValidation},
	}
	for _, tc := range testCases {
		a, err := l.AddAccount(tc.name, "", "", tc.id)
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("AddAccount(%q, %q) error = %v, want %v", tc.name, tc.id, err, tc.wantErr)
		}
		if err != nil {
			continue
		}
		if a.ID != tc.wantID {
			t.Errorf("AddAccount(%q, %q) id = %q, want %q", tc.name, tc.id, a.ID, tc.wantID)
		}
		if a.Icon == "" || a.Color == "" {
			t.Errorf("AddAccount(%q) = %+v, want a default icon and color", tc.name, a)
		}
		assertBalance(t, l, a.ID, m(0))
	}
	assertVerify(t, l)
}

func TestEditAccount(t *testing.T) {
	l := newTestLedger(t)
	a, err := l.EditAccount("cu", "My Union", "", "#123456")
	if err != nil {
		t.Fatalf("EditAccount() error: %v", err)
	}
	want := Account{ID: "cu", Name: "My Union", Icon: "university", Color: "#123456"}
	if a != want {
		t.Errorf("EditAccount() = %+v, want %+v", a, want)
	}
	if _, err := l.EditAccount("nope", "x", "", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("EditAccount(nope) error = %v, want %v", err, ErrNotFound)
	}
	if _, err := l.EditAccount("cu", " ", "", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("EditAccount(blank name) error = %v, want %v", err, ErrValidation)
	}
}

func TestDeleteAccount(t *testing.T) {
	l := newTestLedger(t)
	a := mustAdd(t, l, TransactionInput{Amount: m(20), Account: "cu", Type: Expense})
	b := mustAdd(t, l, TransactionInput{Amount: m(5), Account: "cash", Type: Income})

	dropped, err := l.DeleteAccount("cu")
	if err != nil {
		t.Fatalf("DeleteAccount() error: %v", err)
	}
	if !dropped.Equal(m(-20)) {
		t.Errorf("DeleteAccount() = %v, want -20", dropped)
	}
	if _, ok := l.Balance("cu"); ok {
		t.Errorf("balance of cu still tracked")
	}
	got, _ := l.Transaction(a.ID)
	if got.Account != Unknown {
		t.Errorf("transaction account = %q, want %q", got.Account, Unknown)
	}
	got, _ = l.Transaction(b.ID)
	if got.Account != "cash" {
		t.Errorf("transaction account = %q, want %q", got.Account, "cash")
	}
	assertVerify(t, l)

	// the orphan can still be deleted.
	if err := l.DeleteTransaction(a.ID); err != nil {
		t.Errorf("DeleteTransaction(orphan) error: %v", err)
	}
	assertVerify(t, l)
}

func TestDeleteLastAccount(t *testing.T) {
	l := newTestLedger(t)
	for _, id := range []string{"cu", "revolut"} {
		if _, err := l.DeleteAccount(id); err != nil {
			t.Fatalf("DeleteAccount(%q) error: %v", id, err)
		}
	}
	mustAdd(t, l, TransactionInput{Amount: m(20), Account: "cash", Type: Expense})
	before := encodeString(t, l)

	if _, err := l.DeleteAccount("cash"); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("DeleteAccount(last) error = %v, want %v", err, ErrPrecondition)
	}
	if after := encodeString(t, l); after != before {
		t.Errorf("failed DeleteAccount() modified the ledger:\n%s\n%s", before, after)
	}
	if _, err := l.DeleteAccount("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteAccount(nope) error = %v, want %v", err, ErrNotFound)
	}
}

func TestTotalBalance(t *testing.T) {
	l := decodeTestLedger(t, `{"balances":{"cu":100.10,"revolut":-0.2,"cash":0.1},"transactions":[]}`)
	if got := l.TotalBalance(); !got.Equal(m(100)) {
		t.Errorf("TotalBalance() = %v, want 100", got)
	}
}
