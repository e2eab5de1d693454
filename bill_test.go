package moneymanager

import (
	"errors"
	"testing"

	"github.com/etnz/moneymanager/date"
)

func TestAddBill(t *testing.T) {
	l := newTestLedger(t)
	testCases := []struct {
		name    string
		in      BillInput
		wantErr error
	}{
		{"valid", BillInput{Description: "Power", Amount: m(80), Account: "cu", Recurring: MonthlyBill}, nil},
		{"zero amount", BillInput{Description: "Power", Amount: m(0), Account: "cu"}, ErrValidation},
		{"unknown account", BillInput{Description: "Power", Amount: m(80), Account: "nope"}, ErrValidation},
		{"unknown recurrence", BillInput{Description: "Power", Amount: m(80), Account: "cu", Recurring: "weekly"}, ErrValidation},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := l.AddBill(tc.in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("AddBill() error = %v, want %v", err, tc.wantErr)
			}
			if err != nil {
				return
			}
			if b.Paid || b.Date != today || b.Category != Other {
				t.Errorf("AddBill() = %+v", b)
			}
		})
	}
	// bills never touch balances.
	assertBalance(t, l, "cu", m(0))
}

func TestPayBillAsymmetry(t *testing.T) {
	l := newTestLedger(t)
	b, err := l.AddBill(BillInput{Description: "Internet", Amount: m(30), Account: "revolut", Date: date.New(2025, 3, 25), Recurring: MonthlyBill})
	if err != nil {
		t.Fatal(err)
	}

	tx, err := l.PayBill(b.ID)
	if err != nil {
		t.Fatalf("PayBill() error: %v", err)
	}
	if tx == nil {
		t.Fatal("PayBill() returned no transaction")
	}
	if tx.Type != Expense || tx.Date != today || !tx.IsRecurring || !tx.HasTag("Bill Payment") || tx.Notes != "Paid bill: Internet" {
		t.Errorf("PayBill() = %+v", tx)
	}
	assertBalance(t, l, "revolut", m(-30))
	bills := l.Bills()
	if !bills[0].Paid || bills[0].TransactionID != tx.ID {
		t.Errorf("paid bill = %+v", bills[0])
	}

	// unpaying keeps the payment.
	again, err := l.PayBill(b.ID)
	if err != nil || again != nil {
		t.Fatalf("PayBill(paid) = %v, %v, want nil, nil", again, err)
	}
	assertBalance(t, l, "revolut", m(-30))
	if l.Bills()[0].Paid {
		t.Errorf("bill is still paid")
	}
	if _, err := l.Transaction(tx.ID); err != nil {
		t.Errorf("payment was removed: %v", err)
	}

	// paying again records a second payment.
	if _, err := l.PayBill(b.ID); err != nil {
		t.Fatal(err)
	}
	assertBalance(t, l, "revolut", m(-60))
	assertVerify(t, l)
}

func TestPayBillOnce(t *testing.T) {
	l := newTestLedger(t)
	b, err := l.AddBill(BillInput{Description: "Repair", Amount: m(120), Account: "cash"})
	if err != nil {
		t.Fatal(err)
	}
	tx, err := l.PayBill(b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if tx.IsRecurring {
		t.Errorf("payment of a one-time bill is recurring")
	}
	if len(l.Schedules()) != 0 {
		t.Errorf("paying a bill created a schedule")
	}
}

func TestPayBillDeletedAccount(t *testing.T) {
	l := newTestLedger(t)
	b, err := l.AddBill(BillInput{Description: "Card fee", Amount: m(5), Account: "revolut"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.DeleteAccount("revolut"); err != nil {
		t.Fatal(err)
	}
	if _, err := l.PayBill(b.ID); !errors.Is(err, ErrPrecondition) {
		t.Errorf("PayBill() error = %v, want %v", err, ErrPrecondition)
	}
	if l.Bills()[0].Paid {
		t.Errorf("bill marked paid")
	}
	if _, err := l.PayBill("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("PayBill(nope) error = %v, want %v", err, ErrNotFound)
	}
}

func TestEditBillKeepsPaid(t *testing.T) {
	l := newTestLedger(t)
	b, err := l.AddBill(BillInput{Description: "Water", Amount: m(20), Account: "cu"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.PayBill(b.ID); err != nil {
		t.Fatal(err)
	}
	got, err := l.EditBill(b.ID, BillInput{Description: "Water & sewage", Amount: m(25), Account: "cu", Recurring: QuarterlyBill})
	if err != nil {
		t.Fatalf("EditBill() error: %v", err)
	}
	if !got.Paid || got.Description != "Water & sewage" || got.Recurring != QuarterlyBill {
		t.Errorf("EditBill() = %+v", got)
	}
	// editing a paid bill does not touch its payment.
	assertBalance(t, l, "cu", m(-20))

	if err := l.DeleteBill(b.ID); err != nil {
		t.Errorf("DeleteBill() error: %v", err)
	}
	if err := l.DeleteBill(b.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteBill(again) error = %v, want %v", err, ErrNotFound)
	}
	assertBalance(t, l, "cu", m(-20))
}

func TestBillsIn(t *testing.T) {
	l := newTestLedger(t)
	for _, d := range []date.Date{
		date.New(2025, 3, 28),
		date.New(2025, 4, 1),
		date.New(2025, 3, 1),
		date.New(2025, 2, 28),
		date.New(2025, 3, 31),
	} {
		if _, err := l.AddBill(BillInput{Description: d.String(), Amount: m(1), Account: "cu", Date: d}); err != nil {
			t.Fatal(err)
		}
	}
	var got []string
	for _, b := range l.BillsIn(2025, 3) {
		got = append(got, b.Description)
	}
	want := []string{"2025-03-01", "2025-03-28", "2025-03-31"}
	if len(got) != len(want) {
		t.Fatalf("BillsIn() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("BillsIn()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
