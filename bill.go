package moneymanager

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/etnz/moneymanager/date"
)

// Recurrence is how often a bill comes back.
type Recurrence string

const (
	Once           Recurrence = "none"
	MonthlyBill    Recurrence = "monthly"
	QuarterlyBill  Recurrence = "quarterly"
	YearlyBill     Recurrence = "yearly"
	billPaymentTag            = "Bill Payment"
)

// ParseRecurrence parses a bill recurrence. Blank means none.
func ParseRecurrence(s string) (Recurrence, error) {
	switch r := Recurrence(s); r {
	case "":
		return Once, nil
	case Once, MonthlyBill, QuarterlyBill, YearlyBill:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown bill recurrence %q", ErrValidation, s)
	}
}

// Bill is an upcoming payment shown on the calendar.
type Bill struct {
	ID            string     `json:"id"`
	Description   string     `json:"description"`
	Amount        Money      `json:"amount"`
	Date          date.Date  `json:"date"`
	Account       string     `json:"account"`
	Category      string     `json:"category"`
	Recurring     Recurrence `json:"recurring"`
	Notes         string     `json:"notes"`
	Paid          bool       `json:"paid"`
	TransactionID string     `json:"transactionId,omitempty"`
}

// BillInput carries the editable fields of a bill.
type BillInput struct {
	Description string
	Amount      Money
	Date        date.Date
	Account     string
	Category    string
	Recurring   Recurrence
	Notes       string
}

func (l *Ledger) checkBill(in *BillInput) error {
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %v", ErrValidation, in.Amount)
	}
	if !l.hasAccount(in.Account) {
		return fmt.Errorf("%w: unknown account %q", ErrValidation, in.Account)
	}
	r, err := ParseRecurrence(string(in.Recurring))
	if err != nil {
		return err
	}
	in.Recurring = r
	if in.Date.IsZero() {
		in.Date = l.today()
	}
	if strings.TrimSpace(in.Category) == "" {
		in.Category = Other
	}
	return nil
}

func (l *Ledger) billIndex(id string) int {
	return slices.IndexFunc(l.doc.Bills, func(b Bill) bool { return b.ID == id })
}

// AddBill records an unpaid bill. It has no effect on balances until paid.
func (l *Ledger) AddBill(in BillInput) (Bill, error) {
	var b Bill
	err := l.update(func() ([]Change, error) {
		if err := l.checkBill(&in); err != nil {
			return nil, err
		}
		b = Bill{
			ID:          l.ids("bill"),
			Description: in.Description,
			Amount:      in.Amount,
			Date:        in.Date,
			Account:     in.Account,
			Category:    in.Category,
			Recurring:   in.Recurring,
			Notes:       in.Notes,
		}
		l.doc.Bills = append(l.doc.Bills, b)
		return []Change{{Kind: BillAdded, ID: b.ID}}, nil
	})
	return b, err
}

// EditBill replaces the editable fields of a bill. Its paid state is kept.
func (l *Ledger) EditBill(id string, in BillInput) (Bill, error) {
	var b Bill
	err := l.update(func() ([]Change, error) {
		i := l.billIndex(id)
		if i < 0 {
			return nil, fmt.Errorf("%w: bill %q", ErrNotFound, id)
		}
		if err := l.checkBill(&in); err != nil {
			return nil, err
		}
		b = l.doc.Bills[i]
		b.Description = in.Description
		b.Amount = in.Amount
		b.Date = in.Date
		b.Account = in.Account
		b.Category = in.Category
		b.Recurring = in.Recurring
		b.Notes = in.Notes
		l.doc.Bills[i] = b
		return []Change{{Kind: BillEdited, ID: id}}, nil
	})
	return b, err
}

// DeleteBill removes a bill. A payment already made stays in the ledger.
func (l *Ledger) DeleteBill(id string) error {
	return l.update(func() ([]Change, error) {
		i := l.billIndex(id)
		if i < 0 {
			return nil, fmt.Errorf("%w: bill %q", ErrNotFound, id)
		}
		l.doc.Bills = slices.Delete(l.doc.Bills, i, i+1)
		return []Change{{Kind: BillDeleted, ID: id}}, nil
	})
}

// PayBill toggles the paid state of a bill.
//
// Paying records an expense dated today on the bill's account and returns
// it. Marking a paid bill unpaid only clears the flag: the payment stays in
// the ledger and nil is returned.
func (l *Ledger) PayBill(id string) (*Transaction, error) {
	var paid *Transaction
	err := l.update(func() ([]Change, error) {
		i := l.billIndex(id)
		if i < 0 {
			return nil, fmt.Errorf("%w: bill %q", ErrNotFound, id)
		}
		b := &l.doc.Bills[i]
		if b.Paid {
			b.Paid = false
			return []Change{{Kind: BillPaid, ID: id}}, nil
		}
		if !l.hasAccount(b.Account) {
			return nil, fmt.Errorf("%w: account %q of bill %q was deleted", ErrPrecondition, b.Account, id)
		}
		tx := Transaction{
			ID:          l.ids("tx"),
			Amount:      b.Amount,
			Account:     b.Account,
			Type:        Expense,
			Description: b.Description,
			Date:        l.today(),
			Category:    b.Category,
			IsRecurring: b.Recurring != Once,
			Notes:       "Paid bill: " + b.Description,
			Tags:        []string{billPaymentTag},
			Attachments: []Attachment{},
		}
		l.doc.Transactions = append(l.doc.Transactions, tx)
		l.post(b.Account, b.Amount.Neg())
		b.Paid = true
		b.TransactionID = tx.ID
		l.logger.Debug("pay bill", "bill", id, "transaction", tx.ID)
		tx = tx.clone()
		paid = &tx
		return []Change{{Kind: BillPaid, ID: id}, {Kind: TransactionAdded, ID: tx.ID}}, nil
	})
	return paid, err
}

// Bills returns a copy of every bill, in creation order.
func (l *Ledger) Bills() []Bill {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.doc.Bills)
}

// BillsIn returns the bills dated in the given month, by date.
func (l *Ledger) BillsIn(year int, month time.Month) []Bill {
	r := date.NewRange(date.New(year, month, 1), date.Monthly)
	l.mu.Lock()
	defer l.mu.Unlock()
	var bills []Bill
	for _, b := range l.doc.Bills {
		if r.Contains(b.Date) {
			bills = append(bills, b)
		}
	}
	slices.SortStableFunc(bills, func(a, b Bill) int { return a.Date.Compare(b.Date) })
	return bills
}
