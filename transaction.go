package moneymanager

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/etnz/moneymanager/date"
)

// Type is the direction of a transaction.
type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// ParseType parses "income" or "expense".
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case Income, Expense:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown transaction type %q", ErrValidation, s)
	}
}

// Signed returns the balance effect of an amount of this type: negative for
// expenses.
func (t Type) Signed(amount Money) Money {
	if t == Expense {
		return amount.Neg()
	}
	return amount
}

// Location is where a transaction was recorded.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Attachment is a file attached to a transaction, inlined as a data URL.
type Attachment struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	Data string `json:"data"`
}

// Transaction is a single income or expense posted to an account.
type Transaction struct {
	ID          string
	Amount      Money
	Account     string
	Type        Type
	Description string
	Date        date.Date
	Category    string
	IsRecurring bool
	IsPinned    bool
	Notes       string
	Tags        []string
	Location    *Location
	Attachments []Attachment
}

// Signed returns the transaction's effect on its account balance.
func (t Transaction) Signed() Money { return t.Type.Signed(t.Amount) }

// HasTag reports whether the transaction carries the tag.
func (t Transaction) HasTag(tag string) bool { return slices.Contains(t.Tags, tag) }

func (t Transaction) clone() Transaction {
	t.Tags = slices.Clone(t.Tags)
	t.Attachments = slices.Clone(t.Attachments)
	if t.Location != nil {
		loc := *t.Location
		t.Location = &loc
	}
	return t
}

// MarshalJSON writes the transaction in the persisted document layout.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("amount", t.Amount)
	w.Append("account", t.Account)
	w.Append("type", t.Type)
	w.Append("description", t.Description)
	w.Append("date", t.Date)
	w.Append("category", t.Category)
	w.Append("isRecurring", t.IsRecurring)
	w.Append("isPinned", t.IsPinned)
	w.Append("notes", t.Notes)
	w.List("tags", t.Tags)
	w.Optional("location", t.Location)
	w.List("attachments", t.Attachments)
	return w.MarshalJSON()
}

// UnmarshalJSON reads the persisted layout. Missing fields stay zero, the
// document migration fills them in.
func (t *Transaction) UnmarshalJSON(b []byte) error {
	var v struct {
		ID          string       `json:"id"`
		Amount      Money        `json:"amount"`
		Account     string       `json:"account"`
		Type        Type         `json:"type"`
		Description string       `json:"description"`
		Date        date.Date    `json:"date"`
		Category    string       `json:"category"`
		IsRecurring bool         `json:"isRecurring"`
		IsPinned    bool         `json:"isPinned"`
		Notes       string       `json:"notes"`
		Tags        []string     `json:"tags"`
		Location    *Location    `json:"location"`
		Attachments []Attachment `json:"attachments"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*t = Transaction(v)
	return nil
}

// TransactionInput carries the fields of a new transaction.
//
// A zero Date means today, a blank Category means "Other".
type TransactionInput struct {
	Amount      Money
	Account     string
	Type        Type
	Description string
	Date        date.Date
	Category    string
	IsRecurring bool
	IsPinned    bool
	Notes       string
	Tags        []string
	Location    *Location
	Attachments []Attachment
}

// TransactionEdit carries the new fields of an edited transaction.
//
// The location is kept unless Location is set. Attachments are the existing
// ones minus those at RemoveAttachments indexes, plus AddAttachments.
type TransactionEdit struct {
	Amount            Money
	Account           string
	Type              Type
	Description       string
	Date              date.Date
	Category          string
	IsRecurring       bool
	IsPinned          bool
	Notes             string
	Tags              []string
	Location          *Location
	RemoveAttachments []int
	AddAttachments    []Attachment
}

// Edit returns a TransactionEdit that leaves every field of t unchanged.
func (t Transaction) Edit() TransactionEdit {
	return TransactionEdit{
		Amount:      t.Amount,
		Account:     t.Account,
		Type:        t.Type,
		Description: t.Description,
		Date:        t.Date,
		Category:    t.Category,
		IsRecurring: t.IsRecurring,
		IsPinned:    t.IsPinned,
		Notes:       t.Notes,
		Tags:        slices.Clone(t.Tags),
	}
}
