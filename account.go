package moneymanager

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Account is a place money is held: a bank, a card, a wallet.
type Account struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// palette colors accounts created or loaded without one.
var palette = []string{"#4a90e2", "#50c878", "#f44336", "#ff9800", "#9c27b0", "#795548"}

func defaultAccounts() []Account {
	return []Account{
		{ID: "cu", Name: "Credit Union", Icon: "university", Color: "#4a90e2"},
		{ID: "revolut", Name: "Revolut", Icon: "credit-card", Color: "#50c878"},
		{ID: "cash", Name: "Cash", Icon: "money-bill-wave", Color: "#ff9800"},
	}
}

var (
	spaces   = regexp.MustCompile(`\s+`)
	nonSlugs = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slug derives an account id from a name: "My Bank!" becomes "my-bank".
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = spaces.ReplaceAllString(s, "-")
	return nonSlugs.ReplaceAllString(s, "")
}

// Accounts returns a copy of the accounts, in creation order.
func (l *Ledger) Accounts() []Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.doc.Accounts)
}

// Account returns the account with this id.
func (l *Ledger) Account(id string) (Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.accountIndex(id)
	if i < 0 {
		return Account{}, fmt.Errorf("%w: account %q", ErrNotFound, id)
	}
	return l.doc.Accounts[i], nil
}

func (l *Ledger) accountIndex(id string) int {
	return slices.IndexFunc(l.doc.Accounts, func(a Account) bool { return a.ID == id })
}

// AddAccount creates an account with a zero balance. The id is derived from
// the name unless id is given; either way it gets a "-1", "-2"... suffix if
// already taken.
func (l *Ledger) AddAccount(name, icon, color, id string) (Account, error) {
	var a Account
	err := l.update(func() ([]Change, error) {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name is required", ErrValidation)
		}
		base := Slug(id)
		if base == "" {
			base = Slug(name)
		}
		if base == "" {
			return nil, fmt.Errorf("%w: cannot derive an account id from %q", ErrValidation, name)
		}
		if color != "" && !isHexColor(color) {
			return nil, fmt.Errorf("%w: invalid color %q", ErrValidation, color)
		}
		uid := base
		for n := 1; l.accountIndex(uid) >= 0 || uid == Unknown; n++ {
			uid = base + "-" + strconv.Itoa(n)
		}
		if icon == "" {
			icon = "wallet"
		}
		if color == "" {
			color = palette[len(l.doc.Accounts)%len(palette)]
		}
		a = Account{ID: uid, Name: name, Icon: icon, Color: color}
		l.doc.Accounts = append(l.doc.Accounts, a)
		l.doc.Balances[uid] = M(0)
		l.opening[uid] = M(0)
		l.logger.Debug("add account", "id", uid)
		return []Change{{Kind: AccountAdded, ID: uid}}, nil
	})
	return a, err
}

// EditAccount updates the name, icon and color of an account. Blank icon or
// color are left unchanged. The id cannot change.
func (l *Ledger) EditAccount(id, name, icon, color string) (Account, error) {
	var a Account
	err := l.update(func() ([]Change, error) {
		i := l.accountIndex(id)
		if i < 0 {
			return nil, fmt.Errorf("%w: account %q", ErrNotFound, id)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name is required", ErrValidation)
		}
		if color != "" && !isHexColor(color) {
			return nil, fmt.Errorf("%w: invalid color %q", ErrValidation, color)
		}
		a = l.doc.Accounts[i]
		a.Name = name
		if icon != "" {
			a.Icon = icon
		}
		if color != "" {
			a.Color = color
		}
		l.doc.Accounts[i] = a
		return []Change{{Kind: AccountEdited, ID: id}}, nil
	})
	return a, err
}

// DeleteAccount removes an account. Its transactions move to the Unknown
// account and its balance is dropped; the dropped balance is returned.
// The last account cannot be deleted.
func (l *Ledger) DeleteAccount(id string) (Money, error) {
	var dropped Money
	err := l.update(func() ([]Change, error) {
		i := l.accountIndex(id)
		if i < 0 {
			return nil, fmt.Errorf("%w: account %q", ErrNotFound, id)
		}
		if len(l.doc.Accounts) <= 1 {
			return nil, fmt.Errorf("%w: cannot delete the last account %q", ErrPrecondition, id)
		}
		moved := 0
		for j := range l.doc.Transactions {
			if l.doc.Transactions[j].Account == id {
				l.doc.Transactions[j].Account = Unknown
				moved++
			}
		}
		dropped = l.doc.Balances[id]
		delete(l.doc.Balances, id)
		delete(l.opening, id)
		l.doc.Accounts = slices.Delete(l.doc.Accounts, i, i+1)
		l.logger.Info("delete account", "id", id, "orphans", moved, "balance", dropped)
		return []Change{{Kind: AccountDeleted, ID: id}}, nil
	})
	return dropped, err
}

// TotalBalance returns the sum of every tracked balance.
func (l *Ledger) TotalBalance() Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	var total Money
	for id, b := range l.doc.Balances {
		if id != Unknown {
			total = total.Add(b)
		}
	}
	return total
}
