package moneymanager

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/etnz/moneymanager/date"
	"github.com/google/uuid"
)

// Unknown is the account of transactions whose account was deleted. Its
// balance is never tracked.
const Unknown = "unknown"

// IDGenerator returns a fresh unique id starting with prefix ("tx", "bill",
// "rec").
type IDGenerator func(prefix string) string

// RandomIDs generates "<prefix>-<uuid>" ids.
func RandomIDs(prefix string) string { return prefix + "-" + uuid.NewString() }

// SequentialIDs returns a generator of "<prefix>-1", "<prefix>-2"... with
// one counter shared by every prefix.
func SequentialIDs() IDGenerator {
	var n atomic.Int64
	return func(prefix string) string {
		return prefix + "-" + strconv.FormatInt(n.Add(1), 10)
	}
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithIDs sets the id generator.
func WithIDs(g IDGenerator) Option { return func(l *Ledger) { l.ids = g } }

// WithClock sets the function returning today's date.
func WithClock(today func() date.Date) Option { return func(l *Ledger) { l.today = today } }

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option { return func(l *Ledger) { l.logger = logger } }

// Ledger owns the accounts, balances, transactions and every derived index.
//
// All methods are safe for concurrent use. Mutations are validated before
// any change is made, so a failed call leaves the ledger untouched.
type Ledger struct {
	mu  sync.Mutex
	doc Document
	// opening is the part of each balance not explained by transactions,
	// measured when the document was loaded.
	opening map[string]Money

	ids    IDGenerator
	today  func() date.Date
	logger *log.Logger

	subMu       sync.Mutex
	subscribers []subscriber
	nextSub     int
}

// New creates a ledger holding the default state: three accounts, the
// default categories and no transaction.
func New(opts ...Option) *Ledger {
	return newLedger(defaultDocument(), opts...)
}

func newLedger(doc Document, opts ...Option) *Ledger {
	l := &Ledger{
		ids:    RandomIDs,
		today:  date.Today,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.reset(doc)
	return l
}

// reset replaces the whole state and records the opening balances.
func (l *Ledger) reset(doc Document) {
	l.doc = doc
	l.opening = make(map[string]Money, len(doc.Balances))
	for id, b := range doc.Balances {
		l.opening[id] = b
	}
	for _, tx := range doc.Transactions {
		if b, ok := l.opening[tx.Account]; ok {
			l.opening[tx.Account] = b.Sub(tx.Signed())
		}
	}
}

// Logger returns the logger of the ledger.
func (l *Ledger) Logger() *log.Logger { return l.logger }

// Today returns the current date according to the ledger clock.
func (l *Ledger) Today() date.Date { return l.today() }

// update runs f under the lock and notifies subscribers of the changes it
// returns, once the lock is released.
func (l *Ledger) update(f func() ([]Change, error)) error {
	l.mu.Lock()
	changes, err := f()
	l.mu.Unlock()
	if err != nil {
		return err
	}
	l.notify(changes...)
	return nil
}

// apply is update for changes that cannot fail.
func (l *Ledger) apply(f func() []Change) {
	l.mu.Lock()
	changes := f()
	l.mu.Unlock()
	l.notify(changes...)
}

// assignIDs gives an id to the transactions stored without one, and adds
// the pinned ones to the pinned index. It returns the fixes made.
func (l *Ledger) assignIDs() []string {
	var fixes []string
	for i := range l.doc.Transactions {
		tx := &l.doc.Transactions[i]
		if tx.ID != "" {
			continue
		}
		tx.ID = l.ids("tx")
		fixes = append(fixes, "transaction "+tx.ID+" id")
		if tx.IsPinned {
			l.pin(tx.ID)
		}
	}
	if len(fixes) > 0 {
		l.unpin("")
	}
	return fixes
}

// hasAccount reports whether id is an existing account.
func (l *Ledger) hasAccount(id string) bool {
	return slices.ContainsFunc(l.doc.Accounts, func(a Account) bool { return a.ID == id })
}

// post applies a signed amount to an account balance. The Unknown account and
// accounts without a balance entry are not tracked.
func (l *Ledger) post(account string, amount Money) {
	if account == Unknown {
		return
	}
	b, ok := l.doc.Balances[account]
	if !ok {
		return
	}
	l.doc.Balances[account] = b.Add(amount)
}

func (l *Ledger) pin(id string) {
	if !slices.Contains(l.doc.Settings.PinnedTransactions, id) {
		l.doc.Settings.PinnedTransactions = append(l.doc.Settings.PinnedTransactions, id)
	}
}

func (l *Ledger) unpin(id string) {
	l.doc.Settings.PinnedTransactions = slices.DeleteFunc(l.doc.Settings.PinnedTransactions, func(p string) bool { return p == id })
}

func (l *Ledger) indexOf(id string) int {
	return slices.IndexFunc(l.doc.Transactions, func(t Transaction) bool { return t.ID == id })
}

func (l *Ledger) validate(amount Money, typ Type, account string) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %v", ErrValidation, amount)
	}
	if typ != Income && typ != Expense {
		return fmt.Errorf("%w: unknown transaction type %q", ErrValidation, typ)
	}
	if !l.hasAccount(account) {
		return fmt.Errorf("%w: unknown account %q", ErrValidation, account)
	}
	return nil
}

// AddTransaction validates and appends a new transaction, then posts its
// amount to the account balance. A pinned transaction joins the pinned
// index; a recurring one gets a monthly schedule starting a month after its
// date.
func (l *Ledger) AddTransaction(in TransactionInput) (Transaction, error) {
	var tx Transaction
	err := l.update(func() ([]Change, error) {
		if err := l.validate(in.Amount, in.Type, in.Account); err != nil {
			return nil, err
		}
		tx = Transaction{
			ID:          l.ids("tx"),
			Amount:      in.Amount,
			Account:     in.Account,
			Type:        in.Type,
			Description: in.Description,
			Date:        in.Date,
			Category:    in.Category,
			IsRecurring: in.IsRecurring,
			IsPinned:    in.IsPinned,
			Notes:       in.Notes,
			Tags:        in.Tags,
			Location:    in.Location,
			Attachments: in.Attachments,
		}
		if tx.Date.IsZero() {
			tx.Date = l.today()
		}
		if tx.Category == "" {
			tx.Category = Other
		}
		if tx.Tags == nil {
			tx.Tags = []string{}
		}
		if tx.Attachments == nil {
			tx.Attachments = []Attachment{}
		}
		tx = tx.clone()
		l.doc.Transactions = append(l.doc.Transactions, tx)
		l.post(tx.Account, tx.Signed())
		if tx.IsPinned {
			l.pin(tx.ID)
		}
		if tx.IsRecurring {
			l.doc.Settings.RecurringTransactions = append(l.doc.Settings.RecurringTransactions, l.scheduleFor(tx))
		}
		l.logger.Debug("append transaction", "id", tx.ID, "account", tx.Account, "amount", tx.Signed())
		tx = tx.clone()
		return []Change{{Kind: TransactionAdded, ID: tx.ID}}, nil
	})
	return tx, err
}

// EditTransaction replaces the fields of transaction id. The old amount is
// reversed on the old account before the new one is posted to the new
// account.
func (l *Ledger) EditTransaction(id string, e TransactionEdit) (Transaction, error) {
	var tx Transaction
	err := l.update(func() ([]Change, error) {
		i := l.indexOf(id)
		if i < 0 || id == "" {
			return nil, fmt.Errorf("%w: transaction %q", ErrNotFound, id)
		}
		if err := l.validate(e.Amount, e.Type, e.Account); err != nil {
			return nil, err
		}
		old := l.doc.Transactions[i]
		for _, r := range e.RemoveAttachments {
			if r < 0 || r >= len(old.Attachments) {
				return nil, fmt.Errorf("%w: no attachment at index %d", ErrValidation, r)
			}
		}

		tx = old
		tx.Amount = e.Amount
		tx.Account = e.Account
		tx.Type = e.Type
		tx.Description = e.Description
		if !e.Date.IsZero() {
			tx.Date = e.Date
		}
		tx.Category = e.Category
		if tx.Category == "" {
			tx.Category = Other
		}
		tx.IsRecurring = e.IsRecurring
		tx.IsPinned = e.IsPinned
		tx.Notes = e.Notes
		tx.Tags = slices.Clone(e.Tags)
		if tx.Tags == nil {
			tx.Tags = []string{}
		}
		if e.Location != nil {
			loc := *e.Location
			tx.Location = &loc
		}
		attachments := make([]Attachment, 0, len(old.Attachments)+len(e.AddAttachments))
		for j, a := range old.Attachments {
			if !slices.Contains(e.RemoveAttachments, j) {
				attachments = append(attachments, a)
			}
		}
		tx.Attachments = append(attachments, e.AddAttachments...)

		l.post(old.Account, old.Signed().Neg())
		l.post(tx.Account, tx.Signed())
		switch {
		case tx.IsPinned && !old.IsPinned:
			l.pin(tx.ID)
		case !tx.IsPinned && old.IsPinned:
			l.unpin(tx.ID)
		}
		l.doc.Transactions[i] = tx
		l.logger.Debug("edit transaction", "id", id, "from", old.Signed(), "to", tx.Signed())
		tx = tx.clone()
		return []Change{{Kind: TransactionEdited, ID: id}}, nil
	})
	return tx, err
}

// DeleteTransaction removes a transaction and reverses its amount. Schedules
// created from it are kept, use DeleteSchedule to stop them.
func (l *Ledger) DeleteTransaction(id string) error {
	return l.update(func() ([]Change, error) {
		i := l.indexOf(id)
		if i < 0 || id == "" {
			return nil, fmt.Errorf("%w: transaction %q", ErrNotFound, id)
		}
		tx := l.doc.Transactions[i]
		l.post(tx.Account, tx.Signed().Neg())
		l.unpin(id)
		l.doc.Transactions = slices.Delete(l.doc.Transactions, i, i+1)
		l.logger.Debug("delete transaction", "id", id)
		return []Change{{Kind: TransactionDeleted, ID: id}}, nil
	})
}

// TogglePin flips the pinned flag of transaction id and returns the new value.
func (l *Ledger) TogglePin(id string) (bool, error) {
	var pinned bool
	err := l.update(func() ([]Change, error) {
		i := l.indexOf(id)
		if i < 0 || id == "" {
			return nil, fmt.Errorf("%w: transaction %q", ErrNotFound, id)
		}
		pinned = l.togglePin(i)
		return []Change{{Kind: TransactionPinned, ID: id}}, nil
	})
	return pinned, err
}

// TogglePinAt is like TogglePin for the transaction at index i in storage
// order. A transaction without id is given one first.
func (l *Ledger) TogglePinAt(i int) (bool, error) {
	var pinned bool
	err := l.update(func() ([]Change, error) {
		if i < 0 || i >= len(l.doc.Transactions) {
			return nil, fmt.Errorf("%w: no transaction at index %d", ErrNotFound, i)
		}
		if l.doc.Transactions[i].ID == "" {
			l.doc.Transactions[i].ID = l.ids("tx")
		}
		pinned = l.togglePin(i)
		return []Change{{Kind: TransactionPinned, ID: l.doc.Transactions[i].ID}}, nil
	})
	return pinned, err
}

func (l *Ledger) togglePin(i int) bool {
	tx := &l.doc.Transactions[i]
	tx.IsPinned = !tx.IsPinned
	if tx.IsPinned {
		l.pin(tx.ID)
	} else {
		l.unpin(tx.ID)
	}
	return tx.IsPinned
}

// Transaction returns the transaction with this id.
func (l *Ledger) Transaction(id string) (Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexOf(id)
	if i < 0 {
		return Transaction{}, fmt.Errorf("%w: transaction %q", ErrNotFound, id)
	}
	return l.doc.Transactions[i].clone(), nil
}

// Balance returns the balance of an account, and false if it is not tracked.
func (l *Ledger) Balance(account string) (Money, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.doc.Balances[account]
	return b, ok
}

// Balances returns a copy of every tracked balance.
func (l *Ledger) Balances() map[string]Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	return maps.Clone(l.doc.Balances)
}

// Verify checks the ledger invariants: every tracked balance equals its
// opening amount plus the signed sum of its transactions, and the pinned
// index holds exactly the pinned transactions.
func (l *Ledger) Verify() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	sums := maps.Clone(l.opening)
	for _, tx := range l.doc.Transactions {
		if s, ok := sums[tx.Account]; ok {
			sums[tx.Account] = s.Add(tx.Signed())
		}
	}
	for id, b := range l.doc.Balances {
		if id == Unknown {
			continue
		}
		want, ok := sums[id]
		if !ok {
			want = M(0)
		}
		if !b.Equal(want) {
			return fmt.Errorf("balance of %q is %v, transactions sum to %v", id, b, want)
		}
	}

	pinned := make(map[string]bool)
	for _, tx := range l.doc.Transactions {
		if tx.IsPinned {
			pinned[tx.ID] = true
		}
	}
	for _, id := range l.doc.Settings.PinnedTransactions {
		if !pinned[id] {
			return fmt.Errorf("pinned index holds %q which is not a pinned transaction", id)
		}
		delete(pinned, id)
	}
	for id := range pinned {
		return fmt.Errorf("pinned transaction %q is missing from the pinned index", id)
	}
	return nil
}
