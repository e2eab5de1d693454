package moneymanager

import "slices"

// ChangeKind names the mutation that produced a Change.
type ChangeKind string

const (
	TransactionAdded   ChangeKind = "transaction-added"
	TransactionEdited  ChangeKind = "transaction-edited"
	TransactionDeleted ChangeKind = "transaction-deleted"
	TransactionPinned  ChangeKind = "transaction-pinned"
	AccountAdded       ChangeKind = "account-added"
	AccountEdited      ChangeKind = "account-edited"
	AccountDeleted     ChangeKind = "account-deleted"
	ScheduleAdded      ChangeKind = "schedule-added"
	ScheduleEdited     ChangeKind = "schedule-edited"
	ScheduleDeleted    ChangeKind = "schedule-deleted"
	Materialized       ChangeKind = "materialized"
	BillAdded          ChangeKind = "bill-added"
	BillEdited         ChangeKind = "bill-edited"
	BillDeleted        ChangeKind = "bill-deleted"
	BillPaid           ChangeKind = "bill-paid"
	TaxonomyChanged    ChangeKind = "taxonomy-changed"
	SettingsChanged    ChangeKind = "settings-changed"
	Replaced           ChangeKind = "replaced"
)

// Change is emitted after every successful mutation. ID is the id of the
// entity concerned (transaction, account, bill, schedule, category or tag),
// empty when the whole ledger changed.
type Change struct {
	Kind ChangeKind
	ID   string
}

type subscriber struct {
	id int
	f  func(Change)
}

// Subscribe registers f to be called after each successful mutation. f runs
// outside the ledger lock and may call back into the ledger. The returned
// function unregisters it.
func (l *Ledger) Subscribe(f func(Change)) (cancel func()) {
	l.subMu.Lock()
	defer l.subMu.Unlock()
	l.nextSub++
	id := l.nextSub
	l.subscribers = append(l.subscribers, subscriber{id: id, f: f})
	return func() {
		l.subMu.Lock()
		defer l.subMu.Unlock()
		l.subscribers = slices.DeleteFunc(l.subscribers, func(s subscriber) bool { return s.id == id })
	}
}

func (l *Ledger) notify(changes ...Change) {
	l.subMu.Lock()
	subs := slices.Clone(l.subscribers)
	l.subMu.Unlock()
	for _, c := range changes {
		for _, s := range subs {
			s.f(c)
		}
	}
}
