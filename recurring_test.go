package moneymanager

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/etnz/moneymanager/date"
)

// scheduleLedger returns a ledger holding a single schedule, auto-creation
// on.
func scheduleLedger(t *testing.T, schedule string) *Ledger {
	t.Helper()
	return decodeTestLedger(t, fmt.Sprintf(`{
		"balances": {"cu": 100, "revolut": 0, "cash": 0},
		"transactions": [],
		"settings": {"recurring": {"autoCreate": true}, "recurringTransactions": [%s]}
	}`, schedule))
}

func TestMaterializeElapsed(t *testing.T) {
	testCases := []struct {
		frequency   Frequency
		lastCreated string
		want        int
	}{
		{Monthly, "2025-03-05", 0}, // 15 days ago, same month
		{Monthly, "2025-02-17", 1}, // 31 days ago
		{Monthly, "2025-02-28", 1}, // crosses a month boundary
		{Monthly, "2024-12-20", 1}, // missed periods are not caught up
		{Daily, "2025-03-20", 0},
		{Daily, "2025-03-19", 1},
		{Weekly, "2025-03-14", 0},
		{Weekly, "2025-03-13", 1},
		{Biweekly, "2025-03-07", 0},
		{Biweekly, "2025-03-06", 1},
		{Quarterly, "2025-01-31", 0},
		{Quarterly, "2024-12-31", 1},
		{Yearly, "2024-04-01", 0},
		{Yearly, "2024-03-31", 1},
		// a last creation date ahead of the clock is never due.
		{Daily, "2025-03-22", 0},
		{Weekly, "2025-04-01", 0},
		{Biweekly, "2025-05-20", 0},
		{Monthly, "2025-06-20", 0},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s since %s", tc.frequency, tc.lastCreated), func(t *testing.T) {
			l := scheduleLedger(t, fmt.Sprintf(`{"transactionId":"tx-src","frequency":%q,"account":"cu","amount":40,"type":"expense","description":"Gym","category":"Health & Fitness","tags":["sport"],"lastCreated":%q}`,
				tc.frequency, tc.lastCreated))

			var changes []Change
			l.Subscribe(func(c Change) { changes = append(changes, c) })

			created := l.Materialize()
			if len(created) != tc.want {
				t.Fatalf("Materialize() created %d transactions, want %d", len(created), tc.want)
			}
			if len(changes) != tc.want || tc.want == 1 && changes[0] != (Change{Kind: Materialized, ID: created[0].ID}) {
				t.Errorf("Materialize() notified %v", changes)
			}
			// a second run on the same day never creates anything.
			if again := l.Materialize(); len(again) != 0 {
				t.Errorf("second Materialize() created %d transactions, want 0", len(again))
			}
			if tc.want == 0 {
				assertBalance(t, l, "cu", m(100))
				return
			}
			tx := created[0]
			if tx.Date != today || !tx.IsRecurring || tx.Description != "Gym" || !tx.HasTag("sport") {
				t.Errorf("Materialize() = %+v", tx)
			}
			if tx.Notes != "Auto-created recurring transaction: Gym" {
				t.Errorf("Materialize() notes = %q", tx.Notes)
			}
			assertBalance(t, l, "cu", m(60))
			s := l.Schedules()[0]
			if s.LastCreated != today {
				t.Errorf("LastCreated = %v, want %v", s.LastCreated, today)
			}
			if want := tc.frequency.after(today); s.NextDueDate != want {
				t.Errorf("NextDueDate = %v, want %v", s.NextDueDate, want)
			}
			assertVerify(t, l)
		})
	}
}

func TestMaterializeSkips(t *testing.T) {
	testCases := []struct {
		name     string
		doc      string
		schedule string
	}{
		{
			name:     "auto create off",
			doc:      `{"settings":{"recurring":{"autoCreate":false},"recurringTransactions":[%s]}}`,
			schedule: `{"id":"rec-1","frequency":"daily","account":"cu","amount":1,"type":"expense","lastCreated":null}`,
		},
		{
			name:     "inactive",
			doc:      `{"settings":{"recurring":{"autoCreate":true},"recurringTransactions":[%s]}}`,
			schedule: `{"id":"rec-1","frequency":"daily","account":"cu","amount":1,"type":"expense","active":false,"lastCreated":null}`,
		},
		{
			name:     "deleted account",
			doc:      `{"settings":{"recurring":{"autoCreate":true},"recurringTransactions":[%s]}}`,
			schedule: `{"id":"rec-1","frequency":"daily","account":"gone","amount":1,"type":"expense","lastCreated":null}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := decodeTestLedger(t, fmt.Sprintf(tc.doc, tc.schedule))
			if got := l.Materialize(); len(got) != 0 {
				t.Errorf("Materialize() created %v, want nothing", got)
			}
			if n := len(l.List(ListOptions{})); n != 0 {
				t.Errorf("ledger holds %d transactions, want 0", n)
			}
		})
	}
}

func TestMaterializeNeverCreated(t *testing.T) {
	l := scheduleLedger(t, `{"id":"rec-1","frequency":"weekly","account":"cash","amount":10,"type":"income","description":"Allowance","lastCreated":null}`)
	created := l.Materialize()
	if len(created) != 1 {
		t.Fatalf("Materialize() created %d transactions, want 1", len(created))
	}
	assertBalance(t, l, "cash", m(10))
}

func TestScheduleLegacyDecode(t *testing.T) {
	l := scheduleLedger(t, `{"transactionId":"tx-9","schedule":"weekly","account":"cu","amount":"12.5","type":"expense","description":"Old","lastCreated":1740787200000}`)
	s := l.Schedules()[0]
	want := Schedule{
		TransactionID: "tx-9",
		Frequency:     Weekly,
		Account:       "cu",
		Amount:        m(12.5),
		Type:          Expense,
		Description:   "Old",
		Active:        true,
		LastCreated:   date.New(2025, 3, 1),
	}
	if s.Key() != "tx-9" || s.Frequency != want.Frequency || !s.Amount.Equal(want.Amount) || !s.Active || s.LastCreated != want.LastCreated {
		t.Errorf("decoded schedule = %+v, want %+v", s, want)
	}
	if got := s.NextOccurrence(today); got != date.New(2025, 3, 8) {
		t.Errorf("NextOccurrence() = %v, want 2025-03-08", got)
	}
}

func TestScheduleInvalidFrequency(t *testing.T) {
	l := scheduleLedger(t, `{"id":"rec-1","frequency":"hourly","account":"cu","amount":1,"type":"expense","lastCreated":null}`)
	if got := l.Schedules()[0].Frequency; got != Monthly {
		t.Errorf("Frequency = %q, want %q", got, Monthly)
	}
}

func TestScheduleLifecycle(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.AddSchedule(ScheduleInput{Frequency: "hourly", Account: "cu", Amount: m(1), Type: Expense}); !errors.Is(err, ErrValidation) {
		t.Errorf("AddSchedule(hourly) error = %v, want %v", err, ErrValidation)
	}
	if _, err := l.AddSchedule(ScheduleInput{Frequency: Weekly, Account: "nope", Amount: m(1), Type: Expense}); !errors.Is(err, ErrValidation) {
		t.Errorf("AddSchedule(unknown account) error = %v, want %v", err, ErrValidation)
	}

	s, err := l.AddSchedule(ScheduleInput{Frequency: Weekly, Account: "cu", Amount: m(9.99), Type: Expense, Description: "Music"})
	if err != nil {
		t.Fatalf("AddSchedule() error: %v", err)
	}
	if !s.Active || s.Category != Other || s.NextDueDate != today {
		t.Errorf("AddSchedule() = %+v", s)
	}

	active, err := l.ToggleSchedule(s.ID)
	if err != nil || active {
		t.Errorf("ToggleSchedule() = %v, %v, want false, nil", active, err)
	}
	if err := l.SetScheduleActive(s.ID, true); err != nil {
		t.Errorf("SetScheduleActive() error: %v", err)
	}
	if !l.Schedules()[0].Active {
		t.Errorf("schedule is not active")
	}
	if err := l.DeleteSchedule(s.ID); err != nil {
		t.Errorf("DeleteSchedule() error: %v", err)
	}
	if err := l.DeleteSchedule(s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteSchedule(again) error = %v, want %v", err, ErrNotFound)
	}
	if _, err := l.ToggleSchedule(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("ToggleSchedule(blank) error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteTransactionKeepsSchedule(t *testing.T) {
	l := newTestLedger(t)
	tx := mustAdd(t, l, TransactionInput{Amount: m(700), Account: "cu", Type: Expense, Description: "Rent", IsRecurring: true})
	if err := l.DeleteTransaction(tx.ID); err != nil {
		t.Fatal(err)
	}
	schedules := l.Schedules()
	if len(schedules) != 1 || schedules[0].TransactionID != tx.ID {
		t.Errorf("Schedules() = %+v, want the schedule of %s", schedules, tx.ID)
	}
}

func TestRun(t *testing.T) {
	l := scheduleLedger(t, `{"id":"rec-1","frequency":"daily","account":"cu","amount":5,"type":"expense","lastCreated":"2025-03-19"}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Run(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want %v", err, context.Canceled)
	}
	// Run materializes once before waiting.
	assertBalance(t, l, "cu", m(95))
}
