package moneymanager

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/etnz/moneymanager/date"
)

// Frequency is the cadence of a recurring schedule.
type Frequency string

const (
	Daily     Frequency = "daily"
	Weekly    Frequency = "weekly"
	Biweekly  Frequency = "biweekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

// Frequencies lists the valid frequencies, shortest first.
var Frequencies = []Frequency{Daily, Weekly, Biweekly, Monthly, Quarterly, Yearly}

// ParseFrequency parses a frequency name.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(s)
	if !slices.Contains(Frequencies, f) {
		return "", fmt.Errorf("%w: unknown frequency %q", ErrValidation, s)
	}
	return f, nil
}

// due reports whether a schedule last materialized on last is due on today.
// Short cadences count elapsed days, long ones count calendar months. A last
// date after today is never due.
func (f Frequency) due(last, today date.Date) bool {
	if today.Before(last) {
		return false
	}
	switch f {
	case Daily:
		return date.DaysBetween(last, today) >= 1
	case Weekly:
		return date.DaysBetween(last, today) >= 7
	case Biweekly:
		return date.DaysBetween(last, today) >= 14
	case Monthly:
		return date.MonthsBetween(last, today) >= 1
	case Quarterly:
		return date.MonthsBetween(last, today) >= 3
	case Yearly:
		return date.MonthsBetween(last, today) >= 12
	default:
		return false
	}
}

// after returns the date one period after d.
func (f Frequency) after(d date.Date) date.Date {
	switch f {
	case Daily:
		return d.Add(1)
	case Weekly:
		return d.Add(7)
	case Biweekly:
		return d.Add(14)
	case Quarterly:
		return d.AddMonth(3)
	case Yearly:
		return d.AddMonth(12)
	default:
		return d.AddMonth(1)
	}
}

// Schedule is a recurring transaction template.
type Schedule struct {
	ID            string
	TransactionID string
	Frequency     Frequency
	Account       string
	Amount        Money
	Type          Type
	Description   string
	Category      string
	Tags          []string
	Active        bool
	LastCreated   date.Date // zero when it never materialized
	NextDueDate   date.Date
}

// Key identifies the schedule: its id, or for older entries the id of the
// transaction it was created from.
func (s Schedule) Key() string {
	if s.ID != "" {
		return s.ID
	}
	return s.TransactionID
}

// NextOccurrence returns the date the schedule materializes next: today if
// it never did, otherwise one period after the last time.
func (s Schedule) NextOccurrence(today date.Date) date.Date {
	if s.LastCreated.IsZero() {
		return today
	}
	return s.Frequency.after(s.LastCreated)
}

func (s Schedule) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("id", s.ID)
	w.Optional("transactionId", s.TransactionID)
	w.Append("frequency", s.Frequency)
	w.Append("account", s.Account)
	w.Append("amount", s.Amount)
	w.Append("type", s.Type)
	w.Append("description", s.Description)
	w.Append("category", s.Category)
	w.List("tags", s.Tags)
	w.Append("active", s.Active)
	if s.LastCreated.IsZero() {
		w.Append("lastCreated", nil)
	} else {
		w.Append("lastCreated", s.LastCreated)
	}
	if !s.NextDueDate.IsZero() {
		w.Append("nextDueDate", s.NextDueDate)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON reads a schedule. A missing "active" means active, a missing
// frequency means monthly; older documents named it "schedule".
func (s *Schedule) UnmarshalJSON(b []byte) error {
	var v struct {
		ID            string    `json:"id"`
		TransactionID string    `json:"transactionId"`
		Frequency     Frequency `json:"frequency"`
		Legacy        Frequency `json:"schedule"`
		Account       string    `json:"account"`
		Amount        Money     `json:"amount"`
		Type          Type      `json:"type"`
		Description   string    `json:"description"`
		Category      string    `json:"category"`
		Tags          []string  `json:"tags"`
		Active        *bool     `json:"active"`
		LastCreated   date.Date `json:"lastCreated"`
		NextDueDate   date.Date `json:"nextDueDate"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	freq := v.Frequency
	if freq == "" {
		freq = v.Legacy
	}
	if !slices.Contains(Frequencies, freq) {
		freq = Monthly
	}
	*s = Schedule{
		ID:            v.ID,
		TransactionID: v.TransactionID,
		Frequency:     freq,
		Account:       v.Account,
		Amount:        v.Amount,
		Type:          v.Type,
		Description:   v.Description,
		Category:      v.Category,
		Tags:          v.Tags,
		Active:        v.Active == nil || *v.Active,
		LastCreated:   v.LastCreated,
		NextDueDate:   v.NextDueDate,
	}
	return nil
}

// scheduleFor creates the monthly schedule of a transaction flagged recurring.
func (l *Ledger) scheduleFor(tx Transaction) Schedule {
	return Schedule{
		ID:            l.ids("rec"),
		TransactionID: tx.ID,
		Frequency:     Monthly,
		Account:       tx.Account,
		Amount:        tx.Amount,
		Type:          tx.Type,
		Description:   tx.Description,
		Category:      tx.Category,
		Tags:          slices.Clone(tx.Tags),
		Active:        true,
		LastCreated:   tx.Date,
		NextDueDate:   tx.Date.AddMonth(1),
	}
}

// ScheduleInput describes a schedule created explicitly.
//
// A zero LastCreated makes the schedule due at the next materialization.
type ScheduleInput struct {
	Frequency   Frequency
	Account     string
	Amount      Money
	Type        Type
	Description string
	Category    string
	Tags        []string
	LastCreated date.Date
}

// AddSchedule creates an active schedule.
func (l *Ledger) AddSchedule(in ScheduleInput) (Schedule, error) {
	var s Schedule
	err := l.update(func() ([]Change, error) {
		if _, err := ParseFrequency(string(in.Frequency)); err != nil {
			return nil, err
		}
		if err := l.validate(in.Amount, in.Type, in.Account); err != nil {
			return nil, err
		}
		s = Schedule{
			ID:          l.ids("rec"),
			Frequency:   in.Frequency,
			Account:     in.Account,
			Amount:      in.Amount,
			Type:        in.Type,
			Description: in.Description,
			Category:    in.Category,
			Tags:        slices.Clone(in.Tags),
			Active:      true,
			LastCreated: in.LastCreated,
		}
		if s.Category == "" {
			s.Category = Other
		}
		s.NextDueDate = s.NextOccurrence(l.today())
		l.doc.Settings.RecurringTransactions = append(l.doc.Settings.RecurringTransactions, s)
		return []Change{{Kind: ScheduleAdded, ID: s.ID}}, nil
	})
	return s, err
}

// Schedules returns a copy of the recurring schedules.
func (l *Ledger) Schedules() []Schedule {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.doc.Settings.clone().RecurringTransactions
}

func (l *Ledger) scheduleIndex(key string) int {
	return slices.IndexFunc(l.doc.Settings.RecurringTransactions, func(s Schedule) bool { return key != "" && s.Key() == key })
}

// SetScheduleActive pauses or resumes a schedule.
func (l *Ledger) SetScheduleActive(key string, active bool) error {
	return l.update(func() ([]Change, error) {
		i := l.scheduleIndex(key)
		if i < 0 {
			return nil, fmt.Errorf("%w: schedule %q", ErrNotFound, key)
		}
		l.doc.Settings.RecurringTransactions[i].Active = active
		return []Change{{Kind: ScheduleEdited, ID: key}}, nil
	})
}

// ToggleSchedule flips the active flag of a schedule and returns the new value.
func (l *Ledger) ToggleSchedule(key string) (bool, error) {
	var active bool
	err := l.update(func() ([]Change, error) {
		i := l.scheduleIndex(key)
		if i < 0 {
			return nil, fmt.Errorf("%w: schedule %q", ErrNotFound, key)
		}
		s := &l.doc.Settings.RecurringTransactions[i]
		s.Active = !s.Active
		active = s.Active
		return []Change{{Kind: ScheduleEdited, ID: key}}, nil
	})
	return active, err
}

// DeleteSchedule removes a schedule. Transactions it created are kept.
func (l *Ledger) DeleteSchedule(key string) error {
	return l.update(func() ([]Change, error) {
		i := l.scheduleIndex(key)
		if i < 0 {
			return nil, fmt.Errorf("%w: schedule %q", ErrNotFound, key)
		}
		l.doc.Settings.RecurringTransactions = slices.Delete(l.doc.Settings.RecurringTransactions, i, i+1)
		return []Change{{Kind: ScheduleDeleted, ID: key}}, nil
	})
}

// Materialize creates the transactions of every due schedule, at most one
// per schedule, dated today. Missed periods are not caught up. It does
// nothing unless auto-creation is enabled in the settings.
func (l *Ledger) Materialize() []Transaction {
	var created []Transaction
	l.apply(func() []Change {
		if !l.doc.Settings.Recurring.AutoCreate {
			return nil
		}
		today := l.today()
		var changes []Change
		for i := range l.doc.Settings.RecurringTransactions {
			s := &l.doc.Settings.RecurringTransactions[i]
			if !s.Active {
				continue
			}
			if !s.LastCreated.IsZero() && !s.Frequency.due(s.LastCreated, today) {
				continue
			}
			if !l.hasAccount(s.Account) {
				l.logger.Warn("skip schedule of a deleted account", "schedule", s.Key(), "account", s.Account)
				continue
			}
			tx := Transaction{
				ID:          l.ids("tx"),
				Amount:      s.Amount,
				Account:     s.Account,
				Type:        s.Type,
				Description: s.Description,
				Date:        today,
				Category:    s.Category,
				IsRecurring: true,
				Notes:       "Auto-created recurring transaction: " + s.Description,
				Tags:        slices.Clone(s.Tags),
				Attachments: []Attachment{},
			}
			if tx.Tags == nil {
				tx.Tags = []string{}
			}
			l.doc.Transactions = append(l.doc.Transactions, tx)
			l.post(tx.Account, tx.Signed())
			s.LastCreated = today
			s.NextDueDate = s.Frequency.after(today)
			created = append(created, tx.clone())
			changes = append(changes, Change{Kind: Materialized, ID: tx.ID})
			if l.doc.Settings.Recurring.Notifications {
				l.logger.Info("created recurring "+string(tx.Type), "description", tx.Description, "amount", tx.Amount)
			} else {
				l.logger.Debug("materialize schedule", "schedule", s.Key(), "transaction", tx.ID)
			}
		}
		return changes
	})
	return created
}

// Run materializes due schedules now and then every period until ctx is
// done.
func (l *Ledger) Run(ctx context.Context, every time.Duration) error {
	l.Materialize()
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Materialize()
		}
	}
}
