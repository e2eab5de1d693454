package moneymanager

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// AppVersion is the document version written by this package.
const AppVersion = "0.5.0"

// Settings holds user preferences and the ledger's auxiliary indexes.
type Settings struct {
	Theme                 string     `json:"theme"`
	AccentColor           string     `json:"accentColor"`
	PinnedTransactions    []string   `json:"pinnedTransactions"`
	RecurringTransactions []Schedule `json:"recurringTransactions"`
	Version               string     `json:"version"`
	Dashboard             Dashboard  `json:"dashboard"`
	Backup                Backups    `json:"backup"`
	Recurring             Recurring  `json:"recurring"`
	Currency              string     `json:"currency,omitempty"`
}

// Dashboard lists which widgets are shown and the view opened at start.
type Dashboard struct {
	Widgets     map[string]bool `json:"widgets"`
	DefaultView string          `json:"defaultView"`
}

type Backups struct {
	GoogleDrive BackupStatus `json:"googleDrive"`
}

// BackupStatus records the state of the last remote backup.
type BackupStatus struct {
	Connected  bool       `json:"connected"`
	LastBackup *time.Time `json:"lastBackup"`
}

// Recurring configures schedule materialization.
type Recurring struct {
	AutoCreate    bool `json:"autoCreate"`
	Notifications bool `json:"notifications"`
}

// Themes are the accepted values of Settings.Theme.
var Themes = []string{"light", "dark", "system"}

func defaultSettings() Settings {
	return Settings{
		Theme:                 "light",
		AccentColor:           "#4a90e2",
		PinnedTransactions:    []string{},
		RecurringTransactions: []Schedule{},
		Version:               AppVersion,
		Dashboard: Dashboard{
			Widgets: map[string]bool{
				"totalBalance":       true,
				"accounts":           true,
				"recentTransactions": true,
				"upcomingBills":      false,
				"spendingChart":      false,
			},
			DefaultView: "transactions",
		},
		Recurring: Recurring{},
		Currency:  "EUR",
	}
}

func (s Settings) clone() Settings {
	s.PinnedTransactions = slices.Clone(s.PinnedTransactions)
	s.RecurringTransactions = slices.Clone(s.RecurringTransactions)
	for i := range s.RecurringTransactions {
		s.RecurringTransactions[i].Tags = slices.Clone(s.RecurringTransactions[i].Tags)
	}
	s.Dashboard.Widgets = maps.Clone(s.Dashboard.Widgets)
	if s.Backup.GoogleDrive.LastBackup != nil {
		t := *s.Backup.GoogleDrive.LastBackup
		s.Backup.GoogleDrive.LastBackup = &t
	}
	return s
}

// Settings returns a copy of the current settings.
func (l *Ledger) Settings() Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.doc.Settings.clone()
}

// Currency returns the ISO code used to format amounts.
func (l *Ledger) Currency() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.doc.Settings.Currency == "" {
		return "EUR"
	}
	return l.doc.Settings.Currency
}

func (l *Ledger) updateSettings(f func(s *Settings) error) error {
	return l.update(func() ([]Change, error) {
		if err := f(&l.doc.Settings); err != nil {
			return nil, err
		}
		return []Change{{Kind: SettingsChanged}}, nil
	})
}

// SetTheme sets the theme to one of Themes.
func (l *Ledger) SetTheme(theme string) error {
	if !slices.Contains(Themes, theme) {
		return fmt.Errorf("%w: unknown theme %q", ErrValidation, theme)
	}
	return l.updateSettings(func(s *Settings) error { s.Theme = theme; return nil })
}

// SetAccentColor sets the accent color, a hex string like "#4a90e2".
func (l *Ledger) SetAccentColor(color string) error {
	if !isHexColor(color) {
		return fmt.Errorf("%w: invalid color %q", ErrValidation, color)
	}
	return l.updateSettings(func(s *Settings) error { s.AccentColor = color; return nil })
}

// SetAutoCreate enables or disables recurring materialization.
func (l *Ledger) SetAutoCreate(on bool) error {
	return l.updateSettings(func(s *Settings) error { s.Recurring.AutoCreate = on; return nil })
}

// SetNotifications enables or disables reporting of materialized transactions.
func (l *Ledger) SetNotifications(on bool) error {
	return l.updateSettings(func(s *Settings) error { s.Recurring.Notifications = on; return nil })
}

// SetWidget shows or hides a dashboard widget.
func (l *Ledger) SetWidget(name string, on bool) error {
	if name == "" {
		return fmt.Errorf("%w: widget name is required", ErrValidation)
	}
	return l.updateSettings(func(s *Settings) error {
		if s.Dashboard.Widgets == nil {
			s.Dashboard.Widgets = make(map[string]bool)
		}
		s.Dashboard.Widgets[name] = on
		return nil
	})
}

// SetDefaultView sets the view opened at start.
func (l *Ledger) SetDefaultView(view string) error {
	if view == "" {
		return fmt.Errorf("%w: view is required", ErrValidation)
	}
	return l.updateSettings(func(s *Settings) error { s.Dashboard.DefaultView = view; return nil })
}

// SetCurrency sets the ISO currency code used to format amounts.
func (l *Ledger) SetCurrency(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("%w: invalid currency code %q", ErrValidation, code)
	}
	return l.updateSettings(func(s *Settings) error { s.Currency = code; return nil })
}

// SetBackupStatus records the outcome of a backup.
func (l *Ledger) SetBackupStatus(connected bool, at time.Time) error {
	return l.updateSettings(func(s *Settings) error {
		s.Backup.GoogleDrive.Connected = connected
		if !at.IsZero() {
			at = at.UTC()
			s.Backup.GoogleDrive.LastBackup = &at
		}
		return nil
	})
}

func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case '0' <= r && r <= '9', 'a' <= r && r <= 'f', 'A' <= r && r <= 'F':
		default:
			return false
		}
	}
	return true
}
