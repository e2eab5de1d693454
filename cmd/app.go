// Package cmd implements the mm command line application to manage a
// personal ledger.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/etnz/moneymanager"
	"github.com/etnz/moneymanager/date"
	"github.com/etnz/moneymanager/storage"
	"github.com/google/subcommands"
)

// stdout receives the command output.
var stdout io.Writer = os.Stdout

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "transactions")
	c.Register(&editCmd{}, "transactions")
	c.Register(&rmCmd{}, "transactions")
	c.Register(&pinCmd{}, "transactions")
	c.Register(&showCmd{}, "transactions")
	c.Register(&lsCmd{}, "transactions")
	c.Register(&searchCmd{}, "transactions")
	c.Register(&suggestCmd{}, "transactions")

	c.Register(accountCmd(), "ledger")
	c.Register(billCmd(), "ledger")
	c.Register(categoryCmd(), "ledger")
	c.Register(tagCmd(), "ledger")
	c.Register(budgetCmd(), "ledger")
	c.Register(recurringCmd(), "ledger")
	c.Register(&settingsCmd{}, "ledger")

	c.Register(&dashboardCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&queryCmd{}, "reports")

	c.Register(&exportCmd{}, "data")
	c.Register(&importCmd{}, "data")
	c.Register(&resetCmd{}, "data")
	c.Register(&verifyCmd{}, "data")
	c.Register(&backupCmd{}, "data")
	c.Register(&restoreCmd{}, "data")

	c.Register(&configCmd{}, "")
	c.Register(&topicCmd{}, "")
}

// openStore returns the store selected by the configuration, and the
// function releasing it.
func openStore(c Config) (storage.Store, func() error, error) {
	switch c.Data.Backend {
	case "sqlite":
		db, err := storage.OpenSQLite(c.Data.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		return storage.File{Path: c.Data.Path}, func() error { return nil }, nil
	}
}

// session is a ledger opened by a command. Every change is saved to the
// store as soon as it is made.
type session struct {
	*moneymanager.Ledger
	config  Config
	logger  *log.Logger
	stop    func()
	release func() error
	errs    []error
}

// openLedger loads the ledger and creates the recurring transactions that
// are due.
func openLedger(ctx context.Context) (*session, error) {
	c, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(c)
	opts := []moneymanager.Option{moneymanager.WithLogger(logger)}
	if c.Today != "" {
		today, err := date.Parse(c.Today)
		if err != nil {
			return nil, fmt.Errorf("invalid today: %w", err)
		}
		opts = append(opts, moneymanager.WithClock(func() date.Date { return today }))
	}

	store, release, err := openStore(c)
	if err != nil {
		return nil, err
	}
	l, err := storage.Open(ctx, store, opts...)
	if err != nil {
		release()
		return nil, err
	}
	logger.Debug("ledger opened", "backend", c.Data.Backend, "path", c.Data.Path)

	s := &session{Ledger: l, config: c, logger: logger, release: release}
	s.stop = storage.AutoSave(ctx, l, store, func(err error) {
		logger.Error("cannot save ledger", "err", err)
		s.errs = append(s.errs, err)
	})

	created := l.Materialize()
	if len(created) > 0 && l.Settings().Recurring.Notifications {
		for _, tx := range created {
			fmt.Fprintf(os.Stderr, "Created recurring transaction %s: %s %s\n", tx.ID, tx.Description, tx.Signed().SignedFormat(l.Currency()))
		}
	}
	return s, nil
}

// Close stops saving and releases the store. It returns the save failures.
func (s *session) Close() error {
	s.stop()
	if err := s.release(); err != nil {
		s.errs = append(s.errs, err)
	}
	return errors.Join(s.errs...)
}

// done closes the session and turns a save failure into a failed command.
func (s *session) done(status subcommands.ExitStatus) subcommands.ExitStatus {
	if err := s.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	return status
}

// withLedger opens the ledger, runs f and saves.
func withLedger(ctx context.Context, f func(s *session) subcommands.ExitStatus) subcommands.ExitStatus {
	s, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return s.done(f(s))
}

// fail reports err and fails the command.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// usageError reports a misuse of the command.
func usageError(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}
