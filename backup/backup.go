// Package backup copies the ledger document to a remote or local target and
// restores it from there.
package backup

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/etnz/moneymanager"
	"github.com/etnz/moneymanager/date"
)

// Target keeps named backups.
type Target interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
}

// Name returns the name of the backup of l taken today.
func Name(l *moneymanager.Ledger) string { return nameOn(l.Today()) }

func nameOn(d date.Date) string { return fmt.Sprintf("money-manager-backup-%s.json", d) }

// Backup exports the ledger to t under today's name, then records the
// backup time in the settings. It returns the backup name.
func Backup(ctx context.Context, l *moneymanager.Ledger, t Target) (string, error) {
	var buf bytes.Buffer
	if err := l.Export(&buf); err != nil {
		return "", err
	}
	day := l.Today()
	name := nameOn(day)
	if err := t.Put(ctx, name, buf.Bytes()); err != nil {
		return "", fmt.Errorf("%w: cannot write backup %s: %w", moneymanager.ErrStorage, name, err)
	}
	if err := l.SetBackupStatus(true, stamp(day, time.Now())); err != nil {
		return "", err
	}
	l.Logger().Info("backup done", "name", name, "size", buf.Len())
	return name, nil
}

// stamp returns the time of day of now on the ledger day d, in UTC.
func stamp(d date.Date, now time.Time) time.Time {
	now = now.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), now.Hour(), now.Minute(), now.Second(), 0, time.UTC)
}

// Restore replaces the ledger with the backup name read from t.
func Restore(ctx context.Context, l *moneymanager.Ledger, t Target, name string) error {
	data, err := t.Get(ctx, name)
	if err != nil {
		return fmt.Errorf("%w: cannot read backup %s: %w", moneymanager.ErrStorage, name, err)
	}
	return l.Import(bytes.NewReader(data))
}
