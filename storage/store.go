// Package storage persists a ledger document in a byte-level backend and
// keeps it saved after every change.
package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/etnz/moneymanager"
)

// Store holds a single document.
//
// Load returns nil data and no error when nothing was ever saved.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Open loads the ledger held by store. Missing or malformed data falls back
// to the default ledger, a broken store is an error.
func Open(ctx context.Context, store Store, opts ...moneymanager.Option) (*moneymanager.Ledger, error) {
	data, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot load ledger: %w", moneymanager.ErrStorage, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return moneymanager.New(opts...), nil
	}
	l, err := moneymanager.Decode(bytes.NewReader(data), opts...)
	if err != nil {
		l = moneymanager.New(opts...)
		l.Logger().Warn("stored ledger is malformed, starting from defaults", "err", err)
	}
	return l, nil
}

// Save writes the ledger to store.
func Save(ctx context.Context, l *moneymanager.Ledger, store Store) error {
	var buf bytes.Buffer
	if err := l.Encode(&buf); err != nil {
		return err
	}
	if err := store.Save(ctx, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: cannot save ledger: %w", moneymanager.ErrStorage, err)
	}
	return nil
}

// AutoSave saves the whole ledger after each change, until the returned
// function is called. Save failures are reported to onErr and do not undo
// the change.
func AutoSave(ctx context.Context, l *moneymanager.Ledger, store Store, onErr func(error)) (stop func()) {
	return l.Subscribe(func(c moneymanager.Change) {
		if err := Save(ctx, l, store); err != nil && onErr != nil {
			onErr(fmt.Errorf("after %s %s: %w", c.Kind, c.ID, err))
		}
	})
}
