package moneymanager

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Enricher adds optional data to a transaction before it is committed, like
// attachments or a location. It may be slow and may fail.
type Enricher interface {
	Enrich(ctx context.Context, in *TransactionInput) error
}

// EnricherFunc adapts a function to an Enricher.
type EnricherFunc func(ctx context.Context, in *TransactionInput) error

func (f EnricherFunc) Enrich(ctx context.Context, in *TransactionInput) error { return f(ctx, in) }

// Prepare runs the enrichers on a copy of in and returns it, ready for
// AddTransaction. Enrichers failures are logged and never abort the
// preparation; what an enricher managed to add before failing is kept.
// Once ctx is done the remaining enrichers are skipped.
//
// Prepare does not hold the ledger lock.
func (l *Ledger) Prepare(ctx context.Context, in TransactionInput, enrichers ...Enricher) TransactionInput {
	in.Tags = slices.Clone(in.Tags)
	in.Attachments = slices.Clone(in.Attachments)
	for _, e := range enrichers {
		if err := ctx.Err(); err != nil {
			l.logger.Warn("skip enrichment", "err", err)
			break
		}
		if err := e.Enrich(ctx, &in); err != nil {
			l.logger.Warn("enrichment failed", "err", err)
		}
	}
	return in
}

// Attachments attaches the image files at paths as data URLs. Files that
// are not images, detected from their content, are ignored.
func Attachments(paths ...string) Enricher {
	return EnricherFunc(func(ctx context.Context, in *TransactionInput) error {
		var errs []error
		for _, path := range paths {
			if ctx.Err() != nil {
				errs = append(errs, ctx.Err())
				break
			}
			a, err := readAttachment(path)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if !strings.HasPrefix(a.Type, "image/") {
				continue
			}
			in.Attachments = append(in.Attachments, a)
		}
		return errors.Join(errs...)
	})
}

func readAttachment(path string) (Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("cannot read attachment: %w", err)
	}
	mime := http.DetectContentType(data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return Attachment{
		Name: filepath.Base(path),
		Type: mime,
		Size: int64(len(data)),
		Data: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// Locator reports where the device is.
type Locator interface {
	Locate(ctx context.Context) (Location, error)
}

// Locate sets the location reported by loc. A failing locator leaves the
// transaction without location.
func Locate(loc Locator) Enricher {
	return EnricherFunc(func(ctx context.Context, in *TransactionInput) error {
		l, err := loc.Locate(ctx)
		if err != nil {
			return fmt.Errorf("cannot locate: %w", err)
		}
		in.Location = &l
		return nil
	})
}

// FixedLocation is a Locator always reporting the same coordinates.
type FixedLocation Location

func (f FixedLocation) Locate(context.Context) (Location, error) { return Location(f), nil }
