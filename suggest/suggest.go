// Package suggest guesses the category of a transaction from its
// description, either from similar past transactions or by asking a
// Gemini model.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/moneymanager"
)

// ErrNoSuggestion is returned when a Suggester has no confident answer.
var ErrNoSuggestion = errors.New("no suggestion")

// Suggestion is a guessed category.
type Suggestion struct {
	Category   string
	Confidence float64 // in [0, 1]
	Reason     string
}

// Suggester guesses the category of a description among categories.
type Suggester interface {
	Suggest(ctx context.Context, description string, categories []string) (Suggestion, error)
}

// Chain asks each suggester in turn and returns the first suggestion.
type Chain []Suggester

func (c Chain) Suggest(ctx context.Context, description string, categories []string) (Suggestion, error) {
	var errs []error
	for _, s := range c {
		sug, err := s.Suggest(ctx, description, categories)
		if err == nil {
			return sug, nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return Suggestion{}, ErrNoSuggestion
	}
	return Suggestion{}, errors.Join(errs...)
}

// Categorize returns an enricher setting the category of a transaction that
// has none.
func Categorize(s Suggester, categories []string) moneymanager.Enricher {
	return moneymanager.EnricherFunc(func(ctx context.Context, in *moneymanager.TransactionInput) error {
		if in.Category != "" || strings.TrimSpace(in.Description) == "" {
			return nil
		}
		sug, err := s.Suggest(ctx, in.Description, categories)
		if err != nil {
			return fmt.Errorf("cannot categorize %q: %w", in.Description, err)
		}
		in.Category = sug.Category
		return nil
	})
}
