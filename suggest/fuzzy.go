package suggest

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/etnz/moneymanager"
)

// DefaultThreshold is the minimal similarity Fuzzy accepts.
const DefaultThreshold = 0.6

// Fuzzy suggests the category of the most similar past description.
type Fuzzy struct {
	// Threshold is the minimal similarity, DefaultThreshold if zero.
	Threshold float64
	known     map[string]string // normalized description to category
}

// NewFuzzy learns from the categorized expenses and incomes of txs. When a
// description appears several times the latest category wins.
func NewFuzzy(txs []moneymanager.Transaction) *Fuzzy {
	f := &Fuzzy{known: make(map[string]string)}
	txs = slices.Clone(txs)
	slices.SortStableFunc(txs, func(a, b moneymanager.Transaction) int { return a.Date.Compare(b.Date) })
	for _, tx := range txs {
		d := normalize(tx.Description)
		if d == "" || tx.Category == "" || tx.Category == moneymanager.Other {
			continue
		}
		f.known[d] = tx.Category
	}
	return f
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}

// similarity is 1 for equal strings, 0 for entirely different ones.
func similarity(a, b string) float64 {
	n := max(len(a), len(b))
	if n == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(n)
}

func (f *Fuzzy) Suggest(_ context.Context, description string, categories []string) (Suggestion, error) {
	threshold := f.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	d := normalize(description)
	if d == "" {
		return Suggestion{}, ErrNoSuggestion
	}
	var (
		best      Suggestion
		bestMatch string
	)
	for known, cat := range f.known {
		if !slices.Contains(categories, cat) {
			continue
		}
		s := similarity(d, known)
		// ties go to the alphabetically first match to keep answers stable.
		if s > best.Confidence || s == best.Confidence && bestMatch != "" && known < bestMatch {
			best = Suggestion{Category: cat, Confidence: s}
			bestMatch = known
		}
	}
	if bestMatch == "" || best.Confidence < threshold {
		return Suggestion{}, ErrNoSuggestion
	}
	best.Reason = fmt.Sprintf("similar to %q", bestMatch)
	return best, nil
}
