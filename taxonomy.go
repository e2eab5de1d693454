package moneymanager

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	// Other is the fallback category.
	Other = "Other"
	// IncomeCategory is given to income transactions loaded without one.
	// It has no budget.
	IncomeCategory = "Income"
)

func defaultCategories() []string {
	return []string{
		"Food & Dining",
		"Shopping",
		"Transportation",
		"Bills & Utilities",
		"Entertainment",
		"Health & Fitness",
		"Travel",
		"Education",
		"Personal Care",
		"Gifts",
		Other,
	}
}

// Categories returns the categories in display order.
func (l *Ledger) Categories() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.doc.Categories)
}

// Tags returns the tags in display order.
func (l *Ledger) Tags() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.doc.Tags)
}

// Budgets returns a copy of the monthly caps by category.
func (l *Ledger) Budgets() map[string]Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	return maps.Clone(l.doc.Budgets)
}

// AddCategory appends a category. Names are case sensitive.
func (l *Ledger) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	return l.update(func() ([]Change, error) {
		if name == "" {
			return nil, fmt.Errorf("%w: category name is required", ErrValidation)
		}
		if slices.Contains(l.doc.Categories, name) {
			return nil, fmt.Errorf("%w: category %q already exists", ErrValidation, name)
		}
		l.doc.Categories = append(l.doc.Categories, name)
		return []Change{{Kind: TaxonomyChanged, ID: name}}, nil
	})
}

// DeleteCategory removes a category and moves the transactions and bills
// using it to Other. The last category cannot be deleted.
func (l *Ledger) DeleteCategory(name string) error {
	return l.update(func() ([]Change, error) {
		i := slices.Index(l.doc.Categories, name)
		if i < 0 {
			return nil, fmt.Errorf("%w: category %q", ErrNotFound, name)
		}
		if len(l.doc.Categories) <= 1 {
			return nil, fmt.Errorf("%w: cannot delete the last category %q", ErrPrecondition, name)
		}
		for j := range l.doc.Transactions {
			if l.doc.Transactions[j].Category == name {
				l.doc.Transactions[j].Category = Other
			}
		}
		for j := range l.doc.Bills {
			if l.doc.Bills[j].Category == name {
				l.doc.Bills[j].Category = Other
			}
		}
		l.doc.Categories = slices.Delete(l.doc.Categories, i, i+1)
		return []Change{{Kind: TaxonomyChanged, ID: name}}, nil
	})
}

// AddTag appends a tag.
func (l *Ledger) AddTag(name string) error {
	name = strings.TrimSpace(name)
	return l.update(func() ([]Change, error) {
		if name == "" {
			return nil, fmt.Errorf("%w: tag name is required", ErrValidation)
		}
		if slices.Contains(l.doc.Tags, name) {
			return nil, fmt.Errorf("%w: tag %q already exists", ErrValidation, name)
		}
		l.doc.Tags = append(l.doc.Tags, name)
		return []Change{{Kind: TaxonomyChanged, ID: name}}, nil
	})
}

// DeleteTag removes a tag from the tag list and from every transaction.
func (l *Ledger) DeleteTag(name string) error {
	return l.update(func() ([]Change, error) {
		i := slices.Index(l.doc.Tags, name)
		if i < 0 {
			return nil, fmt.Errorf("%w: tag %q", ErrNotFound, name)
		}
		for j := range l.doc.Transactions {
			tx := &l.doc.Transactions[j]
			tx.Tags = slices.DeleteFunc(tx.Tags, func(t string) bool { return t == name })
		}
		l.doc.Tags = slices.Delete(l.doc.Tags, i, i+1)
		return []Change{{Kind: TaxonomyChanged, ID: name}}, nil
	})
}

// SetBudget sets the monthly cap of a category. It does not affect
// transactions.
func (l *Ledger) SetBudget(category string, limit Money) error {
	return l.update(func() ([]Change, error) {
		if !slices.Contains(l.doc.Categories, category) {
			return nil, fmt.Errorf("%w: category %q", ErrNotFound, category)
		}
		if limit.IsNegative() {
			return nil, fmt.Errorf("%w: budget must not be negative, got %v", ErrValidation, limit)
		}
		if l.doc.Budgets == nil {
			l.doc.Budgets = make(map[string]Money)
		}
		l.doc.Budgets[category] = limit
		return []Change{{Kind: TaxonomyChanged, ID: category}}, nil
	})
}
