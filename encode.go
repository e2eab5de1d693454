package moneymanager

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/PaesslerAG/jsonpath"
)

// StorageKey is the name the document is stored under.
const StorageKey = "money-manager-data"

// Document is the persisted form of a ledger: one JSON object holding the
// whole state.
type Document struct {
	Balances     map[string]Money `json:"balances"`
	Accounts     []Account        `json:"accounts"`
	Transactions []Transaction    `json:"transactions"`
	Categories   []string         `json:"categories"`
	Tags         []string         `json:"tags"`
	Budgets      map[string]Money `json:"budgets"`
	Bills        []Bill           `json:"bills"`
	Settings     Settings         `json:"settings"`
}

func defaultDocument() Document {
	doc := Document{
		Balances:     make(map[string]Money),
		Accounts:     defaultAccounts(),
		Transactions: []Transaction{},
		Categories:   defaultCategories(),
		Tags:         []string{},
		Budgets:      make(map[string]Money),
		Bills:        []Bill{},
		Settings:     defaultSettings(),
	}
	for _, a := range doc.Accounts {
		doc.Balances[a.ID] = M(0)
	}
	return doc
}

func (d Document) clone() Document {
	d.Balances = maps.Clone(d.Balances)
	d.Accounts = slices.Clone(d.Accounts)
	d.Transactions = slices.Clone(d.Transactions)
	for i := range d.Transactions {
		d.Transactions[i] = d.Transactions[i].clone()
	}
	d.Categories = slices.Clone(d.Categories)
	d.Tags = slices.Clone(d.Tags)
	d.Budgets = maps.Clone(d.Budgets)
	d.Bills = slices.Clone(d.Bills)
	d.Settings = d.Settings.clone()
	return d
}

// decodeDocument parses a document and fills in whatever older versions
// did not store. Fields present in the input are never overwritten.
func decodeDocument(data []byte) (doc Document, migrated []string, err error) {
	// settings are decoded over the defaults so that missing keys keep them.
	doc.Settings = defaultSettings()
	doc.Settings.Version = ""
	doc.Settings.Currency = ""
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, nil, fmt.Errorf("invalid document: %w", err)
	}

	def := defaultDocument()
	if doc.Balances == nil {
		doc.Balances = def.Balances
	}
	if doc.Accounts == nil {
		doc.Accounts = def.Accounts
	}
	if doc.Transactions == nil {
		doc.Transactions = def.Transactions
	}
	if doc.Categories == nil {
		doc.Categories = def.Categories
	}
	if doc.Tags == nil {
		doc.Tags = def.Tags
	}
	if doc.Budgets == nil {
		doc.Budgets = def.Budgets
	}
	if doc.Bills == nil {
		doc.Bills = def.Bills
	}
	if doc.Settings.PinnedTransactions == nil {
		doc.Settings.PinnedTransactions = []string{}
	}
	if doc.Settings.RecurringTransactions == nil {
		doc.Settings.RecurringTransactions = []Schedule{}
	}

	for i := range doc.Transactions {
		tx := &doc.Transactions[i]
		if tx.Category == "" {
			if tx.Type == Income {
				tx.Category = IncomeCategory
			} else {
				tx.Category = Other
			}
			migrated = append(migrated, "transaction "+tx.ID+" category")
		}
		if tx.Tags == nil {
			tx.Tags = []string{}
		}
		if tx.Attachments == nil {
			tx.Attachments = []Attachment{}
		}
	}
	for i := range doc.Accounts {
		a := &doc.Accounts[i]
		if a.Color == "" {
			a.Color = palette[i%len(palette)]
			migrated = append(migrated, "account "+a.ID+" color")
		}
		if _, ok := doc.Balances[a.ID]; !ok {
			doc.Balances[a.ID] = M(0)
			migrated = append(migrated, "account "+a.ID+" balance")
		}
	}
	for i := range doc.Bills {
		if doc.Bills[i].Recurring == "" {
			doc.Bills[i].Recurring = Once
		}
	}
	if doc.Settings.Version != AppVersion {
		migrated = append(migrated, fmt.Sprintf("version %q", doc.Settings.Version))
		doc.Settings.Version = AppVersion
	}
	return doc, migrated, nil
}

// Decode reads a ledger from a persisted document, migrating older layouts.
func Decode(r io.Reader, opts ...Option) (*Ledger, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	doc, migrated, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	l := newLedger(doc, opts...)
	migrated = append(migrated, l.assignIDs()...)
	if len(migrated) > 0 {
		l.logger.Info("migrated document", "version", AppVersion, "fixes", len(migrated))
		l.logger.Debug("migration details", "fixes", migrated)
	}
	return l, nil
}

// Encode writes the ledger as a compact persisted document.
func (l *Ledger) Encode(w io.Writer) error {
	l.mu.Lock()
	data, err := json.Marshal(l.doc)
	l.mu.Unlock()
	if err != nil {
		return fmt.Errorf("cannot encode ledger: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

// Export writes the ledger as an indented document.
func (l *Ledger) Export(w io.Writer) error {
	var buf bytes.Buffer
	if err := l.Encode(&buf); err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("cannot indent document: %w", err)
	}
	out.WriteByte('\n')
	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

// requiredPaths must exist in an imported document.
var requiredPaths = []string{"$.balances", "$.transactions"}

// Import replaces the whole ledger with an exported document. The document
// must at least hold balances and transactions; the ledger is left untouched
// otherwise.
func (l *Ledger) Import(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: not a JSON document: %w", ErrValidation, err)
	}
	for _, path := range requiredPaths {
		if _, err := jsonpath.Get(path, v); err != nil {
			return fmt.Errorf("%w: missing %s: %w", ErrValidation, path, err)
		}
	}
	doc, migrated, err := decodeDocument(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	l.apply(func() []Change {
		l.reset(doc)
		migrated = append(migrated, l.assignIDs()...)
		l.logger.Info("imported document", "transactions", len(doc.Transactions), "fixes", len(migrated))
		return []Change{{Kind: Replaced}}
	})
	return nil
}

// Reset restores the default state, dropping every transaction.
func (l *Ledger) Reset() {
	l.apply(func() []Change {
		l.reset(defaultDocument())
		return []Change{{Kind: Replaced}}
	})
}

// Document returns a deep copy of the current state.
func (l *Ledger) Document() Document {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.doc.clone()
}

// Query evaluates a JSONPath expression against the persisted document, for
// instance "$.transactions[?(@.amount > 100)].description".
func (l *Ledger) Query(path string) (any, error) {
	var buf bytes.Buffer
	if err := l.Encode(&buf); err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(buf.Bytes(), &v); err != nil {
		return nil, fmt.Errorf("cannot decode document: %w", err)
	}
	res, err := jsonpath.Get(path, v)
	if err != nil {
		return nil, fmt.Errorf("%w: query %q: %w", ErrValidation, path, err)
	}
	return res, nil
}
