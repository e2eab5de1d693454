// Package moneymanager keeps a personal finance ledger: accounts and their
// running balances, income and expense transactions, recurring schedules,
// bills, categories, tags and monthly budgets.
//
// A [Ledger] owns the whole state and every mutation. Each mutation keeps
// the derived data consistent with the transaction list:
//   - the balance of an account always equals its opening amount plus the
//     signed sum of its transactions (expenses negative);
//   - the pinned index holds exactly the ids of pinned transactions;
//   - deleting an account or a category moves what referenced it to a
//     fallback ([Unknown] account, [Other] category).
//
// Invalid calls return an error wrapping [ErrValidation], [ErrNotFound] or
// [ErrPrecondition] and leave the ledger unchanged.
//
// The state is persisted as a single JSON [Document] (see [Decode] and
// [Ledger.Encode]); the storage sub package keeps it in a file or a SQLite
// database and saves it after each change, using [Ledger.Subscribe].
//
// Transactions may be enriched before they are committed: [Ledger.Prepare]
// runs [Enricher]s, like [Attachments] or [Locate], whose failures are never
// fatal.
//
// This package serves as the foundational logic for the `mm` command-line
// tool.
package moneymanager
