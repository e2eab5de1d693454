package moneymanager

import "errors"

// Errors returned by ledger operations. They are wrapped with context, use
// errors.Is to test for them.
//
// Validation and precondition failures never modify the ledger.
var (
	// ErrValidation reports a missing or invalid field: blank name,
	// non-positive amount, unknown account.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound reports an id that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPrecondition reports an operation that would break a structural
	// rule, like deleting the last account.
	ErrPrecondition = errors.New("precondition failed")
	// ErrStorage reports a persistence failure. The in-memory mutation that
	// triggered the save is kept.
	ErrStorage = errors.New("storage failure")
)
