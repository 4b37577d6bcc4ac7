package ledger

import "errors"

// Domain errors returned by the store and the service layer. These are
// expected outcomes of normal use; callers branch on them with errors.Is and
// render them for the wire. Only invariant violations escalate to a panic.
var (
	// ErrAlreadyExists means create was called with an id that is taken.
	ErrAlreadyExists = errors.New("account already exists")

	// ErrNoSuchAccount means the referenced account id is unknown.
	ErrNoSuchAccount = errors.New("account does not exist")

	// ErrInvalidAmount means a non-positive amount was supplied.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds means a withdrawal or transfer would drive the
	// balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
