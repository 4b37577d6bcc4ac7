package api

import (
	"errors"

	"bank-ledger-go/internal/ledger"
)

// ErrorMessage renders a domain error as the status string sent over the
// wire. Unknown errors fall through to their Go message.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ledger.ErrAlreadyExists):
		return "The account already exists."
	case errors.Is(err, ledger.ErrNoSuchAccount):
		return "The account does not exist."
	case errors.Is(err, ledger.ErrInvalidAmount):
		return "The amount must be positive."
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "Insufficient funds."
	}
	return err.Error()
}

// TransferErrorMessage is ErrorMessage for transfers, which report existence
// failures without naming which side was missing.
func TransferErrorMessage(err error) string {
	if errors.Is(err, ledger.ErrNoSuchAccount) {
		return "One or both accounts do not exist."
	}
	return ErrorMessage(err)
}
