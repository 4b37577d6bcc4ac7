package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryKind classifies a transaction log entry.
type EntryKind string

const (
	EntryDeposit     EntryKind = "deposit"
	EntryWithdrawal  EntryKind = "withdrawal"
	EntryTransferOut EntryKind = "transfer_out"
	EntryTransferIn  EntryKind = "transfer_in"
)

// Entry is one record in an account's append-only transaction log. Entries
// are written only for completed mutations, in insertion order, and never
// truncated or reordered.
type Entry struct {
	Id           string
	Kind         EntryKind
	Amount       decimal.Decimal
	Counterparty string
	At           time.Time
}

// String renders the entry as the history line returned over the wire.
func (e Entry) String() string {
	switch e.Kind {
	case EntryWithdrawal:
		return fmt.Sprintf("Withdrawal: %s", e.Amount.String())
	case EntryTransferOut:
		return fmt.Sprintf("Transfer to %s: %s", e.Counterparty, e.Amount.String())
	case EntryTransferIn:
		return fmt.Sprintf("Transfer from %s: %s", e.Counterparty, e.Amount.String())
	default:
		return fmt.Sprintf("Deposit: %s", e.Amount.String())
	}
}

// Account is a balance-holding entity with a credential digest, an
// append-only transaction log and a notification mailbox. Balance and log
// are only touched inside the store's exclusive section; the mailbox has
// its own lock.
type Account struct {
	Id               string
	Balance          decimal.Decimal
	CredentialDigest string
	Log              []Entry
	Mailbox          *Mailbox
}

// Append records a completed mutation in the transaction log.
func (a *Account) Append(kind EntryKind, amount decimal.Decimal, counterparty string) {
	a.Log = append(a.Log, Entry{
		Id:           uuid.New().String(),
		Kind:         kind,
		Amount:       amount,
		Counterparty: counterparty,
		At:           time.Now().UTC(),
	})
}
