// Package ledger holds the authoritative in-memory account state: the
// account map, the per-account transaction logs and notification mailboxes,
// and the single exclusive section that serializes every read-modify-write.
// All state is volatile; nothing survives a restart.
package ledger

import (
	"fmt"

	"github.com/sasha-s/go-deadlock"
	"github.com/shopspring/decimal"
)

// Store maps account ids to accounts behind one exclusive section. Every
// balance or log access goes through that section so no caller observes an
// interleaved partial state. Mailboxes are exempt: they carry their own
// lock and are drained without entering the section (see Mailbox).
type Store struct {
	mu              deadlock.Mutex
	accounts        map[string]*Account
	mailboxCapacity int
}

// NewStore returns an empty store. mailboxCapacity bounds each account's
// mailbox; <= 0 means unbounded.
func NewStore(mailboxCapacity int) *Store {
	return &Store{
		accounts:        make(map[string]*Account),
		mailboxCapacity: mailboxCapacity,
	}
}

// AccountView is a consistent read-only snapshot of one account.
type AccountView struct {
	Id      string
	Balance decimal.Decimal
	History []string
}

// Create inserts a fresh account with a zero balance, an empty log and an
// empty mailbox. It fails with ErrAlreadyExists when the id is taken and
// leaves the existing account untouched.
func (s *Store) Create(id, credentialDigest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[id]; exists {
		return ErrAlreadyExists
	}
	s.accounts[id] = &Account{
		Id:               id,
		Balance:          decimal.Zero,
		CredentialDigest: credentialDigest,
		Mailbox:          NewMailbox(s.mailboxCapacity),
	}
	return nil
}

// View returns a snapshot of the account's balance and rendered history,
// taken inside the exclusive section so it is internally consistent.
func (s *Store) View(id string) (AccountView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return AccountView{}, false
	}
	history := make([]string, len(a.Log))
	for i, e := range a.Log {
		history[i] = e.String()
	}
	return AccountView{Id: a.Id, Balance: a.Balance, History: history}, true
}

// Credential returns the stored credential digest for id.
func (s *Store) Credential(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return "", false
	}
	return a.CredentialDigest, true
}

// Mailbox returns the account's mailbox. The section is held only for the
// map lookup; draining happens under the mailbox's own lock.
func (s *Store) Mailbox(id string) (*Mailbox, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, false
	}
	return a.Mailbox, true
}

// Mutate runs fn against one account inside the exclusive section. An error
// from fn aborts the mutation with no partial state. This is the primitive
// every single-account mutator is built on.
func (s *Store) Mutate(id string, fn func(a *Account) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return ErrNoSuchAccount
	}
	if err := fn(a); err != nil {
		return err
	}
	checkBalance(a)
	return nil
}

// MutatePair runs fn against two accounts inside one critical section. It is
// the only two-account primitive, so a transfer's debit and credit are
// observably all-or-nothing; a finer-grained store would order per-account
// locks by id here without touching callers.
func (s *Store) MutatePair(srcId, dstId string, fn func(src, dst *Account) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.accounts[srcId]
	if !ok {
		return ErrNoSuchAccount
	}
	dst, ok := s.accounts[dstId]
	if !ok {
		return ErrNoSuchAccount
	}
	if err := fn(src, dst); err != nil {
		return err
	}
	checkBalance(src)
	checkBalance(dst)
	return nil
}

// Delete removes the account id from the store. Not exposed over the wire;
// kept for operational tooling and tests.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return false
	}
	delete(s.accounts, id)
	return true
}

// Len reports the number of accounts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// checkBalance enforces non-negativity after every completed mutation. A
// violation means a precondition check was bypassed, which is a concurrency
// bug, not a recoverable outcome.
func checkBalance(a *Account) {
	if a.Balance.IsNegative() {
		panic(fmt.Sprintf("ledger: account %s balance went negative: %s", a.Id, a.Balance.String()))
	}
}
