package api

import (
	"context"
	"fmt"

	"bank-ledger-go/internal/digest"
	"bank-ledger-go/internal/ledger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionResult reports a completed deposit or withdrawal.
type TransactionResult struct {
	AccountId  string
	Amount     decimal.Decimal
	NewBalance decimal.Decimal
	Message    string
}

// TransferResult reports a completed transfer.
type TransferResult struct {
	From        string
	To          string
	Amount      decimal.Decimal
	FromBalance decimal.Decimal
	ToBalance   decimal.Decimal
	Message     string
}

// CreateAccount inserts a fresh account with the digested password and a
// zero balance. The password is digested outside the store's exclusive
// section; only the digest is retained.
func (s *LedgerService) CreateAccount(ctx context.Context, id, password string) (string, error) {
	if err := s.store.Create(id, s.digest.Sum(password)); err != nil {
		s.logger.Info("Account creation rejected",
			zap.String("account_id", id),
			zap.Error(err))
		return "", err
	}
	s.logger.Info("Account created", zap.String("account_id", id))
	return "Account created successfully.", nil
}

// Authenticate compares the digested password against the stored credential.
// An unknown id and a wrong password both yield false; the caller cannot
// tell which half failed.
func (s *LedgerService) Authenticate(ctx context.Context, id, password string) bool {
	stored, ok := s.store.Credential(id)
	if !ok {
		return false
	}
	return digest.Equal(stored, s.digest.Sum(password))
}

// GetBalance returns the current balance.
func (s *LedgerService) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	view, ok := s.store.View(id)
	if !ok {
		return decimal.Zero, ledger.ErrNoSuchAccount
	}
	return view.Balance, nil
}

// Deposit credits amount to the account and appends a log entry. The
// amount-sign check runs before the existence check: a non-positive amount
// against an unknown account still reports the amount error.
func (s *LedgerService) Deposit(ctx context.Context, id string, amount decimal.Decimal) (*TransactionResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ledger.ErrInvalidAmount
	}

	var newBalance decimal.Decimal
	err := s.store.Mutate(id, func(a *ledger.Account) error {
		a.Balance = a.Balance.Add(amount)
		a.Append(ledger.EntryDeposit, amount, "")
		newBalance = a.Balance
		return nil
	})
	if err != nil {
		s.logger.Info("Deposit rejected",
			zap.String("account_id", id),
			zap.String("amount", amount.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Deposit processed",
		zap.String("account_id", id),
		zap.String("amount", amount.String()),
		zap.String("new_balance", newBalance.String()))
	return &TransactionResult{
		AccountId:  id,
		Amount:     amount,
		NewBalance: newBalance,
		Message:    fmt.Sprintf("Deposit of %s to account %s. New balance is %s.", amount.String(), id, newBalance.String()),
	}, nil
}

// Withdraw debits amount from the account and appends a log entry. Same
// validation order as Deposit, with the funds check inside the exclusive
// section so the balance cannot move between check and debit.
func (s *LedgerService) Withdraw(ctx context.Context, id string, amount decimal.Decimal) (*TransactionResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ledger.ErrInvalidAmount
	}

	var newBalance decimal.Decimal
	err := s.store.Mutate(id, func(a *ledger.Account) error {
		if a.Balance.LessThan(amount) {
			return ledger.ErrInsufficientFunds
		}
		a.Balance = a.Balance.Sub(amount)
		a.Append(ledger.EntryWithdrawal, amount, "")
		newBalance = a.Balance
		return nil
	})
	if err != nil {
		s.logger.Info("Withdrawal rejected",
			zap.String("account_id", id),
			zap.String("amount", amount.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Withdrawal processed",
		zap.String("account_id", id),
		zap.String("amount", amount.String()),
		zap.String("new_balance", newBalance.String()))
	return &TransactionResult{
		AccountId:  id,
		Amount:     amount,
		NewBalance: newBalance,
		Message:    fmt.Sprintf("Withdrawal of %s from account %s. New balance is %s.", amount.String(), id, newBalance.String()),
	}, nil
}

// Transfer moves amount between two accounts in one critical section: debit,
// credit, both log entries and the recipient's mailbox notification either
// all happen or none do. Transferring to oneself is permitted and nets to
// zero, matching the rest of the operation's bookkeeping.
func (s *LedgerService) Transfer(ctx context.Context, from, to string, amount decimal.Decimal) (*TransferResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ledger.ErrInvalidAmount
	}

	var fromBalance, toBalance decimal.Decimal
	err := s.store.MutatePair(from, to, func(src, dst *ledger.Account) error {
		if src.Balance.LessThan(amount) {
			return ledger.ErrInsufficientFunds
		}
		src.Balance = src.Balance.Sub(amount)
		dst.Balance = dst.Balance.Add(amount)
		src.Append(ledger.EntryTransferOut, amount, dst.Id)
		dst.Append(ledger.EntryTransferIn, amount, src.Id)
		dst.Mailbox.Enqueue(fmt.Sprintf("Transfer received from %s: %s", src.Id, amount.String()))
		fromBalance = src.Balance
		toBalance = dst.Balance
		return nil
	})
	if err != nil {
		s.logger.Info("Transfer rejected",
			zap.String("from", from),
			zap.String("to", to),
			zap.String("amount", amount.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Transfer processed",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("amount", amount.String()),
		zap.String("from_balance", fromBalance.String()),
		zap.String("to_balance", toBalance.String()))
	return &TransferResult{
		From:        from,
		To:          to,
		Amount:      amount,
		FromBalance: fromBalance,
		ToBalance:   toBalance,
		Message: fmt.Sprintf("Transfer of %s from account %s to account %s. New balances: %s: %s, %s: %s.",
			amount.String(), from, to, from, fromBalance.String(), to, toBalance.String()),
	}, nil
}

// GetHistory returns the account's transaction log rendered as strings, in
// insertion order.
func (s *LedgerService) GetHistory(ctx context.Context, id string) ([]string, error) {
	view, ok := s.store.View(id)
	if !ok {
		return nil, ledger.ErrNoSuchAccount
	}
	return view.History, nil
}

// PollNotifications drains the account's mailbox and returns the pending
// notifications in enqueue order. An unknown id yields an empty list, never
// an error, and the drain only takes the mailbox's own lock.
func (s *LedgerService) PollNotifications(ctx context.Context, id string) []string {
	mb, ok := s.store.Mailbox(id)
	if !ok {
		return []string{}
	}
	notes := mb.DrainAll()
	if notes == nil {
		return []string{}
	}
	return notes
}
