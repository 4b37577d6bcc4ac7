// Package api is the operation layer of the bank: input validation and
// business rules over the account store, plus rendering of the
// human-readable status strings sent back to callers.
package api

import (
	"context"

	"bank-ledger-go/internal/digest"
	"bank-ledger-go/internal/ledger"

	"go.uber.org/zap"
)

// LedgerService exposes the bank operations. It holds no state of its own;
// all state lives in the store.
type LedgerService struct {
	store  *ledger.Store
	digest digest.Digest
	logger *zap.Logger
}

func NewLedgerService(store *ledger.Store, d digest.Digest, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		store:  store,
		digest: d,
		logger: logger,
	}
}

// HealthCheck reports whether the store is reachable.
func (s *LedgerService) HealthCheck(ctx context.Context) error {
	_ = s.store.Len()
	return nil
}
