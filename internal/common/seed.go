package common

import (
	"context"
	"fmt"
	"os"

	"bank-ledger-go/internal/api"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// SeedAccount is one entry in the optional seed file created at server
// start, useful for demos and local testing. Balance is a decimal string.
type SeedAccount struct {
	Id       string `yaml:"id"`
	Password string `yaml:"password"`
	Balance  string `yaml:"balance"`
}

type seedFile struct {
	Accounts []SeedAccount `yaml:"accounts"`
}

// LoadSeedAccounts parses the YAML seed file. A missing file is not an
// error; the server simply starts empty.
func LoadSeedAccounts(path string) ([]SeedAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to read %s: %v", path, err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %v", path, err)
	}
	return file.Accounts, nil
}

// SeedAccounts creates and funds each seed account through the service
// layer, so seeded balances show up in transaction logs like any deposit.
func SeedAccounts(ctx context.Context, service *api.LedgerService, logger *zap.Logger, accounts []SeedAccount) {
	for _, acct := range accounts {
		if _, err := service.CreateAccount(ctx, acct.Id, acct.Password); err != nil {
			logger.Warn("Skipping seed account",
				zap.String("account_id", acct.Id),
				zap.Error(err))
			continue
		}
		if acct.Balance == "" {
			continue
		}
		amount, err := decimal.NewFromString(acct.Balance)
		if err != nil {
			logger.Warn("Invalid seed balance",
				zap.String("account_id", acct.Id),
				zap.String("balance", acct.Balance),
				zap.Error(err))
			continue
		}
		if amount.GreaterThan(decimal.Zero) {
			if _, err := service.Deposit(ctx, acct.Id, amount); err != nil {
				logger.Warn("Failed to fund seed account",
					zap.String("account_id", acct.Id),
					zap.Error(err))
			}
		}
	}
	if len(accounts) > 0 {
		logger.Info("Seed accounts loaded", zap.Int("count", len(accounts)))
	}
}
