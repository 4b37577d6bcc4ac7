package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bank-ledger-go/internal/api"
	"bank-ledger-go/internal/common"
	"bank-ledger-go/internal/config"
	"bank-ledger-go/internal/digest"
	"bank-ledger-go/internal/ledger"
	"bank-ledger-go/internal/rpc"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	ctx := context.Background()
	cfg := config.Load()

	store := ledger.NewStore(cfg.Server.MailboxCapacity)
	service := api.NewLedgerService(store, digest.SHA256{}, logger)

	seeds, err := common.LoadSeedAccounts(cfg.Server.SeedAccountsFile)
	if err != nil {
		logger.Fatal("Failed to load seed accounts",
			zap.String("file", cfg.Server.SeedAccountsFile),
			zap.Error(err))
	}
	common.SeedAccounts(ctx, service, logger, seeds)

	server := rpc.NewServer(service, logger)
	if err := server.Listen(cfg.Server.Address); err != nil {
		logger.Fatal("Failed to start endpoint",
			zap.String("address", cfg.Server.Address),
			zap.Error(err))
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down")
	if err := server.Close(); err != nil {
		logger.Warn("Endpoint shutdown reported an error", zap.Error(err))
	}
}
