package main

import (
	"flag"
	"os"

	"bank-ledger-go/internal/client"
	"bank-ledger-go/internal/common"
	"bank-ledger-go/internal/config"
	"bank-ledger-go/internal/rpc"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	cfg := config.Load()
	addr := flag.String("address", cfg.Server.Address, "bank endpoint address")
	flag.Parse()

	rpcClient, err := rpc.Dial(*addr, cfg.Client.DialTimeout, cfg.Client.CallTimeout)
	if err != nil {
		logger.Fatal("Failed to connect to bank endpoint",
			zap.String("address", *addr),
			zap.Error(err))
	}
	defer rpcClient.Close()

	session := client.NewSession(rpcClient, logger, cfg.Client.PollInterval)
	menu := client.NewMenu(session, rpcClient, os.Stdin, os.Stdout)
	menu.Run()
}
