package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"bank-ledger-go/internal/common"
	"bank-ledger-go/internal/config"
	"bank-ledger-go/internal/export"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	accountFlag := flag.String("account", "", "Account number to export (required)")
	outFlag := flag.String("out", "", "Destination file (default: EXPORT_DIR/transactions_<account>_<timestamp>.csv)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, loggerCleanup := common.InitializeLogger(cfg.LogLevel)
	defer loggerCleanup()

	if *accountFlag == "" {
		logger.Fatal("Missing required flag: --account")
	}

	destination := *outFlag
	if destination == "" {
		destination = filepath.Join(cfg.Console.ExportDir, export.DefaultFileName(*accountFlag, time.Now()))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	rows, err := services.Bank.ExportCSV(ctx, *accountFlag, destination)
	if err != nil {
		logger.Fatal("Export failed",
			zap.String("account_id", *accountFlag),
			zap.String("file", destination),
			zap.Error(err))
	}

	fmt.Printf("✓ Exported %d transactions for %s to %s\n", rows, *accountFlag, destination)
}
