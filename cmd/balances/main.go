/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"bank-ledger-go/internal/bank"
	"bank-ledger-go/internal/common"
	"bank-ledger-go/internal/config"
	"bank-ledger-go/internal/models"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type balanceStats struct {
	totalAccounts  int
	fundedAccounts int
	mismatched     int
	totalBalance   decimal.Decimal
}

func printAccount(ctx context.Context, service *bank.Service, account models.Account, recent int, logger *zap.Logger) (bool, error) {
	fmt.Printf("\n┌─ Account: %s (%s)\n", account.Id, account.OwnerName)
	fmt.Printf("│  Opened:  %s\n", account.OpenedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("│  Balance: %s\n", common.FormatAmount(account.Balance))

	reconciled := true
	if err := service.ReconcileBalance(ctx, account.Id); err != nil {
		if !errors.Is(err, bank.ErrBalanceMismatch) {
			return false, err
		}
		reconciled = false
		fmt.Printf("│  ⚠ %v\n", err)
	}
	common.PrintBoxSeparator(os.Stdout, common.DefaultWidth-2)

	if recent <= 0 {
		return reconciled, nil
	}

	transactions, err := service.RecentTransactions(ctx, account.Id, recent)
	if err != nil {
		return reconciled, fmt.Errorf("failed to get transactions: %w", err)
	}
	if len(transactions) == 0 {
		fmt.Printf("%s no transactions\n", common.BoxPrefix(true))
		return reconciled, nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Type", "Amount", "Balance", "Time"})
	for _, tx := range transactions {
		table.Append([]string{
			fmt.Sprintf("%d", tx.Id),
			string(tx.Type),
			common.FormatAmount(tx.Amount),
			common.FormatAmount(tx.BalanceAfter),
			tx.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		})
	}
	table.Render()

	logger.Debug("Printed account", zap.String("account_id", account.Id), zap.Int("transactions", len(transactions)))
	return reconciled, nil
}

func generateReport(ctx context.Context, service *bank.Service, accounts []models.Account, recent int, logger *zap.Logger) balanceStats {
	stats := balanceStats{totalBalance: decimal.Zero}

	for _, account := range accounts {
		stats.totalAccounts++
		stats.totalBalance = stats.totalBalance.Add(account.Balance)
		if account.Balance.IsPositive() {
			stats.fundedAccounts++
		}

		reconciled, err := printAccount(ctx, service, account, recent, logger)
		if err != nil {
			logger.Error("Failed to process account",
				zap.String("account_id", account.Id),
				zap.String("owner_name", account.OwnerName),
				zap.Error(err))
			continue
		}
		if !reconciled {
			stats.mismatched++
		}
	}

	return stats
}

func main() {
	ctx := context.Background()

	accountFlag := flag.String("account", "", "Show a single account number (optional)")
	recentFlag := flag.Int("recent", 0, "Number of recent transactions to list per account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, loggerCleanup := common.InitializeLogger(cfg.LogLevel)
	defer loggerCleanup()

	logger.Info("Starting balance query", zap.String("backend", cfg.Backend))

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	var accounts []models.Account
	if *accountFlag != "" {
		account, err := services.Bank.GetAccount(ctx, *accountFlag)
		if err != nil {
			logger.Fatal("Account not found", zap.String("account_id", *accountFlag), zap.Error(err))
		}
		accounts = append(accounts, *account)
	} else {
		accounts, err = services.Bank.ListAccounts(ctx)
		if err != nil {
			logger.Fatal("Failed to list accounts", zap.Error(err))
		}
	}

	common.PrintHeader(os.Stdout, "ACCOUNT BALANCE REPORT", common.DefaultWidth)

	stats := generateReport(ctx, services.Bank, accounts, *recentFlag, logger)

	summary := fmt.Sprintf("SUMMARY: %d accounts, %d funded, total %s, %d failed reconciliation",
		stats.totalAccounts, stats.fundedAccounts, common.FormatAmount(stats.totalBalance), stats.mismatched)
	common.PrintFooter(os.Stdout, summary, common.DefaultWidth)

	logger.Info("Balance query completed",
		zap.Int("accounts", stats.totalAccounts),
		zap.Int("funded_accounts", stats.fundedAccounts),
		zap.Int("mismatched", stats.mismatched),
		zap.String("total_balance", stats.totalBalance.String()))
}
