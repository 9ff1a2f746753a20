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
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"bank-ledger-go/internal/common"
	"bank-ledger-go/internal/config"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len([]rune(name)) < 2 {
		return fmt.Errorf("name must be at least 2 characters")
	}
	return nil
}

func main() {
	ctx := context.Background()

	nameFlag := flag.String("name", "", "Account holder name (required)")
	depositFlag := flag.String("deposit", "", "Opening deposit (optional)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	_, loggerCleanup := common.InitializeLogger(cfg.LogLevel)
	defer loggerCleanup()

	name := strings.TrimSpace(*nameFlag)
	if err := validateName(name); err != nil {
		zap.L().Fatal("Invalid name", zap.Error(err))
	}

	deposit := decimal.Zero
	if *depositFlag != "" {
		deposit, err = common.ParseAmount(*depositFlag)
		if err != nil {
			zap.L().Fatal("Invalid deposit", zap.Error(err))
		}
	}

	zap.L().Info("Starting account creation",
		zap.String("owner_name", name),
		zap.String("deposit", deposit.String()))

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	account, err := services.Bank.CreateAccount(ctx, name)
	if err != nil {
		zap.L().Fatal("Failed to create account", zap.Error(err))
	}

	balance := account.Balance
	if deposit.IsPositive() {
		balance, err = services.Bank.Deposit(ctx, account.Id, deposit, "opening deposit")
		if err != nil {
			zap.L().Error("Account created but opening deposit failed",
				zap.String("account_id", account.Id),
				zap.Error(err))
		}
	}

	fmt.Println()
	common.PrintHeader(os.Stdout, "ACCOUNT CREATED", common.DefaultWidth)
	fmt.Printf("Account No: %s\n", account.Id)
	fmt.Printf("Holder:     %s\n", account.OwnerName)
	fmt.Printf("Balance:    %s\n", common.FormatAmount(balance))
	common.PrintSeparator(os.Stdout, "=", common.DefaultWidth)
	fmt.Println()

	zap.L().Info("Account created successfully", zap.String("account_id", account.Id))
}
