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

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bank-ledger-go/internal/models"
	"bank-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var account models.Account
	var balanceStr, openedAtStr string
	if err := row.Scan(&account.Id, &account.OwnerName, &balanceStr, &openedAtStr); err != nil {
		return nil, err
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance '%s': %w", balanceStr, err)
	}
	account.Balance = balance

	account.OpenedAt, err = parseTime(openedAtStr)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Service) CreateAccount(ctx context.Context, ownerName string) (*models.Account, error) {
	name, err := store.NormalizeOwnerName(ownerName)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %w", store.ErrStorage, err)
	}
	defer tx.Rollback()

	var accountId string
	for attempt := 0; attempt < store.MaxAccountNumberAttempts && accountId == ""; attempt++ {
		candidate, err := store.NewAccountNumber()
		if err != nil {
			return nil, err
		}

		var one int
		err = tx.QueryRowContext(ctx, queryAccountExists, candidate).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			accountId = candidate
		} else if err != nil {
			return nil, fmt.Errorf("%w: unable to check account number: %w", store.ErrStorage, err)
		}
	}
	if accountId == "" {
		return nil, fmt.Errorf("%w: no free account number after %d attempts", store.ErrStorage, store.MaxAccountNumberAttempts)
	}

	openedAt := s.now().UTC()
	if _, err := tx.ExecContext(ctx, queryInsertAccount, accountId, name, decimal.Zero.String(), formatTime(openedAt)); err != nil {
		zap.L().Error("Failed to insert account", zap.String("owner_name", name), zap.Error(err))
		return nil, fmt.Errorf("%w: unable to insert account: %w", store.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: failed to commit account: %w", store.ErrStorage, err)
	}

	zap.L().Info("Account created", zap.String("account_id", accountId), zap.String("owner_name", name))

	return &models.Account{
		Id:        accountId,
		OwnerName: name,
		Balance:   decimal.Zero,
		OpenedAt:  openedAt,
	}, nil
}

func (s *Service) GetAccount(ctx context.Context, accountId string) (*models.Account, error) {
	return getAccount(ctx, s.db, accountId)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getAccount(ctx context.Context, q queryRower, accountId string) (*models.Account, error) {
	zap.L().Debug("Querying account", zap.String("account_id", accountId))

	account, err := scanAccount(q.QueryRowContext(ctx, queryGetAccount, accountId))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, accountId)
		}
		zap.L().Error("Failed to query account", zap.String("account_id", accountId), zap.Error(err))
		return nil, fmt.Errorf("%w: unable to query account: %w", store.ErrStorage, err)
	}
	return account, nil
}

func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	zap.L().Debug("Querying accounts")

	rows, err := s.db.QueryContext(ctx, queryListAccounts)
	if err != nil {
		zap.L().Error("Failed to query accounts", zap.Error(err))
		return nil, fmt.Errorf("%w: unable to query accounts: %w", store.ErrStorage, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			zap.L().Error("Failed to scan account row", zap.Error(err))
			return nil, fmt.Errorf("%w: unable to scan account row: %w", store.ErrStorage, err)
		}
		accounts = append(accounts, *account)
	}

	// Check for errors during iteration
	if err := rows.Err(); err != nil {
		zap.L().Error("Error during account row iteration", zap.Error(err))
		return nil, fmt.Errorf("%w: error iterating account rows: %w", store.ErrStorage, err)
	}

	zap.L().Debug("Retrieved accounts", zap.Int("count", len(accounts)))
	return accounts, nil
}
