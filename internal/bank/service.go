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

package bank

import (
	"context"
	"fmt"

	"bank-ledger-go/internal/models"
	"bank-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service implements the account operations on top of any store.LedgerStore
type Service struct {
	store store.LedgerStore
}

func NewService(ledger store.LedgerStore) *Service {
	return &Service{
		store: ledger,
	}
}

func (s *Service) CreateAccount(ctx context.Context, ownerName string) (*models.Account, error) {
	account, err := s.store.CreateAccount(ctx, ownerName)
	if err != nil {
		zap.L().Warn("Failed to create account", zap.String("owner_name", ownerName), zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (s *Service) GetAccount(ctx context.Context, accountId string) (*models.Account, error) {
	if accountId == "" {
		return nil, fmt.Errorf("%w: account id is required", store.ErrValidation)
	}
	return s.store.GetAccount(ctx, accountId)
}

func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.store.ListAccounts(ctx)
}

// validateAmount rejects non-positive amounts and amounts with sub-cent precision
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", store.ErrValidation, amount.String())
	}
	if !amount.Equal(amount.Round(models.AmountPlaces)) {
		return fmt.Errorf("%w: amount %s has more than %d decimal places", store.ErrValidation, amount.String(), models.AmountPlaces)
	}
	return nil
}
