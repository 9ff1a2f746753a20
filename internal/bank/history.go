package bank

import (
	"context"
	"errors"
	"fmt"

	"bank-ledger-go/internal/export"
	"bank-ledger-go/internal/models"
	"bank-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrBalanceMismatch is returned by ReconcileBalance when the stored balance
// differs from the sum of the account's transactions.
var ErrBalanceMismatch = errors.New("balance mismatch")

// ListTransactions returns every transaction of the account, oldest first.
// Each call reflects the current store state.
func (s *Service) ListTransactions(ctx context.Context, accountId string) ([]models.Transaction, error) {
	if _, err := s.GetAccount(ctx, accountId); err != nil {
		return nil, err
	}

	transactions, err := s.store.ListTransactions(ctx, accountId)
	if err != nil {
		zap.L().Error("Failed to get transaction history",
			zap.String("account_id", accountId),
			zap.Error(err))
		return nil, err
	}
	return transactions, nil
}

// RecentTransactions returns at most limit transactions, newest first
func (s *Service) RecentTransactions(ctx context.Context, accountId string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", store.ErrValidation, limit)
	}

	transactions, err := s.ListTransactions(ctx, accountId)
	if err != nil {
		return nil, err
	}

	n := len(transactions)
	if limit > n {
		limit = n
	}
	result := make([]models.Transaction, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		result = append(result, transactions[i])
	}
	return result, nil
}

// ExportCSV writes the account history to destination and returns the number
// of rows written
func (s *Service) ExportCSV(ctx context.Context, accountId, destination string) (int, error) {
	if destination == "" {
		return 0, fmt.Errorf("%w: destination is required", store.ErrValidation)
	}

	transactions, err := s.ListTransactions(ctx, accountId)
	if err != nil {
		return 0, err
	}

	if err := export.WriteFile(destination, transactions); err != nil {
		zap.L().Error("Failed to export transactions",
			zap.String("account_id", accountId),
			zap.String("file", destination),
			zap.Error(err))
		return 0, err
	}
	return len(transactions), nil
}

// ReconcileBalance verifies that the current balance matches the sum of all transactions
func (s *Service) ReconcileBalance(ctx context.Context, accountId string) error {
	zap.L().Info("Reconciling balance", zap.String("account_id", accountId))

	account, err := s.GetAccount(ctx, accountId)
	if err != nil {
		return err
	}

	transactions, err := s.store.ListTransactions(ctx, accountId)
	if err != nil {
		return err
	}

	calculated := decimal.Zero
	for _, tx := range transactions {
		calculated = calculated.Add(tx.Type.SignedAmount(tx.Amount))
	}

	// Check if balances match (exact decimal comparison)
	if !account.Balance.Equal(calculated) {
		zap.L().Error("Balance reconciliation failed",
			zap.String("account_id", accountId),
			zap.String("current_balance", account.Balance.String()),
			zap.String("calculated_balance", calculated.String()),
			zap.String("difference", account.Balance.Sub(calculated).String()))
		return fmt.Errorf("%w: current=%s, calculated=%s", ErrBalanceMismatch, account.Balance.String(), calculated.String())
	}

	zap.L().Info("Balance reconciliation successful",
		zap.String("account_id", accountId),
		zap.String("balance", account.Balance.String()))
	return nil
}
