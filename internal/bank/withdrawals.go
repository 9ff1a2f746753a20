package bank

import (
	"context"
	"fmt"

	"bank-ledger-go/internal/models"
	"bank-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Withdraw debits amount from the account and returns the new balance.
// The balance never goes negative.
func (s *Service) Withdraw(ctx context.Context, accountId string, amount decimal.Decimal, note string) (decimal.Decimal, error) {
	if err := validateAmount(amount); err != nil {
		return decimal.Zero, err
	}

	zap.L().Info("Processing withdrawal",
		zap.String("account_id", accountId),
		zap.String("amount", amount.String()))

	var newBalance decimal.Decimal
	err := store.WithTx(ctx, s.store, func(tx store.Tx) error {
		account, err := tx.GetAccount(ctx, accountId)
		if err != nil {
			return err
		}

		if amount.GreaterThan(account.Balance) {
			return fmt.Errorf("%w: balance %s, requested %s", store.ErrInsufficientFunds, account.Balance.String(), amount.String())
		}

		newBalance = account.Balance.Sub(amount)
		if err := tx.UpdateBalance(ctx, accountId, newBalance); err != nil {
			return err
		}

		_, err = tx.RecordTransaction(ctx, store.RecordTransactionParams{
			AccountId:    accountId,
			Type:         models.TransactionWithdraw,
			Amount:       amount,
			BalanceAfter: newBalance,
			Note:         note,
		})
		return err
	})
	if err != nil {
		zap.L().Warn("Withdrawal processing failed",
			zap.String("account_id", accountId),
			zap.String("amount", amount.String()),
			zap.Error(err))
		return decimal.Zero, err
	}

	zap.L().Info("Withdrawal processed successfully",
		zap.String("account_id", accountId),
		zap.String("amount", amount.String()),
		zap.String("new_balance", newBalance.String()))

	return newBalance, nil
}
