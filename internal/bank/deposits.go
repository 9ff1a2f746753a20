package bank

import (
	"context"

	"bank-ledger-go/internal/models"
	"bank-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Deposit credits amount to the account and returns the new balance
func (s *Service) Deposit(ctx context.Context, accountId string, amount decimal.Decimal, note string) (decimal.Decimal, error) {
	if err := validateAmount(amount); err != nil {
		return decimal.Zero, err
	}

	zap.L().Info("Processing deposit",
		zap.String("account_id", accountId),
		zap.String("amount", amount.String()))

	var newBalance decimal.Decimal
	err := store.WithTx(ctx, s.store, func(tx store.Tx) error {
		account, err := tx.GetAccount(ctx, accountId)
		if err != nil {
			return err
		}

		newBalance = account.Balance.Add(amount)
		if err := tx.UpdateBalance(ctx, accountId, newBalance); err != nil {
			return err
		}

		_, err = tx.RecordTransaction(ctx, store.RecordTransactionParams{
			AccountId:    accountId,
			Type:         models.TransactionDeposit,
			Amount:       amount,
			BalanceAfter: newBalance,
			Note:         note,
		})
		return err
	})
	if err != nil {
		zap.L().Error("Deposit processing failed",
			zap.String("account_id", accountId),
			zap.String("amount", amount.String()),
			zap.Error(err))
		return decimal.Zero, err
	}

	zap.L().Info("Deposit processed successfully",
		zap.String("account_id", accountId),
		zap.String("amount", amount.String()),
		zap.String("new_balance", newBalance.String()))

	return newBalance, nil
}
