package bank

import (
	"context"
	"fmt"

	"bank-ledger-go/internal/models"
	"bank-ledger-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Transfer moves amount between two accounts as a single unit of work.
// Both balances change and both sides are recorded, or nothing changes.
func (s *Service) Transfer(ctx context.Context, fromId, toId string, amount decimal.Decimal, note string) (*models.TransferResult, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if fromId == toId {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", store.ErrValidation)
	}

	transferId := uuid.New().String()

	zap.L().Info("Processing transfer",
		zap.String("transfer_id", transferId),
		zap.String("from_account", fromId),
		zap.String("to_account", toId),
		zap.String("amount", amount.String()))

	result := &models.TransferResult{
		TransferId: transferId,
		FromId:     fromId,
		ToId:       toId,
		Amount:     amount,
	}

	err := store.WithTx(ctx, s.store, func(tx store.Tx) error {
		from, err := tx.GetAccount(ctx, fromId)
		if err != nil {
			return err
		}
		to, err := tx.GetAccount(ctx, toId)
		if err != nil {
			return err
		}

		if amount.GreaterThan(from.Balance) {
			return fmt.Errorf("%w: balance %s, requested %s", store.ErrInsufficientFunds, from.Balance.String(), amount.String())
		}

		result.FromBalance = from.Balance.Sub(amount)
		result.ToBalance = to.Balance.Add(amount)

		if err := tx.UpdateBalance(ctx, fromId, result.FromBalance); err != nil {
			return err
		}
		if err := tx.UpdateBalance(ctx, toId, result.ToBalance); err != nil {
			return err
		}

		// Double-entry: one debit row on the source, one credit row on the destination
		if _, err := tx.RecordTransaction(ctx, store.RecordTransactionParams{
			AccountId:      fromId,
			Type:           models.TransactionTransferOut,
			Amount:         amount,
			BalanceAfter:   result.FromBalance,
			CounterpartyId: toId,
			TransferId:     transferId,
			Note:           note,
		}); err != nil {
			return err
		}
		_, err = tx.RecordTransaction(ctx, store.RecordTransactionParams{
			AccountId:      toId,
			Type:           models.TransactionTransferIn,
			Amount:         amount,
			BalanceAfter:   result.ToBalance,
			CounterpartyId: fromId,
			TransferId:     transferId,
			Note:           note,
		})
		return err
	})
	if err != nil {
		zap.L().Warn("Transfer failed and was rolled back",
			zap.String("transfer_id", transferId),
			zap.String("from_account", fromId),
			zap.String("to_account", toId),
			zap.String("amount", amount.String()),
			zap.Error(err))
		return nil, err
	}

	zap.L().Info("Transfer processed successfully",
		zap.String("transfer_id", transferId),
		zap.String("from_balance", result.FromBalance.String()),
		zap.String("to_balance", result.ToBalance.String()))

	return result, nil
}
