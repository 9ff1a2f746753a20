package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bank-ledger-go/internal/models"
	"bank-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// sqliteTx is a store.Tx backed by a database/sql transaction
type sqliteTx struct {
	tx   *sql.Tx
	now  func() time.Time
	done bool
}

func (t *sqliteTx) GetAccount(ctx context.Context, accountId string) (*models.Account, error) {
	return getAccount(ctx, t.tx, accountId)
}

// UpdateBalance overwrites the stored balance; the caller computes it from a
// read made inside the same transaction.
func (t *sqliteTx) UpdateBalance(ctx context.Context, accountId string, balance decimal.Decimal) error {
	if balance.IsNegative() {
		return fmt.Errorf("%w: balance cannot be negative (%s)", store.ErrValidation, balance.String())
	}

	result, err := t.tx.ExecContext(ctx, queryUpdateBalance, balance.String(), accountId)
	if err != nil {
		return fmt.Errorf("%w: failed to update balance: %w", store.ErrStorage, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to check rows affected: %w", store.ErrStorage, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, accountId)
	}
	return nil
}

// RecordTransaction appends a transaction record without touching the balance
func (t *sqliteTx) RecordTransaction(ctx context.Context, params store.RecordTransactionParams) (*models.Transaction, error) {
	if !params.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", store.ErrValidation, params.Type)
	}
	if !params.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", store.ErrValidation)
	}

	createdAt := t.now().UTC()
	transaction := &models.Transaction{
		AccountId:      params.AccountId,
		Type:           params.Type,
		Amount:         params.Amount,
		BalanceAfter:   params.BalanceAfter,
		CounterpartyId: params.CounterpartyId,
		TransferId:     params.TransferId,
		Note:           params.Note,
		CreatedAt:      createdAt,
	}

	err := t.tx.QueryRowContext(ctx, queryInsertTransaction,
		params.AccountId, string(params.Type), params.Amount.String(), params.BalanceAfter.String(),
		params.CounterpartyId, params.TransferId, params.Note, formatTime(createdAt)).
		Scan(&transaction.Id)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to insert transaction: %w", store.ErrStorage, err)
	}

	zap.L().Debug("Transaction recorded",
		zap.Int64("transaction_id", transaction.Id),
		zap.String("account_id", params.AccountId),
		zap.String("type", string(params.Type)),
		zap.String("amount", params.Amount.String()))

	return transaction, nil
}

func (t *sqliteTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return err
	}
	t.done = true
	return nil
}

func (t *sqliteTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var tx models.Transaction
	var txType, amountStr, balanceAfterStr, createdAtStr string
	err := row.Scan(&tx.Id, &tx.AccountId, &txType, &amountStr, &balanceAfterStr,
		&tx.CounterpartyId, &tx.TransferId, &tx.Note, &createdAtStr)
	if err != nil {
		return nil, err
	}
	tx.Type = models.TransactionType(txType)

	tx.Amount, err = decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	tx.BalanceAfter, err = decimal.NewFromString(balanceAfterStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance after '%s': %w", balanceAfterStr, err)
	}

	tx.CreatedAt, err = parseTime(createdAtStr)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListTransactions returns the account's transactions in ascending time order
func (s *Service) ListTransactions(ctx context.Context, accountId string) ([]models.Transaction, error) {
	zap.L().Debug("Getting transaction history", zap.String("account_id", accountId))

	rows, err := s.db.QueryContext(ctx, queryListTransactions, accountId)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get transaction history: %w", store.ErrStorage, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var transactions []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan transaction: %w", store.ErrStorage, err)
		}
		transactions = append(transactions, *tx)
	}

	// Check for errors during iteration
	if err := rows.Err(); err != nil {
		zap.L().Error("Error during transaction row iteration", zap.Error(err))
		return nil, fmt.Errorf("%w: error iterating transaction rows: %w", store.ErrStorage, err)
	}

	return transactions, nil
}
