package store

import (
	"context"
	"errors"
	"fmt"

	"bank-ledger-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrIO                = errors.New("io error")
	ErrStorage           = errors.New("storage error")
)

// RecordTransactionParams contains the parameters for appending a transaction record.
// Balance mutation is the caller's job inside the same Tx.
type RecordTransactionParams struct {
	AccountId      string
	Type           models.TransactionType
	Amount         decimal.Decimal
	BalanceAfter   decimal.Decimal
	CounterpartyId string
	TransferId     string
	Note           string
}

// Tx is a unit of work. Mutations made through it become visible to other
// readers only after Commit; Rollback discards all of them.
type Tx interface {
	GetAccount(ctx context.Context, accountId string) (*models.Account, error)
	UpdateBalance(ctx context.Context, accountId string, balance decimal.Decimal) error
	RecordTransaction(ctx context.Context, params RecordTransactionParams) (*models.Transaction, error)

	Commit() error
	// Rollback after a successful Commit is a no-op.
	Rollback() error
}

// LedgerStore defines the contract that every backend (SQLite, in-memory) must satisfy.
type LedgerStore interface {
	// --- Accounts ---
	CreateAccount(ctx context.Context, ownerName string) (*models.Account, error)
	GetAccount(ctx context.Context, accountId string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)

	// --- Transactions ---
	ListTransactions(ctx context.Context, accountId string) ([]models.Transaction, error)

	// --- Units of work ---
	Begin(ctx context.Context) (Tx, error)

	// --- Lifecycle ---
	Close() error
}

// WithTx runs fn inside a unit of work. The Tx is committed when fn returns nil
// and rolled back on any error or panic, so callers never observe partial mutation.
func WithTx(ctx context.Context, s LedgerStore, fn func(tx Tx) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", ErrStorage, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			zap.L().Warn("Failed to roll back transaction", zap.Error(rbErr))
		}
		if p := recover(); p != nil {
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %w", ErrStorage, err)
	}
	committed = true
	return nil
}
